package zeitgeist

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterStore is a minimal in-process InteractionStore.
type counterStore struct {
	mu sync.Mutex
	st InteractionState
}

func (s *counterStore) Record(_ context.Context, kind InteractionKind) (InteractionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == InteractionComfort {
		s.st.Comfort++
	} else {
		s.st.Agitate++
	}
	return s.st, nil
}

func (s *counterStore) State(context.Context) (InteractionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st, nil
}

func (s *counterStore) Reset(_ context.Context, at time.Time) (InteractionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = InteractionState{LastReset: at}
	return s.st, nil
}

type scoreEvent struct {
	base, vibe int
	mode       Mode
}

type serviceEvents struct {
	mu           sync.Mutex
	scores       []scoreEvent
	interactions []InteractionKind
}

func (e *serviceEvents) ObserveScore(base, vibe int, mode Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scores = append(e.scores, scoreEvent{base, vibe, mode})
}

func (e *serviceEvents) ObserveInteraction(kind InteractionKind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.interactions = append(e.interactions, kind)
}

type serviceFixture struct {
	svc     *Service
	fetches *atomic.Int64
	store   *counterStore
	events  *serviceEvents
}

func newServiceFixture(t *testing.T, ttl, delay time.Duration) serviceFixture {
	t.Helper()
	fetches := &atomic.Int64{}
	weather := ProviderFunc{SourceID: SourceWeather, Fn: func(context.Context, Daily) (Result, error) {
		fetches.Add(1)
		time.Sleep(delay)
		return WeatherReading{Temperature: 24, Mood: WeatherSunny}, nil
	}}
	reg, err := NewRegistry(Source{Provider: weather})
	require.NoError(t, err)

	st := &counterStore{}
	events := &serviceEvents{}
	svc := NewService(
		NewFetcher(reg, nil),
		NewScorer(DefaultScoringConfig(), NewLockedRand(5, 6)),
		st,
		Options{CacheTTL: ttl, Clock: func() time.Time { return fetchNow }, Observer: events},
	)
	return serviceFixture{svc: svc, fetches: fetches, store: st, events: events}
}

func TestServiceCachesBundle(t *testing.T) {
	f := newServiceFixture(t, time.Hour, 0)
	ctx := context.Background()

	first, err := f.svc.CurrentEntityState(ctx)
	require.NoError(t, err)
	second, err := f.svc.CurrentEntityState(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.fetches.Load())
	assert.Equal(t, first.CycleID, second.CycleID)
	assert.Equal(t, 65, first.BaseVibeScore)
	assert.Equal(t, "Content", first.Mood)

	b, err := f.svc.RawBundle(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, first.CycleID, b.CycleID)
	assert.Equal(t, int64(1), f.fetches.Load())
}

func TestServiceFreshAndRefreshRefetch(t *testing.T) {
	f := newServiceFixture(t, time.Hour, 0)
	ctx := context.Background()

	cached, err := f.svc.RawBundle(ctx, false)
	require.NoError(t, err)
	fresh, err := f.svc.RawBundle(ctx, true)
	require.NoError(t, err)
	assert.NotEqual(t, cached.CycleID, fresh.CycleID)
	assert.Equal(t, int64(2), f.fetches.Load())

	// The fresh bundle replaced the cache.
	again, err := f.svc.RawBundle(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, fresh.CycleID, again.CycleID)

	require.NoError(t, f.svc.Refresh(ctx))
	assert.Equal(t, int64(3), f.fetches.Load())

	f.svc.Invalidate()
	_, err = f.svc.CurrentEntityState(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.fetches.Load())
}

func TestServiceCacheExpires(t *testing.T) {
	f := newServiceFixture(t, 50*time.Millisecond, 0)
	ctx := context.Background()

	_, err := f.svc.CurrentEntityState(ctx)
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		_, err := f.svc.CurrentEntityState(ctx)
		return err == nil && f.fetches.Load() == 2
	}, 2*time.Second, 20*time.Millisecond)
}

func TestServiceConcurrentMissesShareOneFetch(t *testing.T) {
	f := newServiceFixture(t, time.Hour, 100*time.Millisecond)

	var wg sync.WaitGroup
	ids := make([]string, 10)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := f.svc.CurrentEntityState(context.Background())
			assert.NoError(t, err)
			ids[i] = e.CycleID
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), f.fetches.Load())
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestServiceSharedFetchSurvivesCallerCancellation(t *testing.T) {
	f := newServiceFixture(t, time.Hour, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e, err := f.svc.CurrentEntityState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 65, e.BaseVibeScore)
	assert.NotNil(t, e.Weather)
}

func TestServiceAppliesInteractionsOnEveryRead(t *testing.T) {
	f := newServiceFixture(t, time.Hour, 0)
	ctx := context.Background()

	for range 15 {
		_, err := f.svc.RecordInteraction(ctx, InteractionAgitate)
		require.NoError(t, err)
	}

	e, err := f.svc.CurrentEntityState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 65, e.BaseVibeScore)
	assert.Equal(t, 59, e.VibeScore)
	assert.Equal(t, ModeCalm, e.Mode)
	assert.Equal(t, int64(15), e.UserInteractions.Agitate)

	_, err = f.svc.RecordInteraction(ctx, InteractionComfort)
	require.NoError(t, err)
	e, err = f.svc.CurrentEntityState(ctx)
	require.NoError(t, err)
	// 65 + 0.5 - 6 rounds to 60 (half away from zero).
	assert.Equal(t, 60, e.VibeScore)
	assert.Equal(t, int64(1), f.fetches.Load())

	f.events.mu.Lock()
	defer f.events.mu.Unlock()
	assert.Len(t, f.events.interactions, 16)
	require.Len(t, f.events.scores, 2)
	assert.Equal(t, scoreEvent{65, 60, ModeCalm}, f.events.scores[1])
}

func TestServiceRejectsInvalidInteraction(t *testing.T) {
	f := newServiceFixture(t, time.Hour, 0)

	_, err := f.svc.RecordInteraction(context.Background(), "poke")
	assert.ErrorIs(t, err, ErrInvalidInteraction)

	st, err := f.svc.InteractionState(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.Comfort)
	assert.Zero(t, st.Agitate)
}

func TestServiceResetInteractions(t *testing.T) {
	f := newServiceFixture(t, time.Hour, 0)
	ctx := context.Background()

	_, err := f.svc.RecordInteraction(ctx, InteractionAgitate)
	require.NoError(t, err)
	st, err := f.svc.ResetInteractions(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Agitate)
	assert.Equal(t, fetchNow, st.LastReset)
}

func TestServiceMoodCard(t *testing.T) {
	f := newServiceFixture(t, time.Hour, 0)

	card, err := f.svc.MoodCard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", card.Date)
	assert.Equal(t, 65, card.VibeScore)
	assert.Contains(t, Thoughts("Content"), card.Thought)
	assert.Equal(t, "The Zeitgeist Pet is feeling Content today (65/100). "+card.Thought, card.ShareText)
}

type failingStore struct{ counterStore }

func (*failingStore) State(context.Context) (InteractionState, error) {
	return InteractionState{}, errors.New("store offline")
}

func TestServiceStoreFailureIsReturned(t *testing.T) {
	reg, err := NewRegistry(Source{Provider: fixed(SourceWeather, WeatherReading{Mood: WeatherSunny})})
	require.NoError(t, err)
	svc := NewService(NewFetcher(reg, nil), NewScorer(DefaultScoringConfig(), nil), &failingStore{}, Options{})

	_, err = svc.CurrentEntityState(context.Background())
	assert.ErrorContains(t, err, "store offline")
}
