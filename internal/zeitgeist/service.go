package zeitgeist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/tfs2006/the-zeitgeist-pet/internal/logging"
)

// ErrEntityUnavailable hides unexpected failures outside the fetch layer.
var ErrEntityUnavailable = errors.New("entity unavailable")

// DefaultCacheTTL is how long a fetched bundle is reused before refetching.
const DefaultCacheTTL = time.Hour

const snapshotKey = "entity"

// ServiceObserver receives score and interaction events.
type ServiceObserver interface {
	ObserveScore(base, vibe int, mode Mode)
	ObserveInteraction(kind InteractionKind)
}

// Options tune a Service. Zero values pick defaults.
type Options struct {
	CacheTTL time.Duration
	Clock    func() time.Time
	Observer ServiceObserver
}

// snapshot is the cached part of the entity: the raw bundle and its base
// score. The interaction adjustment is applied on every read.
type snapshot struct {
	bundle    *Bundle
	breakdown Breakdown
}

// Service serves entity state, raw bundles and interactions.
type Service struct {
	fetcher      *Fetcher
	scorer       *Scorer
	interactions InteractionStore
	observer     ServiceObserver
	clock        func() time.Time

	cache *expirable.LRU[string, snapshot]
	group singleflight.Group
}

// NewService creates a new Service.
func NewService(fetcher *Fetcher, scorer *Scorer, interactions InteractionStore, opts Options) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Service{
		fetcher:      fetcher,
		scorer:       scorer,
		interactions: interactions,
		observer:     opts.Observer,
		clock:        opts.Clock,
		cache:        expirable.NewLRU[string, snapshot](1, nil, opts.CacheTTL),
	}
}

// CurrentEntityState returns the entity built from the cached bundle (fetching
// one if the cache is cold or expired) and the current interaction counters.
func (s *Service) CurrentEntityState(ctx context.Context) (state EntityState, err error) {
	snap, err := s.snapshot(ctx, false)
	if err != nil {
		return EntityState{}, err
	}

	st, err := s.interactions.State(ctx)
	if err != nil {
		return EntityState{}, fmt.Errorf("read interactions: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			logging.Error("entity build panicked", "panic", p)
			err = fmt.Errorf("%w: %v", ErrEntityUnavailable, p)
		}
	}()

	vibe, mode := s.scorer.Apply(snap.breakdown.Base, st)
	if s.observer != nil {
		s.observer.ObserveScore(snap.breakdown.Base, vibe, mode)
	}
	return BuildEntity(snap.bundle, snap.breakdown, vibe, mode, st, s.scorer.Rand(), s.clock()), nil
}

// MoodCard returns the shareable summary of the current entity state.
func (s *Service) MoodCard(ctx context.Context) (MoodCard, error) {
	e, err := s.CurrentEntityState(ctx)
	if err != nil {
		return MoodCard{}, err
	}
	return e.Card(s.clock()), nil
}

// RawBundle returns the bundle behind the entity. With fresh set, all sources
// are fetched again and the cache is replaced.
func (s *Service) RawBundle(ctx context.Context, fresh bool) (*Bundle, error) {
	snap, err := s.snapshot(ctx, fresh)
	if err != nil {
		return nil, err
	}
	return snap.bundle, nil
}

// Refresh refetches all sources and replaces the cached snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	_, err := s.snapshot(ctx, true)
	return err
}

// Invalidate drops the cached snapshot so the next read refetches.
func (s *Service) Invalidate() {
	s.cache.Purge()
}

// RecordInteraction validates kind and increments the matching counter.
func (s *Service) RecordInteraction(ctx context.Context, kind InteractionKind) (InteractionState, error) {
	if !kind.Valid() {
		return InteractionState{}, fmt.Errorf("%w: %q", ErrInvalidInteraction, kind)
	}
	st, err := s.interactions.Record(ctx, kind)
	if err != nil {
		return InteractionState{}, err
	}
	if s.observer != nil {
		s.observer.ObserveInteraction(kind)
	}
	return st, nil
}

// InteractionState returns the current counters.
func (s *Service) InteractionState(ctx context.Context) (InteractionState, error) {
	return s.interactions.State(ctx)
}

// ResetInteractions zeroes both counters and stamps the reset time.
func (s *Service) ResetInteractions(ctx context.Context) (InteractionState, error) {
	st, err := s.interactions.Reset(ctx, s.clock())
	if err != nil {
		return InteractionState{}, err
	}
	logging.Info("interactions reset", "at", st.LastReset)
	return st, nil
}

func (s *Service) snapshot(ctx context.Context, fresh bool) (snapshot, error) {
	if !fresh {
		if snap, ok := s.cache.Get(snapshotKey); ok {
			return snap, nil
		}
	}

	// Concurrent misses share one fan-out. The shared fetch is detached from
	// the first caller's cancellation; every source is still bounded by its
	// own timeout.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(snapshotKey, func() (any, error) {
		if !fresh {
			// A flight that finished between the miss and Do already filled it.
			if snap, ok := s.cache.Get(snapshotKey); ok {
				return snap, nil
			}
		}
		return s.compute(shared)
	})
	if err != nil {
		return snapshot{}, err
	}
	return v.(snapshot), nil
}

func (s *Service) compute(ctx context.Context) (snap snapshot, err error) {
	defer func() {
		if p := recover(); p != nil {
			logging.Error("entity computation panicked", "panic", p)
			err = fmt.Errorf("%w: %v", ErrEntityUnavailable, p)
		}
	}()

	logging.Info("fetching fresh data from all sources", "sources", s.fetcher.Registry().Len())
	b := s.fetcher.Fetch(ctx, s.clock())
	snap = snapshot{bundle: b, breakdown: s.scorer.Base(b)}
	s.cache.Add(snapshotKey, snap)
	return snap, nil
}
