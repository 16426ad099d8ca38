package zeitgeist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fetchNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func fixed(id SourceID, r Result) ProviderFunc {
	return ProviderFunc{SourceID: id, Fn: func(context.Context, Daily) (Result, error) { return r, nil }}
}

func failing(id SourceID, err error) ProviderFunc {
	return ProviderFunc{SourceID: id, Fn: func(context.Context, Daily) (Result, error) { return nil, err }}
}

type recordingObserver struct {
	mu    sync.Mutex
	calls map[SourceID]SourceState
}

func (o *recordingObserver) ObserveFetch(source SourceID, state SourceState, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.calls == nil {
		o.calls = map[SourceID]SourceState{}
	}
	o.calls[source] = state
}

func fetchWith(t *testing.T, obs FetchObserver, sources ...Source) *Bundle {
	t.Helper()
	reg, err := NewRegistry(sources...)
	require.NoError(t, err)
	return NewFetcher(reg, obs).Fetch(context.Background(), fetchNow)
}

func TestNewRegistryValidation(t *testing.T) {
	_, err := NewRegistry()
	assert.ErrorIs(t, err, ErrEmptyRegistry)

	weather := Source{Provider: fixed(SourceWeather, WeatherReading{Mood: WeatherSunny})}
	_, err = NewRegistry(weather, weather)
	assert.ErrorIs(t, err, ErrDuplicateSource)

	_, err = NewRegistry(Source{})
	assert.Error(t, err)

	_, err = NewRegistry(Source{Provider: fixed("", WeatherReading{})})
	assert.Error(t, err)

	reg, err := NewRegistry(weather, Source{Provider: fixed(SourceAdvice, AdviceReading{Advice: "x"}), Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, []SourceID{SourceWeather, SourceAdvice}, reg.IDs())
	assert.Equal(t, DefaultTimeout, reg.Sources()[0].Timeout)
	assert.Equal(t, time.Second, reg.Sources()[1].Timeout)
}

func TestFetchOneKeyPerSource(t *testing.T) {
	obs := &recordingObserver{}
	b := fetchWith(t, obs,
		Source{Provider: fixed(SourceWeather, WeatherReading{Temperature: 21, Mood: WeatherSunny})},
		Source{Provider: failing(SourceNASA, errors.New("apod down"))},
		Source{
			Provider: failing(SourceAdvice, errors.New("slip lost")),
			Fallback: Static(AdviceReading{Advice: "Trust the process."}),
		},
	)

	require.Len(t, b.Results, 3)
	require.Len(t, b.Status, 3)
	assert.NotEmpty(t, b.CycleID)
	assert.Equal(t, fetchNow, b.FetchedAt)
	assert.Equal(t, NewDaily(fetchNow).City, b.City)

	assert.Equal(t, StateOK, b.Status[SourceWeather].State)
	assert.Empty(t, b.Status[SourceWeather].Error)

	assert.Nil(t, b.Results[SourceNASA])
	assert.Equal(t, StateFailed, b.Status[SourceNASA].State)
	assert.Equal(t, "apod down", b.Status[SourceNASA].Error)

	advice, ok := Get[AdviceReading](b, SourceAdvice)
	require.True(t, ok)
	assert.Equal(t, "Trust the process.", advice.Advice)
	assert.Equal(t, StateFallback, b.Status[SourceAdvice].State)

	ok2, fallback, failed := b.Counts()
	assert.Equal(t, [3]int{1, 1, 1}, [3]int{ok2, fallback, failed})

	assert.Equal(t, map[SourceID]SourceState{
		SourceWeather: StateOK,
		SourceNASA:    StateFailed,
		SourceAdvice:  StateFallback,
	}, obs.calls)
}

func TestFetchTimeoutIsBoundedWhenProviderIgnoresContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	slow := ProviderFunc{SourceID: SourceJoke, Fn: func(context.Context, Daily) (Result, error) {
		<-release
		return JokeReading{Joke: "too late"}, nil
	}}

	start := time.Now()
	b := fetchWith(t, nil, Source{Provider: slow, Timeout: 50 * time.Millisecond})

	assert.Less(t, time.Since(start), time.Second)
	assert.Nil(t, b.Results[SourceJoke])
	assert.Equal(t, StateFailed, b.Status[SourceJoke].State)
	assert.Contains(t, b.Status[SourceJoke].Error, "deadline exceeded")
}

func TestFetchSourcesRunConcurrently(t *testing.T) {
	sleepy := func(id SourceID, r Result) Source {
		return Source{Provider: ProviderFunc{SourceID: id, Fn: func(ctx context.Context, _ Daily) (Result, error) {
			select {
			case <-time.After(200 * time.Millisecond):
				return r, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}}}
	}

	start := time.Now()
	b := fetchWith(t, nil,
		sleepy(SourceAdvice, AdviceReading{Advice: "a"}),
		sleepy(SourceJoke, JokeReading{Joke: "j"}),
		sleepy(SourceQuote, QuoteReading{Content: "q", Author: "a"}),
	)
	assert.Less(t, time.Since(start), 550*time.Millisecond)
	ok, _, _ := b.Counts()
	assert.Equal(t, 3, ok)
}

func TestFetchRecoversFromPanics(t *testing.T) {
	boom := ProviderFunc{SourceID: SourceWord, Fn: func(context.Context, Daily) (Result, error) {
		panic("dictionary on fire")
	}}

	b := fetchWith(t, nil,
		Source{
			Provider: boom,
			Fallback: func(d Daily) Result { return WordReading{Word: d.Word, Definition: "full of mystery"} },
		},
		Source{Provider: fixed(SourceAdvice, AdviceReading{Advice: "carry on"})},
	)

	w, ok := Get[WordReading](b, SourceWord)
	require.True(t, ok)
	assert.Equal(t, NewDaily(fetchNow).Word, w.Word)
	assert.Equal(t, StateFallback, b.Status[SourceWord].State)
	assert.Contains(t, b.Status[SourceWord].Error, "dictionary on fire")
	assert.Equal(t, StateOK, b.Status[SourceAdvice].State)
}

func TestFetchRejectsBadResults(t *testing.T) {
	tests := []struct {
		name    string
		result  Result
		wantErr error
	}{
		{name: "nil result", result: nil, wantErr: errNilResult},
		{name: "other source", result: AdviceReading{Advice: "hi"}, wantErr: errWrongResult},
		{name: "invalid mood", result: WeatherReading{Mood: "hail"}, wantErr: errInvalidPayload},
		{name: "missing mood", result: WeatherReading{Temperature: 20}, wantErr: errInvalidPayload},
		{name: "temperature out of range", result: WeatherReading{Temperature: 400, Mood: WeatherSunny}, wantErr: errInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fetchWith(t, nil, Source{Provider: fixed(SourceWeather, tt.result)})
			assert.Nil(t, b.Results[SourceWeather])
			assert.Equal(t, StateFailed, b.Status[SourceWeather].State)
			assert.Contains(t, b.Status[SourceWeather].Error, tt.wantErr.Error())
		})
	}
}

func TestFetchFallbackReturningNilIsFailure(t *testing.T) {
	b := fetchWith(t, nil, Source{
		Provider: failing(SourceBook, errors.New("library closed")),
		Fallback: func(Daily) Result { return nil },
	})
	assert.Nil(t, b.Results[SourceBook])
	assert.Equal(t, StateFailed, b.Status[SourceBook].State)
}

func TestFetchParentCancellation(t *testing.T) {
	reg, err := NewRegistry(Source{
		Provider: ProviderFunc{SourceID: SourceAdvice, Fn: func(ctx context.Context, _ Daily) (Result, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}},
		Fallback: Static(AdviceReading{Advice: "Trust the process."}),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewFetcher(reg, nil).Fetch(ctx, fetchNow)
	assert.Equal(t, StateFallback, b.Status[SourceAdvice].State)
}

func TestBundleMarshalJSONFlattensSources(t *testing.T) {
	b := fetchWith(t, nil,
		Source{Provider: fixed(SourceAdvice, AdviceReading{Advice: "carry on"})},
		Source{Provider: failing(SourceNASA, errors.New("down"))},
	)

	raw, err := b.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"advice": {"advice": "carry on"},
		"nasa": null,
		"cycleId": "`+b.CycleID+`",
		"fetchedAt": "2024-03-15T12:00:00Z",
		"city": {"name": "Dubai", "lat": 25.2048, "lon": 55.2708, "timezone": "Asia/Dubai"}
	}`, string(raw))
}
