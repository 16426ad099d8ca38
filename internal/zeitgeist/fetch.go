package zeitgeist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tfs2006/the-zeitgeist-pet/internal/logging"
)

var (
	errNilResult      = errors.New("provider returned no result")
	errWrongResult    = errors.New("provider returned a result for another source")
	errInvalidPayload = errors.New("structurally invalid payload")
	errProviderPanic  = errors.New("provider panicked")
)

// FetchObserver receives one call per source per cycle.
type FetchObserver interface {
	ObserveFetch(source SourceID, state SourceState, took time.Duration)
}

// Fetcher fans out to every registered source and assembles a Bundle.
type Fetcher struct {
	registry *Registry
	validate *validator.Validate
	observer FetchObserver
}

// NewFetcher creates a Fetcher over registry. observer may be nil.
func NewFetcher(registry *Registry, observer FetchObserver) *Fetcher {
	return &Fetcher{
		registry: registry,
		validate: validator.New(),
		observer: observer,
	}
}

// Registry returns the fetcher's source registry.
func (f *Fetcher) Registry() *Registry { return f.registry }

// Fetch runs every source concurrently, each under its own timeout, and waits
// for all of them. It never fails: a source that errors, times out, panics or
// returns an invalid payload is replaced by its fallback or recorded as null.
func (f *Fetcher) Fetch(ctx context.Context, now time.Time) *Bundle {
	daily := NewDaily(now)
	sources := f.registry.Sources()

	results := make([]Result, len(sources))
	statuses := make([]SourceStatus, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], statuses[i] = f.fetchOne(ctx, src, daily)
		}()
	}
	wg.Wait()

	b := &Bundle{
		CycleID:   uuid.NewString(),
		FetchedAt: now,
		City:      daily.City,
		Daily:     daily,
		Results:   make(map[SourceID]Result, len(sources)),
		Status:    make(map[SourceID]SourceStatus, len(sources)),
	}
	for i, src := range sources {
		b.Results[src.ID()] = results[i]
		b.Status[src.ID()] = statuses[i]
	}

	ok, fallback, failed := b.Counts()
	logging.Info("aggregation cycle complete",
		"cycle", b.CycleID, "city", b.City.Name, "ok", ok, "fallback", fallback, "failed", failed)
	return b
}

type outcome struct {
	result Result
	err    error
}

func (f *Fetcher) fetchOne(parent context.Context, src Source, daily Daily) (Result, SourceStatus) {
	ctx, cancel := context.WithTimeout(parent, src.Timeout)
	defer cancel()

	start := time.Now()
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("%w: %v", errProviderPanic, p)}
			}
		}()
		r, err := src.Provider.Fetch(ctx, daily)
		done <- outcome{result: r, err: err}
	}()

	// The deadline wins even if the provider ignores ctx; the buffered channel
	// lets a late provider finish without blocking.
	var o outcome
	select {
	case o = <-done:
	case <-ctx.Done():
		o.err = ctx.Err()
	}
	if o.err == nil {
		o.err = f.check(src.ID(), o.result)
	}
	took := time.Since(start)

	status := SourceStatus{State: StateOK, DurationMS: took.Milliseconds()}
	result := o.result

	if o.err != nil {
		status.Error = o.err.Error()
		result = nil
		if src.Fallback != nil {
			result = src.Fallback(daily)
		}
		if result != nil {
			status.State = StateFallback
		} else {
			status.State = StateFailed
		}
		logging.Warn("source fetch failed", "source", src.ID(), "error", o.err, "duration", took, "state", status.State)
	}

	if f.observer != nil {
		f.observer.ObserveFetch(src.ID(), status.State, took)
	}
	return result, status
}

func (f *Fetcher) check(id SourceID, r Result) error {
	if r == nil {
		return errNilResult
	}
	if r.Source() != id {
		return fmt.Errorf("%w: got %s", errWrongResult, r.Source())
	}
	if err := f.validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return nil
}
