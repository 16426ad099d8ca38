package zeitgeist

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds a source fetch when its descriptor leaves Timeout unset.
const DefaultTimeout = 5 * time.Second

var (
	// ErrEmptyRegistry is a startup configuration error: nothing to aggregate.
	ErrEmptyRegistry = errors.New("source registry is empty")
	// ErrDuplicateSource is returned when two descriptors share an ID.
	ErrDuplicateSource = errors.New("duplicate source id")
)

// Provider abstracts one external data source (Open-Meteo, CoinGecko, USGS, ...).
type Provider interface {
	ID() SourceID
	Fetch(ctx context.Context, daily Daily) (Result, error)
}

// ProviderFunc adapts a plain function into a Provider.
type ProviderFunc struct {
	SourceID SourceID
	Fn       func(ctx context.Context, daily Daily) (Result, error)
}

func (p ProviderFunc) ID() SourceID { return p.SourceID }

func (p ProviderFunc) Fetch(ctx context.Context, daily Daily) (Result, error) {
	return p.Fn(ctx, daily)
}

// FallbackFunc produces the value substituted when a source fails.
type FallbackFunc func(daily Daily) Result

// Static returns a FallbackFunc that always yields r.
func Static(r Result) FallbackFunc {
	return func(Daily) Result { return r }
}

// Source describes one registered source. A nil Fallback means a failed
// source is recorded as null.
type Source struct {
	Provider Provider
	Timeout  time.Duration
	Fallback FallbackFunc
}

func (s Source) ID() SourceID { return s.Provider.ID() }

// Registry is the immutable, validated list of sources.
type Registry struct {
	sources []Source
}

// NewRegistry validates descriptors: at least one source, unique IDs, and a
// provider on every entry. Zero timeouts become DefaultTimeout.
func NewRegistry(sources ...Source) (*Registry, error) {
	if len(sources) == 0 {
		return nil, ErrEmptyRegistry
	}

	seen := make(map[SourceID]struct{}, len(sources))
	out := make([]Source, 0, len(sources))
	for i, s := range sources {
		if s.Provider == nil {
			return nil, fmt.Errorf("source #%d has no provider", i)
		}
		id := s.ID()
		if id == "" {
			return nil, fmt.Errorf("source #%d has an empty id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSource, id)
		}
		seen[id] = struct{}{}

		if s.Timeout <= 0 {
			s.Timeout = DefaultTimeout
		}
		out = append(out, s)
	}

	return &Registry{sources: out}, nil
}

// Sources returns a copy of the registered descriptors in registration order.
func (r *Registry) Sources() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// IDs lists the registered source IDs in registration order.
func (r *Registry) IDs() []SourceID {
	ids := make([]SourceID, len(r.sources))
	for i, s := range r.sources {
		ids[i] = s.ID()
	}
	return ids
}

func (r *Registry) Len() int { return len(r.sources) }
