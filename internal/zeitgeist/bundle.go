package zeitgeist

import (
	"encoding/json"
	"time"
)

// SourceState is the outcome of one source in one aggregation cycle.
type SourceState string

const (
	StateOK       SourceState = "ok"
	StateFallback SourceState = "fallback"
	StateFailed   SourceState = "failed"
)

type SourceStatus struct {
	State      SourceState `json:"state"`
	Error      string      `json:"error,omitempty"`
	DurationMS int64       `json:"durationMs"`
}

// Bundle is the raw data of one aggregation cycle. Results and Status hold
// exactly one key per registered source; a nil Result means the source failed
// without a fallback. A Bundle is not modified after the fetcher returns it.
type Bundle struct {
	CycleID   string                    `json:"cycleId"`
	FetchedAt time.Time                 `json:"fetchedAt"`
	City      City                      `json:"city"`
	Daily     Daily                     `json:"-"`
	Results   map[SourceID]Result       `json:"-"`
	Status    map[SourceID]SourceStatus `json:"-"`
}

// Get returns the typed result for id when it is present.
func Get[T Result](b *Bundle, id SourceID) (T, bool) {
	var zero T
	if b == nil {
		return zero, false
	}
	r, ok := b.Results[id]
	if !ok || r == nil {
		return zero, false
	}
	t, ok := r.(T)
	return t, ok
}

// Counts tallies the per-source outcomes of the cycle.
func (b *Bundle) Counts() (ok, fallback, failed int) {
	for _, st := range b.Status {
		switch st.State {
		case StateOK:
			ok++
		case StateFallback:
			fallback++
		case StateFailed:
			failed++
		}
	}
	return ok, fallback, failed
}

// MarshalJSON flattens the bundle so every source appears as a top-level key,
// with null for failed sources.
func (b Bundle) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Results)+3)
	for id, r := range b.Results {
		if r == nil {
			out[string(id)] = nil
			continue
		}
		out[string(id)] = r
	}
	out["cycleId"] = b.CycleID
	out["fetchedAt"] = b.FetchedAt
	out["city"] = b.City
	return json.Marshal(out)
}
