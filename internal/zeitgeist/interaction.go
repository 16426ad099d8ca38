package zeitgeist

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidInteraction is returned for any kind other than comfort or agitate.
var ErrInvalidInteraction = errors.New("invalid interaction kind")

// InteractionStore is the contract the in-memory counter and the SQLite
// counter satisfy. Record must not lose updates under concurrent callers.
type InteractionStore interface {
	Record(ctx context.Context, kind InteractionKind) (InteractionState, error)
	State(ctx context.Context) (InteractionState, error)
	Reset(ctx context.Context, at time.Time) (InteractionState, error)
}
