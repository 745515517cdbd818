package occupancy

import (
	"context"
	"errors"
)

// ErrUnknownFloor is returned when a floor name matches no record.
var ErrUnknownFloor = errors.New("unknown floor")

// Source yields a fresh occupancy table from an external data store.
// Implementations issue one full read per call, propagate store failures
// unchanged and never retry. Callers needing timeouts wrap the context.
type Source interface {
	Load(ctx context.Context) (*Table, error)
}
