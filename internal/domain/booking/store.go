package booking

import "context"

// Store is the persistence contract the engine consumes. The engine holds no
// reservation state itself: List produces the snapshot every computation runs
// over, and writes are issued independently with no compare-and-swap.
//
// Implementations must map a missing id to ErrNotFound and need only
// read-your-writes consistency for a single client.
type Store interface {
	List(ctx context.Context) ([]Reservation, error)
	Add(ctx context.Context, r Reservation) error
	Update(ctx context.Context, r Reservation) error
	Remove(ctx context.Context, id string) error
}
