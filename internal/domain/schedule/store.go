package schedule

import "context"

// Store is the persistence contract for the schedule. The core never issues
// incremental patches: it loads the complete record set, operates on it, and
// hands back a complete replacement.
type Store interface {
	// LoadAll returns every booking together with the current schedule
	// revision. Load order carries no meaning; callers re-sort as needed.
	LoadAll(ctx context.Context) ([]Booking, int64, error)

	// ReplaceAll persists the record set as a whole, but only if the stored
	// revision still equals expectedRevision. On a mismatch it returns a
	// ConflictError and persists nothing.
	ReplaceAll(ctx context.Context, bookings []Booking, expectedRevision int64) error
}
