package repository

import (
	"context"
	"sync"

	"github.com/Manoj814/SaiStarBooking/internal/domain/schedule"
)

// InMemoryScheduleStore is a schedule.Store kept entirely in process memory.
// It backs single-node deployments without a database and the service tests.
type InMemoryScheduleStore struct {
	mu       sync.Mutex
	bookings []schedule.Booking
	revision int64
}

// NewInMemoryScheduleStore creates an empty InMemoryScheduleStore.
func NewInMemoryScheduleStore() *InMemoryScheduleStore {
	return &InMemoryScheduleStore{}
}

// LoadAll returns a copy of the stored bookings and the current revision.
func (s *InMemoryScheduleStore) LoadAll(ctx context.Context) ([]schedule.Booking, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]schedule.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, s.revision, nil
}

// ReplaceAll swaps in a copy of the given set if the revision still matches.
func (s *InMemoryScheduleStore) ReplaceAll(ctx context.Context, bookings []schedule.Booking, expectedRevision int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.revision != expectedRevision {
		return schedule.NewConflictError("schedule was modified by another operator")
	}
	s.bookings = make([]schedule.Booking, len(bookings))
	copy(s.bookings, bookings)
	s.revision++
	return nil
}
