package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Manoj814/SaiStarBooking/internal/domain/schedule"
	"github.com/Manoj814/SaiStarBooking/internal/events"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/kafka"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/locking"
	"go.uber.org/zap"
)

// Publisher is the outbound event port. kafka.Producer satisfies it; tests
// substitute a recording fake.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, evt kafka.CloudEvent) error
}

// CreateBookingRequest holds the operator-supplied fields of a booking. The
// same shape serves create and full update.
type CreateBookingRequest struct {
	Date        string             `json:"date" binding:"required"`
	StartTime   schedule.TimeOfDay `json:"start_time"`
	EndTime     schedule.TimeOfDay `json:"end_time"`
	RatePerHour int64              `json:"rate_per_hour"`
	AdvancePaid int64              `json:"advance_paid"`
	BalancePaid int64              `json:"balance_paid"`
	PaymentMode string             `json:"payment_mode" binding:"required"`
	BookedBy    string             `json:"booked_by" binding:"required"`
	Remarks     string             `json:"remarks"`
}

// RecordPaymentRequest adds amounts onto a booking's recorded payments.
// Amounts are in paise.
type RecordPaymentRequest struct {
	Advance int64  `json:"advance"`
	Balance int64  `json:"balance"`
	Mode    string `json:"mode"`
}

// BookingDTO is the response representation of a booking. Overpaid is
// advisory: payments above the total charge are kept, flagged, never rejected.
type BookingDTO struct {
	schedule.Booking
	Overpaid bool `json:"overpaid"`
}

// AvailabilityDTO lists the free intervals of one date on the slot grid.
type AvailabilityDTO struct {
	Date      schedule.Date       `json:"date"`
	FreeSlots []schedule.Interval `json:"free_slots"`
}

// BookingStatsDTO holds ledger aggregates for the admin dashboard. Money
// fields are in paise.
type BookingStatsDTO struct {
	TotalBookings  int64            `json:"total_bookings"`
	ByPaymentMode  map[string]int64 `json:"by_payment_mode"`
	TotalCharged   int64            `json:"total_charged"`
	TotalCollected int64            `json:"total_collected"`
	TotalDue       int64            `json:"total_due"`
}

// BookingService orchestrates booking use cases. Every mutation runs the same
// cycle under the schedule lock: load the full record set, apply the pure
// scheduling operation, persist the replacement set against the revision it
// was loaded at.
type BookingService struct {
	store     schedule.Store
	scheduler *schedule.Scheduler
	locker    locking.Locker
	producer  Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	store schedule.Store,
	scheduler *schedule.Scheduler,
	locker locking.Locker,
	producer Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		store:     store,
		scheduler: scheduler,
		locker:    locker,
		producer:  producer,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateBooking admits a new booking into the calendar.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	var created schedule.Booking
	err := s.mutate(ctx, func(set []schedule.Booking) ([]schedule.Booking, error) {
		next, b, err := s.scheduler.Create(set, candidateFrom(req))
		if err != nil {
			return nil, err
		}
		created = b
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, events.BookingCreatedEvent{
		Booking:    created,
		OccurredAt: s.now().UTC(),
	})
	return s.toDTO(created), nil
}

// UpdateBooking rewrites an existing booking in place, keeping its identifier.
func (s *BookingService) UpdateBooking(ctx context.Context, id int64, req CreateBookingRequest) (*BookingDTO, error) {
	var updated schedule.Booking
	err := s.mutate(ctx, func(set []schedule.Booking) ([]schedule.Booking, error) {
		next, b, err := s.scheduler.Update(set, id, candidateFrom(req))
		if err != nil {
			return nil, err
		}
		updated = b
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingUpdated, events.BookingUpdatedEvent{
		Booking:    updated,
		OccurredAt: s.now().UTC(),
	})
	return s.toDTO(updated), nil
}

// DeleteBooking permanently removes a booking. Its identifier is retired.
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	var removed schedule.Booking
	err := s.mutate(ctx, func(set []schedule.Booking) ([]schedule.Booking, error) {
		next, b, err := s.scheduler.Delete(set, id)
		if err != nil {
			return nil, err
		}
		removed = b
		return next, nil
	})
	if err != nil {
		return err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingDeleted, events.BookingDeletedEvent{
		BookingID:  removed.ID,
		Date:       removed.Date,
		OccurredAt: s.now().UTC(),
	})
	return nil
}

// RecordPayment adds amounts onto a booking's recorded payments and
// recomputes its ledger. The booking's interval is untouched, so no overlap
// check runs.
func (s *BookingService) RecordPayment(ctx context.Context, id int64, req RecordPaymentRequest) (*BookingDTO, error) {
	if req.Advance < 0 || req.Balance < 0 {
		return nil, schedule.NewValidationError("payment amounts must not be negative")
	}
	mode, err := schedule.ParsePaymentMode(req.Mode)
	if err != nil {
		return nil, schedule.NewValidationError(err.Error())
	}

	var updated schedule.Booking
	err = s.mutate(ctx, func(set []schedule.Booking) ([]schedule.Booking, error) {
		b := schedule.Booking{}
		idx := -1
		for i := range set {
			if set[i].ID == id {
				b, idx = set[i], i
				break
			}
		}
		if idx < 0 {
			return nil, &schedule.NotFoundError{ID: id}
		}

		b.AdvancePaid += schedule.Money(req.Advance)
		b.BalancePaid += schedule.Money(req.Balance)
		b.PaymentMode = mode
		schedule.Recompute(&b)

		next := make([]schedule.Booking, len(set))
		copy(next, set)
		next[idx] = b
		updated = b
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingPaymentRecorded, events.BookingPaymentRecordedEvent{
		Booking:    updated,
		OccurredAt: s.now().UTC(),
	})
	return s.toDTO(updated), nil
}

// ApplyPayment applies an externally recorded payment event to the booking
// ledger. It is the consumer-facing form of RecordPayment.
func (s *BookingService) ApplyPayment(ctx context.Context, evt events.PaymentRecordedEvent) error {
	_, err := s.RecordPayment(ctx, evt.BookingID, RecordPaymentRequest{
		Advance: evt.Advance,
		Balance: evt.Balance,
		Mode:    evt.Mode,
	})
	return err
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, id int64) (*BookingDTO, error) {
	set, _, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	for _, b := range set {
		if b.ID == id {
			return s.toDTO(b), nil
		}
	}
	return nil, &schedule.NotFoundError{ID: id}
}

// ListUpcoming returns today's and future bookings, soonest first, optionally
// filtered by a customer-name or date substring.
func (s *BookingService) ListUpcoming(ctx context.Context, query string) ([]BookingDTO, error) {
	set, _, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	matched := schedule.Search(set, query)
	return s.toDTOs(schedule.Upcoming(matched, schedule.DateOf(s.now()))), nil
}

// ListHistory returns past bookings, most recent date first, optionally
// filtered by a customer-name or date substring.
func (s *BookingService) ListHistory(ctx context.Context, query string) ([]BookingDTO, error) {
	set, _, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	matched := schedule.Search(set, query)
	return s.toDTOs(schedule.History(matched, schedule.DateOf(s.now()))), nil
}

// GetAvailability returns the free intervals of the given date.
func (s *BookingService) GetAvailability(ctx context.Context, date string) (*AvailabilityDTO, error) {
	d, err := schedule.ParseDate(date)
	if err != nil {
		return nil, schedule.NewValidationError(err.Error())
	}
	set, _, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return &AvailabilityDTO{
		Date:      d,
		FreeSlots: schedule.FreeSlots(set, d, s.scheduler.Grid()),
	}, nil
}

// GetBookingStats returns ledger aggregates over the whole record set (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	set, _, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	stats := &BookingStatsDTO{
		TotalBookings: int64(len(set)),
		ByPaymentMode: make(map[string]int64),
	}
	for _, b := range set {
		stats.ByPaymentMode[string(b.PaymentMode)]++
		stats.TotalCharged += int64(b.TotalCharge)
		stats.TotalCollected += int64(b.AdvancePaid + b.BalancePaid)
		if b.RemainingDue > 0 {
			stats.TotalDue += int64(b.RemainingDue)
		}
	}
	return stats, nil
}

// --- Helpers ---

// mutate runs op under the schedule lock as a load-apply-replace cycle. The
// revision check in ReplaceAll is the second guard: if another writer slipped
// past the lock, the replacement is rejected rather than retried.
func (s *BookingService) mutate(ctx context.Context, op func(set []schedule.Booking) ([]schedule.Booking, error)) error {
	return s.locker.WithLock(ctx, func(ctx context.Context) error {
		set, revision, err := s.store.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to load bookings: %w", err)
		}
		next, err := op(set)
		if err != nil {
			return err
		}
		return s.store.ReplaceAll(ctx, next, revision)
	})
}

func candidateFrom(req CreateBookingRequest) schedule.Candidate {
	return schedule.Candidate{
		Date:        schedule.Date(req.Date),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		RatePerHour: schedule.Money(req.RatePerHour),
		AdvancePaid: schedule.Money(req.AdvancePaid),
		BalancePaid: schedule.Money(req.BalancePaid),
		PaymentMode: schedule.PaymentMode(req.PaymentMode),
		BookedBy:    req.BookedBy,
		Remarks:     req.Remarks,
	}
}

func (s *BookingService) toDTO(b schedule.Booking) *BookingDTO {
	if b.Overpaid() {
		s.logger.Warn("booking payments exceed total charge",
			zap.Int64("booking_id", b.ID),
			zap.Int64("remaining_due", int64(b.RemainingDue)),
		)
	}
	return &BookingDTO{Booking: b, Overpaid: b.Overpaid()}
}

func (s *BookingService) toDTOs(set []schedule.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(set))
	for i, b := range set {
		dtos[i] = BookingDTO{Booking: b, Overpaid: b.Overpaid()}
	}
	return dtos
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("sai-star-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
