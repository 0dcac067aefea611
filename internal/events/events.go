package events

import (
	"time"

	"github.com/Manoj814/SaiStarBooking/internal/domain/schedule"
)

// Kafka topics.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
)

// Event types carried in the CloudEvent envelope.
const (
	BookingCreated         = "booking.created"
	BookingUpdated         = "booking.updated"
	BookingDeleted         = "booking.deleted"
	BookingPaymentRecorded = "booking.payment_recorded"

	// PaymentRecorded arrives on the payment topic from the counter terminal.
	PaymentRecorded = "payment.recorded"
)

// BookingCreatedEvent is published after a booking is admitted to the calendar.
type BookingCreatedEvent struct {
	Booking    schedule.Booking `json:"booking"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// BookingUpdatedEvent is published after a booking is rewritten in place.
type BookingUpdatedEvent struct {
	Booking    schedule.Booking `json:"booking"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// BookingDeletedEvent is published after a booking is removed.
type BookingDeletedEvent struct {
	BookingID  int64         `json:"booking_id"`
	Date       schedule.Date `json:"date"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// BookingPaymentRecordedEvent is published after payment fields on a booking
// change, carrying the recomputed ledger.
type BookingPaymentRecordedEvent struct {
	Booking    schedule.Booking `json:"booking"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// PaymentRecordedEvent is the inbound payload from the payment topic. Amounts
// are in paise and add onto whatever the booking already carries.
type PaymentRecordedEvent struct {
	BookingID  int64     `json:"booking_id"`
	Advance    int64     `json:"advance"`
	Balance    int64     `json:"balance"`
	Mode       string    `json:"mode"`
	OccurredAt time.Time `json:"occurred_at"`
}
