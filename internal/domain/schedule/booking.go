package schedule

import (
	"fmt"
	"time"
)

// Money is a monetary amount in integer minor units (paise). Derived charges
// are rounded to the minor unit at write time, so repeated recomputation can
// never drift.
type Money int64

// Rupees returns the amount in whole-currency form for display.
func (m Money) Rupees() float64 { return float64(m) / 100.0 }

// PaymentMode is the closed enumeration of accepted payment channels.
type PaymentMode string

const (
	PaymentCash               PaymentMode = "cash"
	PaymentElectronicTransfer PaymentMode = "electronic_transfer"
	PaymentPending            PaymentMode = "pending"
	PaymentMixed              PaymentMode = "mixed"
)

// IsValid returns true if the payment mode is recognized.
func (p PaymentMode) IsValid() bool {
	switch p {
	case PaymentCash, PaymentElectronicTransfer, PaymentPending, PaymentMixed:
		return true
	}
	return false
}

// String returns the string representation of the payment mode.
func (p PaymentMode) String() string { return string(p) }

// ParsePaymentMode converts a string to a PaymentMode, returning an error if invalid.
func ParsePaymentMode(s string) (PaymentMode, error) {
	mode := PaymentMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid payment mode: %s", s)
	}
	return mode, nil
}

// NormalizePaymentMode coerces a possibly stale stored value to a valid mode.
// Unknown values fall back to cash, matching how the operator console treats
// legacy rows.
func NormalizePaymentMode(s string) PaymentMode {
	mode := PaymentMode(s)
	if !mode.IsValid() {
		return PaymentCash
	}
	return mode
}

// Date is a calendar date in "YYYY-MM-DD" form. The ground lives in a single
// fixed local calendar, so no time zone is attached. The ISO form is lexically
// monotonic, which keeps Date ordering a plain string comparison.
type Date string

// ParseDate validates and returns a calendar date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// DateOf truncates a wall-clock instant to its calendar date.
func DateOf(t time.Time) Date {
	return Date(t.Format("2006-01-02"))
}

// String returns the "YYYY-MM-DD" form.
func (d Date) String() string { return string(d) }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d < o }

// Booking is one scheduled reservation of the ground together with its
// ledger fields. DurationHours, TotalCharge and RemainingDue are derived and
// overwritten by Recompute on every admission; they are never trusted from
// caller input.
type Booking struct {
	ID            int64       `json:"id"`
	Date          Date        `json:"date"`
	StartTime     TimeOfDay   `json:"start_time"`
	EndTime       TimeOfDay   `json:"end_time"`
	DurationHours float64     `json:"duration_hours"`
	RatePerHour   Money       `json:"rate_per_hour"`
	TotalCharge   Money       `json:"total_charge"`
	AdvancePaid   Money       `json:"advance_paid"`
	BalancePaid   Money       `json:"balance_paid"`
	PaymentMode   PaymentMode `json:"payment_mode"`
	RemainingDue  Money       `json:"remaining_due"`
	BookedBy      string      `json:"booked_by"`
	Remarks       string      `json:"remarks"`
}

// Overpaid reports whether the recorded payments exceed the total charge.
// Overpayment is surfaced, not rejected.
func (b Booking) Overpaid() bool { return b.RemainingDue < 0 }

// Candidate carries the operator-supplied fields of a booking being created
// or edited. Derived fields have no place here.
type Candidate struct {
	Date        Date        `json:"date"`
	StartTime   TimeOfDay   `json:"start_time"`
	EndTime     TimeOfDay   `json:"end_time"`
	RatePerHour Money       `json:"rate_per_hour"`
	AdvancePaid Money       `json:"advance_paid"`
	BalancePaid Money       `json:"balance_paid"`
	PaymentMode PaymentMode `json:"payment_mode"`
	BookedBy    string      `json:"booked_by"`
	Remarks     string      `json:"remarks"`
}
