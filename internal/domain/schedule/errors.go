package schedule

import (
	"fmt"
	"strings"
)

// InvalidIntervalError reports a candidate whose times cannot form a booking
// interval. It is always recoverable by correcting the input.
type InvalidIntervalError struct {
	Start  TimeOfDay
	End    TimeOfDay
	Reason string
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval [%s, %s): %s", e.Start, e.End, e.Reason)
}

// OverlapError reports that a candidate interval intersects one or more
// existing bookings on the same date. Conflicts carries the blocking
// bookings for diagnostic display.
type OverlapError struct {
	Date      Date
	Conflicts []Booking
}

func (e *OverlapError) Error() string {
	ids := make([]string, len(e.Conflicts))
	for i, b := range e.Conflicts {
		ids[i] = fmt.Sprintf("#%d [%s, %s)", b.ID, b.StartTime, b.EndTime)
	}
	return fmt.Sprintf("booking overlaps existing reservation(s) on %s: %s", e.Date, strings.Join(ids, ", "))
}

// NotFoundError reports an update or delete against an identifier that is not
// in the record set, usually a stale caller view.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking %d not found", e.ID)
}

// ValidationError reports a candidate field that fails a domain rule other
// than interval ordering (negative amounts, unknown payment mode).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ConflictError reports that the persisted record set moved underneath the
// caller (schedule revision mismatch). The caller should reload and retry.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}
