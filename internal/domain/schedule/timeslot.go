package schedule

import (
	"fmt"
	"time"
)

// MinutesPerDay is the size of the day's time axis.
const MinutesPerDay = 24 * 60

// DefaultStepMinutes is the canonical booking granularity of the ground.
const DefaultStepMinutes = 30

// TimeOfDay is a time-of-day value normalized to minutes since midnight.
// All ordering and arithmetic happen on the integer form; the zero-padded
// "HH:MM" string form exists only at the storage and transport boundaries.
type TimeOfDay int

// ParseTimeOfDay parses a zero-padded 24h "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// String returns the zero-padded "HH:MM" representation.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Minutes returns the value as minutes since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

// Sub returns the number of minutes between t and an earlier time o.
func (t TimeOfDay) Sub(o TimeOfDay) int { return int(t) - int(o) }

// Before reports whether t is strictly earlier than o.
func (t TimeOfDay) Before(o TimeOfDay) bool { return t < o }

// InDay reports whether t lies on the day's axis.
func (t TimeOfDay) InDay() bool { return t >= 0 && t < MinutesPerDay }

// MarshalJSON encodes the time as its "HH:MM" string form.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted "HH:MM" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid time of day literal %s", data)
	}
	parsed, err := ParseTimeOfDay(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Grid is the fixed discretization of the day's schedule. Bookings start and
// end on grid boundaries; the interval between boundaries is continuous.
type Grid struct {
	stepMinutes int
}

// NewGrid creates a grid with the given step. The step must be positive and
// divide the day evenly.
func NewGrid(stepMinutes int) (Grid, error) {
	if stepMinutes <= 0 || MinutesPerDay%stepMinutes != 0 {
		return Grid{}, fmt.Errorf("invalid slot step %d: must be positive and divide %d evenly", stepMinutes, MinutesPerDay)
	}
	return Grid{stepMinutes: stepMinutes}, nil
}

// DefaultGrid returns the canonical 30-minute grid.
func DefaultGrid() Grid {
	g, _ := NewGrid(DefaultStepMinutes)
	return g
}

// StepMinutes returns the grid step.
func (g Grid) StepMinutes() int { return g.stepMinutes }

// SlotCount returns the number of slot boundaries in a day.
func (g Grid) SlotCount() int { return MinutesPerDay / g.stepMinutes }

// Slots returns the day's slot boundaries, 00:00 inclusive up to the last
// boundary before midnight. The slice is freshly allocated on every call.
func (g Grid) Slots() []TimeOfDay {
	slots := make([]TimeOfDay, 0, g.SlotCount())
	for m := 0; m < MinutesPerDay; m += g.stepMinutes {
		slots = append(slots, TimeOfDay(m))
	}
	return slots
}

// Aligned reports whether t falls on a slot boundary of the grid.
func (g Grid) Aligned(t TimeOfDay) bool { return int(t)%g.stepMinutes == 0 }
