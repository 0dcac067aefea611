package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", s, err)
	}
	return tod
}

func TestRecompute_WholeHour(t *testing.T) {
	b := Booking{
		StartTime:   mustTime(t, "20:00"),
		EndTime:     mustTime(t, "21:00"),
		RatePerHour: 100000, // 1000 rupees/hour in paise
	}
	Recompute(&b)

	assert.Equal(t, 1.0, b.DurationHours)
	assert.Equal(t, Money(100000), b.TotalCharge)
	assert.Equal(t, Money(100000), b.RemainingDue)
}

func TestRecompute_FractionalHours(t *testing.T) {
	b := Booking{
		StartTime:   mustTime(t, "18:00"),
		EndTime:     mustTime(t, "19:30"),
		RatePerHour: 100000,
		AdvancePaid: 50000,
	}
	Recompute(&b)

	assert.Equal(t, 1.5, b.DurationHours)
	assert.Equal(t, Money(150000), b.TotalCharge)
	assert.Equal(t, Money(100000), b.RemainingDue)
}

func TestRecompute_RoundsHalfUpToMinorUnit(t *testing.T) {
	// 30 minutes at 1.01 paise-odd rates exercises the /60 remainder.
	// 35 * 101 = 3535; 3535/60 = 58 r 55 -> rounds up to 59.
	b := Booking{
		StartTime:   TimeOfDay(0),
		EndTime:     TimeOfDay(35),
		RatePerHour: 101,
	}
	Recompute(&b)
	assert.Equal(t, Money(59), b.TotalCharge)

	// 25 * 101 = 2525; 2525/60 = 42 r 5 -> stays 42.
	b.EndTime = TimeOfDay(25)
	Recompute(&b)
	assert.Equal(t, Money(42), b.TotalCharge)
}

func TestRecompute_Idempotent(t *testing.T) {
	b := Booking{
		StartTime:   mustTime(t, "06:00"),
		EndTime:     mustTime(t, "08:30"),
		RatePerHour: 75050,
		AdvancePaid: 20000,
		BalancePaid: 1500,
	}
	Recompute(&b)
	first := b
	Recompute(&b)
	assert.Equal(t, first, b)
}

func TestRecompute_OverwritesStaleDerivedFields(t *testing.T) {
	b := Booking{
		StartTime:     mustTime(t, "10:00"),
		EndTime:       mustTime(t, "11:00"),
		RatePerHour:   100000,
		DurationHours: 99,
		TotalCharge:   1,
		RemainingDue:  -5,
	}
	Recompute(&b)
	assert.Equal(t, 1.0, b.DurationHours)
	assert.Equal(t, Money(100000), b.TotalCharge)
	assert.Equal(t, Money(100000), b.RemainingDue)
}

func TestOverpaid(t *testing.T) {
	b := Booking{
		StartTime:   mustTime(t, "10:00"),
		EndTime:     mustTime(t, "11:00"),
		RatePerHour: 100000,
		AdvancePaid: 80000,
		BalancePaid: 30000,
	}
	Recompute(&b)
	assert.Equal(t, Money(-10000), b.RemainingDue)
	assert.True(t, b.Overpaid())
}
