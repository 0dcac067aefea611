package schedule

// Recompute derives duration, total charge and remaining due from the
// booking's input fields, overwriting whatever the record held before. It is
// idempotent and must run on every create or edit; derived fields are never
// trusted from caller input.
func Recompute(b *Booking) {
	minutes := b.EndTime.Sub(b.StartTime)
	b.DurationHours = float64(minutes) / 60.0
	b.TotalCharge = proRate(minutes, b.RatePerHour)
	b.RemainingDue = b.TotalCharge - b.AdvancePaid - b.BalancePaid
}

// proRate charges a per-hour rate for a duration in minutes.
//
// Rounding policy: the exact product minutes*rate/60 is rounded half-up to
// the minor currency unit. Applied once at write time, so re-running the
// calculation on stored inputs always reproduces the stored outputs.
func proRate(minutes int, ratePerHour Money) Money {
	n := int64(minutes) * int64(ratePerHour)
	q := n / 60
	if (n%60)*2 >= 60 {
		q++
	}
	return Money(q)
}
