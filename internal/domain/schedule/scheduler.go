package schedule

// Scheduler admits candidate bookings into a record set. Every operation is a
// pure function over the supplied set: the input slice is never mutated, and
// on any failure the caller's set is exactly what it was.
type Scheduler struct {
	grid Grid
}

// NewScheduler creates a Scheduler validating against the given slot grid.
func NewScheduler(grid Grid) *Scheduler {
	return &Scheduler{grid: grid}
}

// Grid returns the slot grid the scheduler validates against.
func (s *Scheduler) Grid() Grid { return s.grid }

// Create validates and admits a new booking, allocating its identifier and
// computing the ledger fields. It returns the replacement record set and the
// admitted booking.
func (s *Scheduler) Create(set []Booking, c Candidate) ([]Booking, Booking, error) {
	if err := s.validate(c); err != nil {
		return nil, Booking{}, err
	}
	if conflicts := ConflictsWith(set, c.Date, c.StartTime, c.EndTime, 0); len(conflicts) > 0 {
		return nil, Booking{}, &OverlapError{Date: c.Date, Conflicts: conflicts}
	}

	b := bookingFrom(c)
	b.ID = NextID(set)
	Recompute(&b)

	out := make([]Booking, 0, len(set)+1)
	out = append(out, set...)
	out = append(out, b)
	return out, b, nil
}

// Update replaces the fields of an existing booking after re-validating the
// interval against every other booking and recomputing the ledger. The
// booking keeps its identifier.
func (s *Scheduler) Update(set []Booking, id int64, c Candidate) ([]Booking, Booking, error) {
	idx := indexOf(set, id)
	if idx < 0 {
		return nil, Booking{}, &NotFoundError{ID: id}
	}
	if err := s.validate(c); err != nil {
		return nil, Booking{}, err
	}
	if conflicts := ConflictsWith(set, c.Date, c.StartTime, c.EndTime, id); len(conflicts) > 0 {
		return nil, Booking{}, &OverlapError{Date: c.Date, Conflicts: conflicts}
	}

	b := bookingFrom(c)
	b.ID = id
	Recompute(&b)

	out := make([]Booking, len(set))
	copy(out, set)
	out[idx] = b
	return out, b, nil
}

// Delete permanently removes a booking. Its identifier is retired, never
// reissued to a later booking.
func (s *Scheduler) Delete(set []Booking, id int64) ([]Booking, Booking, error) {
	idx := indexOf(set, id)
	if idx < 0 {
		return nil, Booking{}, &NotFoundError{ID: id}
	}

	removed := set[idx]
	out := make([]Booking, 0, len(set)-1)
	out = append(out, set[:idx]...)
	out = append(out, set[idx+1:]...)
	return out, removed, nil
}

func (s *Scheduler) validate(c Candidate) error {
	if c.StartTime >= c.EndTime {
		return &InvalidIntervalError{Start: c.StartTime, End: c.EndTime, Reason: "start must be strictly before end"}
	}
	if !c.StartTime.InDay() || !c.EndTime.InDay() {
		return &InvalidIntervalError{Start: c.StartTime, End: c.EndTime, Reason: "times must lie within a single day"}
	}
	if !s.grid.Aligned(c.StartTime) || !s.grid.Aligned(c.EndTime) {
		return &InvalidIntervalError{Start: c.StartTime, End: c.EndTime,
			Reason: "times must align to the slot grid"}
	}
	if _, err := ParseDate(string(c.Date)); err != nil {
		return NewValidationError(err.Error())
	}
	if c.RatePerHour < 0 {
		return NewValidationError("rate_per_hour must not be negative")
	}
	if c.AdvancePaid < 0 || c.BalancePaid < 0 {
		return NewValidationError("recorded payments must not be negative")
	}
	if !c.PaymentMode.IsValid() {
		return NewValidationError("invalid payment mode: " + string(c.PaymentMode))
	}
	return nil
}

func bookingFrom(c Candidate) Booking {
	return Booking{
		Date:        c.Date,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		RatePerHour: c.RatePerHour,
		AdvancePaid: c.AdvancePaid,
		BalancePaid: c.BalancePaid,
		PaymentMode: c.PaymentMode,
		BookedBy:    c.BookedBy,
		Remarks:     c.Remarks,
	}
}

func indexOf(set []Booking, id int64) int {
	for i, b := range set {
		if b.ID == id {
			return i
		}
	}
	return -1
}
