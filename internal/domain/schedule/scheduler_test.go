package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCandidate(t *testing.T, date, start, end string, rate Money) Candidate {
	t.Helper()
	return Candidate{
		Date:        Date(date),
		StartTime:   mustTime(t, start),
		EndTime:     mustTime(t, end),
		RatePerHour: rate,
		PaymentMode: PaymentCash,
		BookedBy:    "Ravi",
	}
}

func TestScheduler_CreateUpdateDeleteScenario(t *testing.T) {
	s := NewScheduler(DefaultGrid())
	var set []Booking

	// Create 2024-01-10 20:00-21:00 at 1000/hour.
	set, created, err := s.Create(set, testCandidate(t, "2024-01-10", "20:00", "21:00", 100000))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, 1.0, created.DurationHours)
	assert.Equal(t, Money(100000), created.TotalCharge)
	assert.Equal(t, Money(100000), created.RemainingDue)

	// Overlapping create is rejected and names booking 1.
	_, _, err = s.Create(set, testCandidate(t, "2024-01-10", "20:30", "21:30", 100000))
	var overlap *OverlapError
	require.ErrorAs(t, err, &overlap)
	require.Len(t, overlap.Conflicts, 1)
	assert.Equal(t, int64(1), overlap.Conflicts[0].ID)
	require.Len(t, set, 1)

	// Record a 400 advance through an edit.
	cand := testCandidate(t, "2024-01-10", "20:00", "21:00", 100000)
	cand.AdvancePaid = 40000
	set, updated, err := s.Update(set, 1, cand)
	require.NoError(t, err)
	assert.Equal(t, Money(60000), updated.RemainingDue)

	// Delete empties the set; the next create starts from 1 again.
	set, removed, err := s.Delete(set, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed.ID)
	assert.Empty(t, set)

	set, created, err = s.Create(set, testCandidate(t, "2024-01-10", "09:00", "10:00", 100000))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	_ = set
}

func TestScheduler_IDsAreMonotonic(t *testing.T) {
	s := NewScheduler(DefaultGrid())
	var set []Booking
	var err error

	for i := 0; i < 4; i++ {
		start := TimeOfDay((9 + i) * 60)
		cand := Candidate{
			Date:        "2024-03-01",
			StartTime:   start,
			EndTime:     start + 60,
			RatePerHour: 100000,
			PaymentMode: PaymentPending,
		}
		set, _, err = s.Create(set, cand)
		require.NoError(t, err)
	}
	require.Len(t, set, 4)
	for i, b := range set {
		assert.Equal(t, int64(i+1), b.ID)
	}

	// Deleting id 2 retires it: the next id is max+1, never 2.
	set, _, err = s.Delete(set, 2)
	require.NoError(t, err)
	set, created, err := s.Create(set, Candidate{
		Date:        "2024-03-01",
		StartTime:   mustTime(t, "15:00"),
		EndTime:     mustTime(t, "16:00"),
		RatePerHour: 100000,
		PaymentMode: PaymentPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
}

func TestScheduler_NextIDCoercesMalformedIDs(t *testing.T) {
	set := []Booking{{ID: -3}, {ID: 0}}
	assert.Equal(t, int64(1), NextID(set))

	set = append(set, Booking{ID: 9})
	assert.Equal(t, int64(10), NextID(set))
}

func TestScheduler_UpdateSelfExclusion(t *testing.T) {
	s := NewScheduler(DefaultGrid())
	set := []Booking{
		{ID: 5, Date: "2024-01-10", StartTime: mustTime(t, "14:00"), EndTime: mustTime(t, "15:00"), RatePerHour: 100000, PaymentMode: PaymentCash},
	}

	// Saving booking 5 back into its own interval must not flag an overlap.
	_, updated, err := s.Update(set, 5, testCandidate(t, "2024-01-10", "14:00", "15:00", 100000))
	require.NoError(t, err)
	assert.Equal(t, int64(5), updated.ID)
}

func TestScheduler_InvalidInterval(t *testing.T) {
	s := NewScheduler(DefaultGrid())

	var invalid *InvalidIntervalError

	_, _, err := s.Create(nil, testCandidate(t, "2024-01-10", "21:00", "20:00", 100000))
	require.ErrorAs(t, err, &invalid)

	_, _, err = s.Create(nil, testCandidate(t, "2024-01-10", "20:00", "20:00", 100000))
	require.ErrorAs(t, err, &invalid)

	// Misaligned to the 30-minute grid.
	cand := testCandidate(t, "2024-01-10", "20:00", "21:00", 100000)
	cand.EndTime = mustTime(t, "20:45")
	_, _, err = s.Create(nil, cand)
	require.ErrorAs(t, err, &invalid)
}

func TestScheduler_ValidationErrors(t *testing.T) {
	s := NewScheduler(DefaultGrid())

	cand := testCandidate(t, "2024-01-10", "10:00", "11:00", -1)
	_, _, err := s.Create(nil, cand)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	cand = testCandidate(t, "not-a-date", "10:00", "11:00", 100000)
	_, _, err = s.Create(nil, cand)
	require.ErrorAs(t, err, &validation)

	cand = testCandidate(t, "2024-01-10", "10:00", "11:00", 100000)
	cand.PaymentMode = "barter"
	_, _, err = s.Create(nil, cand)
	require.ErrorAs(t, err, &validation)
}

func TestScheduler_FailuresLeaveSetUntouched(t *testing.T) {
	s := NewScheduler(DefaultGrid())
	set := []Booking{
		{ID: 1, Date: "2024-01-10", StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "11:00"), RatePerHour: 100000, PaymentMode: PaymentCash},
	}
	snapshot := make([]Booking, len(set))
	copy(snapshot, set)

	_, _, err := s.Create(set, testCandidate(t, "2024-01-10", "10:30", "11:30", 100000))
	require.Error(t, err)
	_, _, err = s.Update(set, 42, testCandidate(t, "2024-01-10", "12:00", "13:00", 100000))
	require.Error(t, err)
	_, _, err = s.Delete(set, 42)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(42), notFound.ID)

	assert.Equal(t, snapshot, set)
}

func TestScheduler_OperationsDoNotMutateInput(t *testing.T) {
	s := NewScheduler(DefaultGrid())
	set := []Booking{
		{ID: 1, Date: "2024-01-10", StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "11:00"), RatePerHour: 100000, PaymentMode: PaymentCash},
		{ID: 2, Date: "2024-01-10", StartTime: mustTime(t, "12:00"), EndTime: mustTime(t, "13:00"), RatePerHour: 100000, PaymentMode: PaymentCash},
	}
	snapshot := make([]Booking, len(set))
	copy(snapshot, set)

	out, _, err := s.Update(set, 2, testCandidate(t, "2024-01-10", "13:00", "14:00", 100000))
	require.NoError(t, err)
	assert.Equal(t, snapshot, set)
	assert.NotEqual(t, set, out)

	_, _, err = s.Delete(set, 1)
	require.NoError(t, err)
	assert.Equal(t, snapshot, set)
}

func TestScheduler_NoOverlapInvariantAfterMixedOps(t *testing.T) {
	s := NewScheduler(DefaultGrid())
	var set []Booking
	var err error

	type op struct {
		start, end string
	}
	creates := []op{
		{"08:00", "09:30"}, {"09:30", "10:00"}, {"11:00", "12:00"},
		{"09:00", "10:30"}, // rejected: overlaps the first two
		{"12:00", "13:00"},
	}
	for _, o := range creates {
		next, _, cerr := s.Create(set, testCandidate(t, "2024-05-01", o.start, o.end, 50000))
		if cerr != nil {
			var overlap *OverlapError
			require.True(t, errors.As(cerr, &overlap))
			continue
		}
		set = next
	}

	set, _, err = s.Delete(set, 2)
	require.NoError(t, err)
	set, _, err = s.Update(set, 3, testCandidate(t, "2024-05-01", "09:30", "11:00", 50000))
	require.NoError(t, err)

	// Pairwise, no two bookings on the same date intersect.
	for i := 0; i < len(set); i++ {
		for j := i + 1; j < len(set); j++ {
			a, b := set[i], set[j]
			if a.Date != b.Date {
				continue
			}
			assert.False(t, a.StartTime < b.EndTime && a.EndTime > b.StartTime,
				"bookings %d and %d overlap", a.ID, b.ID)
		}
	}
}
