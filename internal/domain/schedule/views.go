package schedule

import (
	"sort"
	"strings"
)

// Interval is a free gap on a day's schedule, half-open like a booking.
type Interval struct {
	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`
}

// Upcoming returns the bookings on or after today, ordered by date then start
// time ascending. The result is a fresh slice.
func Upcoming(set []Booking, today Date) []Booking {
	var out []Booking
	for _, b := range set {
		if !b.Date.Before(today) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// History returns the bookings before today, newest date first with start
// times ascending within a date.
func History(set []Booking, today Date) []Booking {
	var out []Booking
	for _, b := range set {
		if b.Date.Before(today) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[j].Date.Before(out[i].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// Search filters bookings by a case-insensitive substring match on the
// customer name or the date. An empty query keeps everything.
func Search(set []Booking, query string) []Booking {
	if query == "" {
		out := make([]Booking, len(set))
		copy(out, set)
		return out
	}
	q := strings.ToLower(query)
	var out []Booking
	for _, b := range set {
		if strings.Contains(strings.ToLower(b.BookedBy), q) || strings.Contains(string(b.Date), q) {
			out = append(out, b)
		}
	}
	return out
}

// FreeSlots returns the free intervals of the given date on the grid,
// adjacent free slots merged into one interval.
func FreeSlots(set []Booking, date Date, grid Grid) []Interval {
	n := grid.SlotCount()
	step := grid.StepMinutes()

	free := make([]bool, n)
	for i := range free {
		free[i] = true
	}
	for _, b := range set {
		if b.Date != date {
			continue
		}
		startIdx := b.StartTime.Minutes() / step
		endIdx := (b.EndTime.Minutes() + step - 1) / step
		if startIdx < 0 {
			startIdx = 0
		}
		if endIdx > n {
			endIdx = n
		}
		for i := startIdx; i < endIdx; i++ {
			free[i] = false
		}
	}

	var out []Interval
	for i := 0; i < n; {
		if !free[i] {
			i++
			continue
		}
		start := i
		for i < n && free[i] {
			i++
		}
		out = append(out, Interval{
			StartTime: TimeOfDay(start * step),
			EndTime:   TimeOfDay(i * step),
		})
	}
	return out
}
