package schedule

// ConflictsWith returns the bookings on date whose half-open interval
// [start_time, end_time) intersects the candidate [start, end). A booking
// with ID equal to excludeID is skipped, so an edit is never compared against
// itself; pass 0 to exclude nothing.
//
// The test existing.start < end && existing.end > start is exact for
// half-open intervals: back-to-back bookings are admitted, any partial or
// total overlap is reported. Pure predicate, no side effects.
func ConflictsWith(set []Booking, date Date, start, end TimeOfDay, excludeID int64) []Booking {
	var conflicts []Booking
	for _, b := range set {
		if b.Date != date {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if b.StartTime < end && b.EndTime > start {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}
