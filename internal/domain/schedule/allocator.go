package schedule

// NextID returns the identifier for a booking being created: one more than
// the highest identifier in the set, or 1 for an empty set. Non-positive ids
// left behind by a corrupted store are treated as absent rather than
// propagated, so the result is always positive.
func NextID(set []Booking) int64 {
	var max int64
	for _, b := range set {
		id := b.ID
		if id < 0 {
			id = 0
		}
		if id > max {
			max = id
		}
	}
	return max + 1
}
