package schedule

import "errors"

var (
	// ErrOutsideAvailability means the requested interval does not fit inside
	// any open window for the day.
	ErrOutsideAvailability = errors.New("requested time is outside availability")

	// ErrSlotTaken means the requested interval overlaps an existing
	// reservation.
	ErrSlotTaken = errors.New("time slot not available")
)

// CanAccept decides whether a requested interval may be booked. It returns
// ErrOutsideAvailability if the interval is not fully contained in at least
// one availability window, ErrSlotTaken if it overlaps any existing interval,
// and nil otherwise. The two failures are distinct user-facing outcomes and
// are checked in that order.
//
// Every interval in existing is treated as binding: the caller must pass only
// reservations that still hold their slot (pending or confirmed). No status
// filtering happens here.
//
// CanAccept is a pure check. It performs no locking, so a check-then-create
// sequence must be serialized externally per (service, date) to keep
// reservations non-overlapping under concurrent booking attempts.
func CanAccept(requested Interval, availability, existing []Interval) error {
	contained := false
	for _, w := range availability {
		if w.Contains(requested) {
			contained = true
			break
		}
	}
	if !contained {
		return ErrOutsideAvailability
	}
	for _, e := range existing {
		if requested.Overlaps(e) {
			return ErrSlotTaken
		}
	}
	return nil
}
