package schedule

import (
	"errors"
	"fmt"
)

// MinutesPerDay bounds every TimeOfDay value. An Interval end of exactly
// MinutesPerDay means the interval runs to midnight.
const MinutesPerDay = 24 * 60

var ErrInvalidFormat = errors.New("invalid time format")

// TimeOfDay is a clock time expressed as minutes since midnight.
// Times are always parsed from "HH:MM" text at the boundary and compared
// as integers internally.
type TimeOfDay int

// ParseTimeOfDay parses strict zero-padded 24-hour "HH:MM" text.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidFormat, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidFormat, s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q (hour 00-23, minute 00-59)", ErrInvalidFormat, s)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// String formats the time as zero-padded "HH:MM", the inverse of ParseTimeOfDay.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Interval is a half-open clock-time range [Start, End) within one day.
// Invariant: Start < End.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewInterval derives an interval from a start time and a duration.
// Callers never supply the end time directly. Fails if the interval would
// run past midnight; midnight-crossing bookings are not supported.
func NewInterval(start TimeOfDay, durationMinutes int) (Interval, error) {
	if durationMinutes <= 0 {
		return Interval{}, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}
	end := start + TimeOfDay(durationMinutes)
	if end > MinutesPerDay {
		return Interval{}, fmt.Errorf("interval starting at %s with duration %dm crosses midnight: %w",
			start, durationMinutes, ErrOutsideAvailability)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any time.
// Adjacent intervals ([09:00,10:00) and [10:00,11:00)) do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether inner lies fully within a.
func (a Interval) Contains(inner Interval) bool {
	return a.Start <= inner.Start && inner.End <= a.End
}

func (a Interval) String() string {
	return fmt.Sprintf("%s-%s", a.Start, a.End)
}
