package schedule

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the wire format for calendar dates. Dates are time-zone naive;
// the day is taken as given.
const DateLayout = "2006-01-02"

// Window is a recurring weekly open interval during which a service may be
// booked. A service may carry several disjoint windows for the same weekday
// (a lunch-break split, for example).
type Window struct {
	Day      time.Weekday
	Interval Interval
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidFormat, s)
	}
	return d, nil
}

// WindowsFor returns the open intervals applicable to the given date's
// weekday, sorted by start time ascending. An empty result means the
// service is closed that day, which is a normal state rather than an error.
func WindowsFor(windows []Window, date time.Time) []Interval {
	day := date.Weekday()
	var open []Interval
	for _, w := range windows {
		if w.Day == day {
			open = append(open, w.Interval)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].Start < open[j].Start })
	return open
}
