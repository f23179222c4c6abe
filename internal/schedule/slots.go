package schedule

// DefaultCadence is the step in minutes between candidate slot starts.
// It is fixed rather than inferred from the service duration.
const DefaultCadence = 30

// GenerateSlots enumerates every bookable interval of exactly
// durationMinutes within the given availability windows, stepping candidate
// starts at cadenceMinutes from each window's start. Candidates that overlap
// an existing interval are skipped; containment is guaranteed by
// construction. A cadence of zero or less falls back to DefaultCadence.
//
// The result is ordered by start time within each window, windows in the
// order supplied, and is recomputed fresh on every call: identical inputs
// yield identical output. A window shorter than the duration contributes no
// slots.
func GenerateSlots(availability []Interval, durationMinutes int, existing []Interval, cadenceMinutes int) []Interval {
	if durationMinutes <= 0 {
		return nil
	}
	if cadenceMinutes <= 0 {
		cadenceMinutes = DefaultCadence
	}

	var slots []Interval
	for _, w := range availability {
		for start := w.Start; start+TimeOfDay(durationMinutes) <= w.End; start += TimeOfDay(cadenceMinutes) {
			candidate := Interval{Start: start, End: start + TimeOfDay(durationMinutes)}
			if overlapsAny(candidate, existing) {
				continue
			}
			slots = append(slots, candidate)
		}
	}
	return slots
}

func overlapsAny(candidate Interval, existing []Interval) bool {
	for _, e := range existing {
		if candidate.Overlaps(e) {
			return true
		}
	}
	return false
}
