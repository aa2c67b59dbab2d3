package domain

import "time"

// TimeRange is a half-open interval [Start, Start+Duration) on the UTC timeline
type TimeRange struct {
	Start           time.Time
	DurationMinutes int
}

// End returns the exclusive end instant of the range
func (r TimeRange) End() time.Time {
	return r.Start.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// IsValid returns true if the range has positive duration
func (r TimeRange) IsValid() bool {
	return r.DurationMinutes > 0
}

// Overlaps reports whether two half-open ranges intersect.
// Ranges that merely touch at a boundary do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End()) && other.Start.Before(r.End())
}

// Date returns the UTC calendar date of the range start (midnight instant)
func (r TimeRange) Date() time.Time {
	y, m, d := r.Start.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the UTC weekday of the range start (0 = Sunday)
func (r TimeRange) Weekday() int {
	return int(r.Start.UTC().Weekday())
}

// StartMinuteOfDay projects the range start onto a minute of day (0-1439)
func (r TimeRange) StartMinuteOfDay() int {
	t := r.Start.UTC()
	return t.Hour()*60 + t.Minute()
}

// EndMinuteOfDay projects the exclusive range end onto a minute of day.
// For a range crossing midnight the result exceeds MinutesPerDay; minute
// interval comparisons stay correct against same-day windows.
func (r TimeRange) EndMinuteOfDay() int {
	return r.StartMinuteOfDay() + r.DurationMinutes
}
