package domain

import "time"

// BlackoutWindow is an administrator-defined period during which booking is
// forbidden. Scoped to a facility; CourtIDs narrows it to specific courts
// (nil or empty = every court of the facility). The date range is inclusive
// by calendar date; MinuteStart/MinuteEnd bound the block within each date,
// both nil meaning a full-day block.
type BlackoutWindow struct {
	ID         int64
	FacilityID int64
	CourtIDs   []int64
	Title      string
	DateStart  time.Time // UTC midnight
	DateEnd    time.Time // UTC midnight, inclusive
	// Minute-of-day bounds within each blocked date; half-open [start, end)
	MinuteStart *int
	MinuteEnd   *int
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFullDay returns true when the window blocks each covered date entirely
func (w *BlackoutWindow) IsFullDay() bool {
	return w.MinuteStart == nil || w.MinuteEnd == nil
}

// AppliesToCourt reports whether the window covers the given court
func (w *BlackoutWindow) AppliesToCourt(courtID int64) bool {
	if len(w.CourtIDs) == 0 {
		return true
	}
	for _, id := range w.CourtIDs {
		if id == courtID {
			return true
		}
	}
	return false
}

// CoversDate reports whether the UTC calendar date falls inside the window's
// inclusive date range
func (w *BlackoutWindow) CoversDate(date time.Time) bool {
	y, m, d := date.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !day.Before(w.DateStart) && !day.After(w.DateEnd)
}

// BlocksMinutes reports whether the window's minute interval intersects the
// half-open minute interval [startMinute, endMinute). Always true for a
// full-day window.
func (w *BlackoutWindow) BlocksMinutes(startMinute, endMinute int) bool {
	if w.IsFullDay() {
		return true
	}
	return *w.MinuteStart < endMinute && startMinute < *w.MinuteEnd
}
