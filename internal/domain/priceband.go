package domain

import "time"

// Court represents a bookable resource of a facility
type Court struct {
	ID         int64
	FacilityID int64
	Name       string
	Active     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceBand is a time-of-day interval with an hourly rate for one court.
// The interval is half-open: [StartMinute, EndMinute). EndMinute may equal
// MinutesPerDay for a band ending at midnight.
type PriceBand struct {
	ID          int64
	CourtID     int64
	StartMinute int // 0-1439
	EndMinute   int // 1-1440, exclusive
	HourlyRate  float64
	// Rate applied to lesson bookings; falls back to HourlyRate when nil
	HourlyRateLesson *float64
	Active           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether the minute of day falls inside the band.
// A minute equal to EndMinute belongs to the next band, not this one.
func (p *PriceBand) Contains(minuteOfDay int) bool {
	return p.StartMinute <= minuteOfDay && minuteOfDay < p.EndMinute
}

// RateFor returns the hourly rate for the booking kind
func (p *PriceBand) RateFor(isLesson bool) float64 {
	if isLesson && p.HourlyRateLesson != nil {
		return *p.HourlyRateLesson
	}
	return p.HourlyRate
}
