package domain

// Business validation constants
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 1440 // full day

	MinutesPerDay = 1440

	// Hard safety ceiling for open-ended recurrence expansion.
	// An open-ended weekly rule caps at roughly 7 years of occurrences.
	MaxSeriesOccurrences = 365

	// Sub-cent noise tolerated when comparing computed prices
	PriceEpsilon = 0.01

	MaxNotesLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих слот
// Используется при выборке бронирований для проверки пересечений
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}
