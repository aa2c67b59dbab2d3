package update_occurrence

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/scheduling"
)

// Changes - изменяемые поля бронирования. Nil означает "оставить как есть".
type Changes struct {
	StartAt         *time.Time
	DurationMinutes *int
	Occupant        *domain.Occupant
	IsLesson        *bool
	NegotiatedPrice *float64
	Notes           *string
}

// Empty проверяет, что не передано ни одного изменения
func (c Changes) Empty() bool {
	return c.StartAt == nil &&
		c.DurationMinutes == nil &&
		c.Occupant == nil &&
		c.IsLesson == nil &&
		c.NegotiatedPrice == nil &&
		c.Notes == nil
}

// Request - запрос на изменение бронирования
type Request struct {
	BookingID     int64
	ApplyToSeries bool
	Changes       Changes
}

// Result - результат изменения. При ApplyToSeries часть будущих
// вхождений может быть пропущена из-за конфликтов.
type Result struct {
	Updated []*domain.Booking
	Skipped []scheduling.Skipped
}
