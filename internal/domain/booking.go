package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents one concrete occurrence of a court reservation.
// Occurrences generated from one recurrence rule share a non-nil SeriesID;
// a standalone booking has SeriesID = nil.
type Booking struct {
	ID              int64
	CourtID         int64
	Occupant        Occupant
	StartAt         time.Time // UTC instant
	DurationMinutes int
	Status          BookingStatus
	IsLesson        bool

	// Price snapshot taken at creation/update time.
	// Nil when the court has no tariff configured for the slot.
	HourlyRate    *float64
	ComputedPrice *float64

	// Manual price override. Never touched by price recomputation.
	NegotiatedPrice *float64

	SeriesID *uuid.UUID
	// Rule is stored on the first occurrence of a series, nil elsewhere.
	Rule *RecurrenceRule

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the half-open time range occupied by the booking
func (b *Booking) Range() TimeRange {
	return TimeRange{Start: b.StartAt, DurationMinutes: b.DurationMinutes}
}

// IsActive returns true if the booking still occupies its slot.
// Cancelled bookings do not participate in conflict detection.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking fields can still be modified
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusConfirmed
}

// IsSeriesMember returns true if the booking belongs to a recurring series
func (b *Booking) IsSeriesMember() bool {
	return b.SeriesID != nil
}

// CourtBookingsFilter фильтр для выборки бронирований корта
type CourtBookingsFilter struct {
	CourtID          int64          // Обязательный параметр
	From             *time.Time     // Начало окна (опционально)
	To               *time.Time     // Конец окна, не включается (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
