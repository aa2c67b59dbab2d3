package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ScopeRequest указывает область действия операции над бронированием:
// только это вхождение или это и все будущие вхождения серии
type ScopeRequest struct {
	ApplyToSeries bool `json:"applyToSeries"`
}

// GetCourtBookingsRequest запрос на получение бронирований корта
type GetCourtBookingsRequest struct {
	CourtID          int64      `json:"courtId"`
	From             *time.Time `json:"from,omitempty"`             // Начало периода (опционально)
	To               *time.Time `json:"to,omitempty"`               // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCourtBookingsRequest) ToDomainFilter() (domain.CourtBookingsFilter, error) {
	filter := domain.CourtBookingsFilter{
		CourtID:          r.CourtID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// RecurrenceResponse правило повторения (присутствует только на первом
// вхождении серии)
type RecurrenceResponse struct {
	Kind       string  `json:"kind"`
	Interval   int     `json:"interval"`
	Weekdays   []int   `json:"weekdays,omitempty"`
	DayOfMonth int     `json:"dayOfMonth,omitempty"`
	EndDate    *string `json:"endDate,omitempty"` // "2025-12-31"
	Count      *int    `json:"count,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	CourtID         int64   `json:"courtId"`
	OccupantKind    string  `json:"occupantKind"`
	UserID          *int64  `json:"userId,omitempty"`
	GuestName       *string `json:"guestName,omitempty"`
	GuestPhone      *string `json:"guestPhone,omitempty"`
	StartAt         string  `json:"startAt"` // ISO 8601, UTC
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	IsLesson        bool    `json:"isLesson"`

	// Снапшот тарификации на момент создания/изменения
	HourlyRate      *float64 `json:"hourlyRate,omitempty"`
	ComputedPrice   *float64 `json:"computedPrice,omitempty"`
	NegotiatedPrice *float64 `json:"negotiatedPrice,omitempty"`

	SeriesID   *string             `json:"seriesId,omitempty"`
	Recurrence *RecurrenceResponse `json:"recurrence,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// SkippedOccurrence вхождение серии, пропущенное пакетной операцией
type SkippedOccurrence struct {
	BookingID int64  `json:"bookingId,omitempty"`
	StartAt   string `json:"startAt"` // ISO 8601, UTC
	Reason    string `json:"reason"`
}

// ScopeResult результат операции над бронированием или хвостом серии
type ScopeResult struct {
	Affected []int64             `json:"affected"`
	Skipped  []SkippedOccurrence `json:"skipped"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		CourtID:         b.CourtID,
		OccupantKind:    string(b.Occupant.Kind),
		StartAt:         b.StartAt.UTC().Format(time.RFC3339),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		IsLesson:        b.IsLesson,
		HourlyRate:      b.HourlyRate,
		ComputedPrice:   b.ComputedPrice,
		NegotiatedPrice: b.NegotiatedPrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.Occupant.IsRegistered() {
		userID := b.Occupant.UserID
		resp.UserID = &userID
	} else {
		name := b.Occupant.GuestName
		resp.GuestName = &name
		if b.Occupant.GuestPhone != "" {
			phone := b.Occupant.GuestPhone
			resp.GuestPhone = &phone
		}
	}

	if b.SeriesID != nil {
		id := b.SeriesID.String()
		resp.SeriesID = &id
	}

	if b.Rule != nil {
		resp.Recurrence = fromDomainRule(b.Rule)
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

func fromDomainRule(rule *domain.RecurrenceRule) *RecurrenceResponse {
	resp := &RecurrenceResponse{
		Kind:       string(rule.Kind),
		Interval:   rule.Interval,
		Weekdays:   rule.Weekdays,
		DayOfMonth: rule.DayOfMonth,
		Count:      rule.Count,
	}
	if rule.EndDate != nil {
		date := rule.EndDate.Format(domain.DateFormat)
		resp.EndDate = &date
	}
	return resp
}
