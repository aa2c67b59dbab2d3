package create_series

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/scheduling"
	bookingModels "github.com/m04kA/SMC-ArenaService/internal/service/bookings/models"
	createSeries "github.com/m04kA/SMC-ArenaService/internal/usecase/create_series"
)

// OccupantRequest HTTP модель владельца бронирования.
// Ровно один вариант: userId для зарегистрированного, guestName (+ guestPhone)
// для walk-in.
type OccupantRequest struct {
	Kind       string  `json:"kind"` // "registered" | "walk_in"
	UserID     *int64  `json:"userId,omitempty"`
	GuestName  *string `json:"guestName,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`
}

// RecurrenceRequest HTTP модель правила повторения
type RecurrenceRequest struct {
	Kind       string  `json:"kind"` // "daily" | "weekly" | "monthly"
	Interval   int     `json:"interval,omitempty"`
	Weekdays   []int   `json:"weekdays,omitempty"`   // 0=воскресенье
	DayOfMonth int     `json:"dayOfMonth,omitempty"` // 1-31, с прижатием к концу месяца
	EndDate    *string `json:"endDate,omitempty"`    // "2025-12-31", включительно
	Count      *int    `json:"count,omitempty"`
}

// CreateSeriesRequest HTTP request model
type CreateSeriesRequest struct {
	CourtID         int64              `json:"courtId"`
	StartAt         string             `json:"startAt"` // RFC3339
	DurationMinutes int                `json:"durationMinutes"`
	Occupant        OccupantRequest    `json:"occupant"`
	IsLesson        bool               `json:"isLesson,omitempty"`
	Recurrence      *RecurrenceRequest `json:"recurrence,omitempty"`
	NegotiatedPrice *float64           `json:"negotiatedPrice,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
}

// SkippedResponse пропущенное вхождение серии
type SkippedResponse struct {
	StartAt    string `json:"startAt"` // RFC3339
	Reason     string `json:"reason"`
	ConflictID int64  `json:"conflictId,omitempty"`
}

// CreateSeriesResponse HTTP response model
type CreateSeriesResponse struct {
	SeriesID *string                         `json:"seriesId,omitempty"`
	Created  []bookingModels.BookingResponse `json:"created"`
	Skipped  []SkippedResponse               `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSeriesRequest) ToUseCaseRequest() (*createSeries.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, fmt.Errorf("invalid startAt: %w", err)
	}

	occupant, err := r.Occupant.toDomain()
	if err != nil {
		return nil, err
	}

	rule := domain.RecurrenceRule{Kind: domain.RecurrenceNone}
	if r.Recurrence != nil {
		rule, err = r.Recurrence.toDomain()
		if err != nil {
			return nil, err
		}
	}

	return &createSeries.Request{
		CourtID:         r.CourtID,
		StartAt:         startAt.UTC(),
		DurationMinutes: r.DurationMinutes,
		Rule:            rule,
		Occupant:        occupant,
		IsLesson:        r.IsLesson,
		NegotiatedPrice: r.NegotiatedPrice,
		Notes:           r.Notes,
	}, nil
}

func (o *OccupantRequest) toDomain() (domain.Occupant, error) {
	switch domain.OccupantKind(o.Kind) {
	case domain.OccupantRegistered:
		if o.UserID == nil {
			return domain.Occupant{}, fmt.Errorf("userId is required for registered occupant")
		}
		return domain.RegisteredOccupant(*o.UserID), nil
	case domain.OccupantWalkIn:
		if o.GuestName == nil {
			return domain.Occupant{}, fmt.Errorf("guestName is required for walk-in occupant")
		}
		phone := ""
		if o.GuestPhone != nil {
			phone = *o.GuestPhone
		}
		return domain.WalkInOccupant(*o.GuestName, phone), nil
	default:
		return domain.Occupant{}, fmt.Errorf("unknown occupant kind %q", o.Kind)
	}
}

func (r *RecurrenceRequest) toDomain() (domain.RecurrenceRule, error) {
	rule := domain.RecurrenceRule{
		Kind:       domain.RecurrenceKind(r.Kind),
		Interval:   r.Interval,
		Weekdays:   r.Weekdays,
		DayOfMonth: r.DayOfMonth,
		Count:      r.Count,
	}
	if rule.Interval == 0 {
		rule.Interval = 1
	}
	if r.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return rule, fmt.Errorf("invalid endDate: %w", err)
		}
		rule.EndDate = &endDate
	}
	return rule, nil
}

// FromUseCaseResult конвертирует результат use case в HTTP response
func FromUseCaseResult(result *createSeries.Result) *CreateSeriesResponse {
	resp := &CreateSeriesResponse{
		Created: make([]bookingModels.BookingResponse, 0, len(result.Created)),
		Skipped: make([]SkippedResponse, 0, len(result.Skipped)),
	}

	if result.SeriesID != nil {
		id := result.SeriesID.String()
		resp.SeriesID = &id
	}

	for _, booking := range result.Created {
		resp.Created = append(resp.Created, *bookingModels.FromDomainBooking(booking))
	}
	for _, skipped := range result.Skipped {
		resp.Skipped = append(resp.Skipped, FromSkipped(skipped))
	}

	return resp
}

// FromSkipped конвертирует пропущенное вхождение в HTTP модель
func FromSkipped(s scheduling.Skipped) SkippedResponse {
	return SkippedResponse{
		StartAt:    s.StartAt.UTC().Format(time.RFC3339),
		Reason:     string(s.Reason),
		ConflictID: s.ConflictID,
	}
}
