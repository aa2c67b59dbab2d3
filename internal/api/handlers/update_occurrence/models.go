package update_occurrence

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	bookingModels "github.com/m04kA/SMC-ArenaService/internal/service/bookings/models"
	updateOccurrence "github.com/m04kA/SMC-ArenaService/internal/usecase/update_occurrence"
)

// OccupantRequest HTTP модель владельца бронирования
type OccupantRequest struct {
	Kind       string  `json:"kind"` // "registered" | "walk_in"
	UserID     *int64  `json:"userId,omitempty"`
	GuestName  *string `json:"guestName,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`
}

// UpdateOccurrenceRequest HTTP request model.
// Переданные поля меняются, отсутствующие остаются как есть.
// ApplyToSeries распространяет изменение на это и все будущие вхождения серии.
type UpdateOccurrenceRequest struct {
	ApplyToSeries   bool             `json:"applyToSeries,omitempty"`
	StartAt         *string          `json:"startAt,omitempty"` // RFC3339
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	Occupant        *OccupantRequest `json:"occupant,omitempty"`
	IsLesson        *bool            `json:"isLesson,omitempty"`
	NegotiatedPrice *float64         `json:"negotiatedPrice,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// SkippedResponse пропущенное вхождение серии
type SkippedResponse struct {
	StartAt    string `json:"startAt"` // RFC3339
	Reason     string `json:"reason"`
	ConflictID int64  `json:"conflictId,omitempty"`
}

// UpdateOccurrenceResponse HTTP response model
type UpdateOccurrenceResponse struct {
	Updated []bookingModels.BookingResponse `json:"updated"`
	Skipped []SkippedResponse               `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateOccurrenceRequest) ToUseCaseRequest(bookingID int64) (*updateOccurrence.Request, error) {
	changes := updateOccurrence.Changes{
		DurationMinutes: r.DurationMinutes,
		IsLesson:        r.IsLesson,
		NegotiatedPrice: r.NegotiatedPrice,
		Notes:           r.Notes,
	}

	if r.StartAt != nil {
		startAt, err := time.Parse(time.RFC3339, *r.StartAt)
		if err != nil {
			return nil, fmt.Errorf("invalid startAt: %w", err)
		}
		utc := startAt.UTC()
		changes.StartAt = &utc
	}

	if r.Occupant != nil {
		occupant, err := r.Occupant.toDomain()
		if err != nil {
			return nil, err
		}
		changes.Occupant = &occupant
	}

	return &updateOccurrence.Request{
		BookingID:     bookingID,
		ApplyToSeries: r.ApplyToSeries,
		Changes:       changes,
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

// FromUseCaseResult конвертирует результат use case в HTTP response
func FromUseCaseResult(result *updateOccurrence.Result) *UpdateOccurrenceResponse {
	resp := &UpdateOccurrenceResponse{
		Updated: make([]bookingModels.BookingResponse, 0, len(result.Updated)),
		Skipped: make([]SkippedResponse, 0, len(result.Skipped)),
	}

	for _, booking := range result.Updated {
		resp.Updated = append(resp.Updated, *bookingModels.FromDomainBooking(booking))
	}
	for _, skipped := range result.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedResponse{
			StartAt:    skipped.StartAt.UTC().Format(time.RFC3339),
			Reason:     string(skipped.Reason),
			ConflictID: skipped.ConflictID,
		})
	}

	return resp
}
