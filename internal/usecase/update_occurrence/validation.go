package update_occurrence

import (
	"fmt"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// validateRequest проверяет корректность запроса на изменение
func validateRequest(req Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	if req.Changes.Empty() {
		return fmt.Errorf("%w: at least one field to change is required", ErrInvalidInput)
	}

	if req.Changes.DurationMinutes != nil && *req.Changes.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if req.Changes.StartAt != nil && req.Changes.StartAt.IsZero() {
		return fmt.Errorf("%w: start time must not be zero", ErrInvalidInput)
	}

	if req.Changes.NegotiatedPrice != nil && *req.Changes.NegotiatedPrice < 0 {
		return fmt.Errorf("%w: negotiated price must not be negative", ErrInvalidInput)
	}

	if req.Changes.Notes != nil && len(*req.Changes.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Changes.Occupant != nil {
		if err := req.Changes.Occupant.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
