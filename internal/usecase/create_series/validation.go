package create_series

import (
	"fmt"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Структурные ошибки отклоняются до любого чтения или записи
func validateRequest(req *Request) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.NegotiatedPrice != nil && *req.NegotiatedPrice < 0 {
		return fmt.Errorf("%w: negotiatedPrice must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// Ровно один вариант занимающего: пользователь или walk-in
	if err := req.Occupant.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Правило повторения валидируется до начала разворачивания
	if err := req.Rule.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
