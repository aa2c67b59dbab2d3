package check_availability

import (
	"fmt"
	"strconv"
	"time"

	checkAvailability "github.com/m04kA/SMC-ArenaService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	CourtID         int64  `json:"courtId"`
	StartAt         string `json:"startAt"` // RFC3339
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"`
	ConflictID      int64  `json:"conflictId,omitempty"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(courtID int64, startAtStr, durationStr string) (*checkAvailability.Request, error) {
	startAt, err := time.Parse(time.RFC3339, startAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid startAt: %w", err)
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid durationMinutes: %w", err)
	}

	return &checkAvailability.Request{
		CourtID:         courtID,
		StartAt:         startAt.UTC(),
		DurationMinutes: duration,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(req *checkAvailability.Request, resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		CourtID:         req.CourtID,
		StartAt:         req.StartAt.Format(time.RFC3339),
		DurationMinutes: req.DurationMinutes,
		Available:       resp.Available,
		Reason:          string(resp.Reason),
		ConflictID:      resp.ConflictID,
	}
}
