package get_court_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// from и to принимают дату ("2025-10-15") или момент RFC3339; голая дата
// означает полночь UTC этого дня.
func ToServiceRequest(
	courtID int64,
	fromStr string,
	toStr string,
	statusStr string,
	includeCancelledStr string,
) (*models.GetCourtBookingsRequest, error) {
	req := &models.GetCourtBookingsRequest{
		CourtID:          courtID,
		IncludeCancelled: false, // По умолчанию только активные
	}

	if fromStr != "" {
		from, err := parseMoment(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := parseMoment(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}

func parseMoment(value string) (time.Time, error) {
	if moment, err := time.Parse(time.RFC3339, value); err == nil {
		return moment.UTC(), nil
	}
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, err
	}
	return date.UTC(), nil
}
