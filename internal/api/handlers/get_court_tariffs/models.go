package get_court_tariffs

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-ArenaService/internal/service/tariffs/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(courtID int64, includeInactiveStr string) (*models.GetCourtTariffsRequest, error) {
	req := &models.GetCourtTariffsRequest{
		CourtID: courtID,
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
