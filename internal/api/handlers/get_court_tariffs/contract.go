package get_court_tariffs

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/service/tariffs/models"
)

type TariffService interface {
	GetCourtTariffs(ctx context.Context, req *models.GetCourtTariffsRequest) (*models.CourtTariffsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
