package tariffs

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// PriceBandRepository интерфейс репозитория тарифных полос
type PriceBandRepository interface {
	GetActiveByCourt(ctx context.Context, courtID int64) ([]*domain.PriceBand, error)
	GetAllByCourt(ctx context.Context, courtID int64) ([]*domain.PriceBand, error)
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
