package evaluate_price_divergence

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// PriceBandRepository интерфейс репозитория тарифных полос
type PriceBandRepository interface {
	GetActiveByCourt(ctx context.Context, courtID int64) ([]*domain.PriceBand, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
