package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByCourtWithFilter(ctx context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error)
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// BlackoutRepository интерфейс репозитория окон блокировки
type BlackoutRepository interface {
	GetActiveForFacilityInRange(ctx context.Context, facilityID int64, dateFrom, dateTo time.Time) ([]*domain.BlackoutWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
