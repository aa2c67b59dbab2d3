package update_occurrence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCourtWithFilter(ctx context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error)
	GetSeriesFrom(ctx context.Context, seriesID uuid.UUID, from time.Time) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// PriceBandRepository интерфейс репозитория тарифных полос
type PriceBandRepository interface {
	GetActiveByCourt(ctx context.Context, courtID int64) ([]*domain.PriceBand, error)
}

// BlackoutRepository интерфейс репозитория окон блокировки
type BlackoutRepository interface {
	GetActiveForFacilityInRange(ctx context.Context, facilityID int64, dateFrom, dateTo time.Time) ([]*domain.BlackoutWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
