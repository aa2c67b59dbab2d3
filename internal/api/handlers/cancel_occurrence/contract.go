package cancel_occurrence

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, bookingID int64, req *models.ScopeRequest) (*models.ScopeResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
