package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	courtRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/court"
	"github.com/m04kA/SMC-ArenaService/internal/scheduling"
)

// UseCase use case проверки доступности слота
// Рекомендательное чтение без транзакции: положительный ответ не резервирует
// слот, финальная проверка выполняется при создании бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	courtRepo    CourtRepository
	blackoutRepo BlackoutRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	courtRepo CourtRepository,
	blackoutRepo BlackoutRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		courtRepo:    courtRepo,
		blackoutRepo: blackoutRepo,
		logger:       logger,
	}
}

// Execute выполняет проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: court=%d, start=%s, duration=%d",
		req.CourtID, req.StartAt.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим корт и площадку
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CheckAvailability: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	candidate := domain.TimeRange{Start: req.StartAt, DurationMinutes: req.DurationMinutes}

	// 3. Бронирования корта, пересекающие окно кандидата
	from := candidate.Start
	to := candidate.End()
	bookings, err := uc.bookingRepo.GetByCourtWithFilter(ctx, domain.CourtBookingsFilter{
		CourtID: req.CourtID,
		From:    &from,
		To:      &to,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Окна блокировки площадки на дату кандидата
	blackouts, err := uc.blackoutRepo.GetActiveForFacilityInRange(ctx, court.FacilityID,
		candidate.Date(), candidate.Date())
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get blackout windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get blackout windows: %v", ErrInternal, err)
	}

	// 5. Проверка
	check := scheduling.Check(req.CourtID, candidate, bookings, blackouts)

	if check.Available {
		uc.logger.Info("CheckAvailability: court=%d slot is available", req.CourtID)
	} else {
		uc.logger.Info("CheckAvailability: court=%d slot conflicts: reason=%s, entity=%d",
			req.CourtID, check.Reason, check.ConflictID)
	}

	return &Response{
		Available:  check.Available,
		Reason:     check.Reason,
		ConflictID: check.ConflictID,
	}, nil
}
