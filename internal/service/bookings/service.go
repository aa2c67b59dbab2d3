package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
	courtRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/court"
	"github.com/m04kA/SMC-ArenaService/internal/service/bookings/models"
)

const reasonNotCancellable = "not-cancellable"

// Service сервис для чтения, отмены и удаления бронирований
type Service struct {
	bookingRepo BookingRepository
	courtRepo   CourtRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	courtRepo CourtRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		courtRepo:   courtRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCourtBookings получает бронирования корта с фильтрацией по периоду и
// статусу. Отменённые исключаются, если явно не запрошены.
//
// Примеры использования:
// - Расписание корта на день: From и To указывают на границы дня
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) GetCourtBookings(ctx context.Context, req *models.GetCourtBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCourtBookings: fetching bookings for court=%d", req.CourtID)

	if _, err := s.courtRepo.GetByID(ctx, req.CourtID); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("GetCourtBookings: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("GetCourtBookings: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: GetCourtBookings - repository error: %v", ErrInternal, err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCourtBookings: invalid filter for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCourtWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCourtBookings: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: GetCourtBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCourtBookings: fetched %d bookings for court=%d", len(bookings), req.CourtID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. При ApplyToSeries отменяется это и все
// будущие вхождения серии; члены в неотменяемом статусе пропускаются и
// попадают в Skipped. Отменённые бронирования освобождают слот.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.ScopeRequest) (*models.ScopeResult, error) {
	s.logger.Info("Cancel: cancelling booking id=%d, series=%t", bookingID, req.ApplyToSeries)

	result := &models.ScopeResult{
		Affected: make([]int64, 0, 1),
		Skipped:  make([]models.SkippedOccurrence, 0),
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		targets, err := s.resolveScope(txCtx, bookingID, req.ApplyToSeries)
		if err != nil {
			return err
		}

		if !req.ApplyToSeries && !targets[0].CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, targets[0].Status)
			return ErrCannotCancel
		}

		for _, target := range targets {
			if !target.CanBeCancelled() {
				result.Skipped = append(result.Skipped, models.SkippedOccurrence{
					BookingID: target.ID,
					StartAt:   target.StartAt.UTC().Format(time.RFC3339),
					Reason:    reasonNotCancellable,
				})
				continue
			}

			if err := s.bookingRepo.UpdateStatus(txCtx, target.ID, domain.StatusCancelled); err != nil {
				s.logger.Error("Cancel: repository error for booking id=%d: %v", target.ID, err)
				return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
			}

			result.Affected = append(result.Affected, target.ID)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d, cancelled=%d, skipped=%d",
		bookingID, len(result.Affected), len(result.Skipped))

	return result, nil
}

// Delete удаляет бронирование из хранилища. При ApplyToSeries удаляется это
// и все будущие вхождения серии. Прошлые вхождения серии не затрагиваются.
func (s *Service) Delete(ctx context.Context, bookingID int64, req *models.ScopeRequest) (*models.ScopeResult, error) {
	s.logger.Info("Delete: deleting booking id=%d, series=%t", bookingID, req.ApplyToSeries)

	result := &models.ScopeResult{
		Affected: make([]int64, 0, 1),
		Skipped:  make([]models.SkippedOccurrence, 0),
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		targets, err := s.resolveScope(txCtx, bookingID, req.ApplyToSeries)
		if err != nil {
			return err
		}

		for _, target := range targets {
			if err := s.bookingRepo.Delete(txCtx, target.ID); err != nil {
				s.logger.Error("Delete: repository error for booking id=%d: %v", target.ID, err)
				return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
			}
			result.Affected = append(result.Affected, target.ID)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Delete: booking id=%d, deleted=%d", bookingID, len(result.Affected))
	return result, nil
}

// resolveScope резолвит область действия операции: указанное вхождение или
// указанное плюс все будущие члены той же серии (по StartAt). Общая точка
// для всех операций, поддерживающих серийную область.
func (s *Service) resolveScope(ctx context.Context, bookingID int64, applyToSeries bool) ([]*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("resolveScope: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("resolveScope: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: resolveScope - repository error: %v", ErrInternal, err)
	}

	if !applyToSeries {
		return []*domain.Booking{booking}, nil
	}

	if !booking.IsSeriesMember() {
		return nil, ErrNotASeries
	}

	targets, err := s.bookingRepo.GetSeriesFrom(ctx, *booking.SeriesID, booking.StartAt)
	if err != nil {
		s.logger.Error("resolveScope: failed to get series members for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: resolveScope - repository error: %v", ErrInternal, err)
	}

	return targets, nil
}
