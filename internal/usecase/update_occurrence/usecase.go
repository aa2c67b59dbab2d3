package update_occurrence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/scheduling"
	bookingRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
	courtRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/court"
)

// UseCase use case изменения бронирования или его серии
type UseCase struct {
	bookingRepo  BookingRepository
	courtRepo    CourtRepository
	bandRepo     PriceBandRepository
	blackoutRepo BlackoutRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	courtRepo CourtRepository,
	bandRepo PriceBandRepository,
	blackoutRepo BlackoutRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		courtRepo:    courtRepo,
		bandRepo:     bandRepo,
		blackoutRepo: blackoutRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет изменение бронирования.
//
// ApplyToSeries=false меняет только указанное вхождение; конфликт нового
// времени прерывает операцию целиком (ErrSlotConflict).
//
// ApplyToSeries=true меняет указанное вхождение и все будущие члены той же
// серии (по StartAt, прошлые не трогаются). Сдвиг времени применяется как
// дельта к каждому члену. Конфликтующие члены пропускаются и попадают в
// Skipped, остальные обновляются - best effort, как при создании серии.
//
// Члены обрабатываются строго в хронологическом порядке: сдвиг, накладывающий
// член на ещё не сдвинутый слот соседа по серии (например, дневная серия,
// сдвинутая ровно на сутки вперёд), считается конфликтом этого члена.
//
// Вся операция выполняется в одной сериализуемой транзакции с блокировкой
// затронутых бронирований (FOR UPDATE).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Result, error) {
	uc.logger.Info("UpdateOccurrence: booking=%d, series=%t", req.BookingID, req.ApplyToSeries)

	if err := validateRequest(*req); err != nil {
		uc.logger.Warn("UpdateOccurrence: validation failed: %v", err)
		return nil, err
	}

	result := &Result{
		Updated: make([]*domain.Booking, 0, 1),
		Skipped: make([]scheduling.Skipped, 0),
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Исходное бронирование (FOR UPDATE)
		seed, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateOccurrence: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Область действия: одно вхождение или хвост серии
		targets := []*domain.Booking{seed}
		if req.ApplyToSeries {
			if !seed.IsSeriesMember() {
				return ErrNotASeries
			}
			targets, err = uc.bookingRepo.GetSeriesFrom(txCtx, *seed.SeriesID, seed.StartAt)
			if err != nil {
				uc.logger.Error("UpdateOccurrence: failed to get series members: %v", err)
				return fmt.Errorf("%w: failed to get series members: %v", ErrInternal, err)
			}
		}

		if !req.ApplyToSeries && !seed.CanBeUpdated() {
			return fmt.Errorf("%w: status=%s", ErrCannotUpdate, seed.Status)
		}

		court, err := uc.courtRepo.GetByID(txCtx, seed.CourtID)
		if err != nil {
			if errors.Is(err, courtRepo.ErrCourtNotFound) {
				return fmt.Errorf("%w: court not found: %v", ErrInternal, err)
			}
			uc.logger.Error("UpdateOccurrence: failed to get court id=%d: %v", seed.CourtID, err)
			return fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
		}

		// Сдвиг времени относительно исходного вхождения
		var delta time.Duration
		if req.Changes.StartAt != nil {
			delta = req.Changes.StartAt.Sub(seed.StartAt)
		}

		timingChanged := delta != 0 || req.Changes.DurationMinutes != nil
		rateAffected := timingChanged || req.Changes.IsLesson != nil

		var (
			existing  []*domain.Booking
			blackouts []*domain.BlackoutWindow
			bands     []*domain.PriceBand
		)

		if timingChanged {
			windowFrom, windowTo := uc.seriesWindow(targets, req.Changes, delta)
			existing, err = uc.bookingRepo.GetByCourtWithFilter(txCtx, domain.CourtBookingsFilter{
				CourtID: seed.CourtID,
				From:    &windowFrom,
				To:      &windowTo,
			})
			if err != nil {
				uc.logger.Error("UpdateOccurrence: failed to get bookings: %v", err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			blackouts, err = uc.blackoutRepo.GetActiveForFacilityInRange(txCtx, court.FacilityID,
				dateOf(windowFrom), dateOf(windowTo))
			if err != nil {
				uc.logger.Error("UpdateOccurrence: failed to get blackout windows: %v", err)
				return fmt.Errorf("%w: failed to get blackout windows: %v", ErrInternal, err)
			}
		}

		if rateAffected {
			bands, err = uc.bandRepo.GetActiveByCourt(txCtx, seed.CourtID)
			if err != nil {
				uc.logger.Error("UpdateOccurrence: failed to get price bands: %v", err)
				return fmt.Errorf("%w: failed to get price bands: %v", ErrInternal, err)
			}
		}

		// Члены обрабатываются хронологически; уже принятые изменения
		// участвуют в проверке последующих
		known := existing

		for _, target := range targets {
			if req.ApplyToSeries && !target.CanBeUpdated() {
				result.Skipped = append(result.Skipped, scheduling.Skipped{
					StartAt:    target.StartAt,
					Reason:     scheduling.ConflictNotUpdatable,
					ConflictID: target.ID,
				})
				continue
			}

			updated := applyChanges(target, req.Changes, delta)

			if timingChanged {
				check := scheduling.Check(seed.CourtID, updated.Range(),
					scheduling.ExcludeBooking(known, target.ID), blackouts)
				if !check.Available {
					if !req.ApplyToSeries {
						return fmt.Errorf("%w: reason=%s", ErrSlotConflict, check.Reason)
					}
					result.Skipped = append(result.Skipped, scheduling.Skipped{
						StartAt:    updated.StartAt,
						Reason:     check.Reason,
						ConflictID: check.ConflictID,
					})
					continue
				}
			}

			// Пересчет снапшота тарифа; договорная цена пересчетом не трогается
			if rateAffected {
				updated.HourlyRate = nil
				updated.ComputedPrice = nil
				if rate, ok := scheduling.ResolveRate(bands, updated.Range().StartMinuteOfDay(), updated.IsLesson); ok {
					price := scheduling.ComputePrice(rate, updated.DurationMinutes)
					updated.HourlyRate = &rate
					updated.ComputedPrice = &price
				}
			}

			if err := uc.bookingRepo.Update(txCtx, updated); err != nil {
				uc.logger.Error("UpdateOccurrence: failed to update booking id=%d: %v", target.ID, err)
				return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
			}

			result.Updated = append(result.Updated, updated)
			known = append(scheduling.ExcludeBooking(known, target.ID), updated)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateOccurrence: booking=%d, updated=%d, skipped=%d",
		req.BookingID, len(result.Updated), len(result.Skipped))

	return result, nil
}

// applyChanges строит обновленную копию бронирования, не трогая оригинал
func applyChanges(target *domain.Booking, changes Changes, delta time.Duration) *domain.Booking {
	updated := *target

	if delta != 0 {
		updated.StartAt = target.StartAt.Add(delta)
	}
	if changes.DurationMinutes != nil {
		updated.DurationMinutes = *changes.DurationMinutes
	}
	if changes.Occupant != nil {
		updated.Occupant = *changes.Occupant
	}
	if changes.IsLesson != nil {
		updated.IsLesson = *changes.IsLesson
	}
	if changes.NegotiatedPrice != nil {
		updated.NegotiatedPrice = changes.NegotiatedPrice
	}
	if changes.Notes != nil {
		updated.Notes = changes.Notes
	}

	return &updated
}

// seriesWindow считает окно, покрывающее все целевые вхождения после сдвига
func (uc *UseCase) seriesWindow(targets []*domain.Booking, changes Changes, delta time.Duration) (time.Time, time.Time) {
	from := targets[0].StartAt.Add(delta)
	to := from

	for _, target := range targets {
		start := target.StartAt.Add(delta)
		duration := target.DurationMinutes
		if changes.DurationMinutes != nil {
			duration = *changes.DurationMinutes
		}
		end := start.Add(time.Duration(duration) * time.Minute)

		if start.Before(from) {
			from = start
		}
		if end.After(to) {
			to = end
		}
	}

	return from, to
}

// dateOf обнуляет время, оставляя только дату (UTC)
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
