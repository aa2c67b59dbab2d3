package create_series

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/scheduling"
	courtRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/court"
)

// UseCase use case создания бронирования или регулярной серии
type UseCase struct {
	bookingRepo  BookingRepository
	courtRepo    CourtRepository
	bandRepo     PriceBandRepository
	blackoutRepo BlackoutRepository
	txManager    TransactionManager
	seriesIDs    SeriesIDProvider
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
		seriesIDs:    &UUIDSeriesIDProvider{},
		logger:       logger,
	}
}

// Execute выполняет создание серии.
// Правило разворачивается в конкретные вхождения; каждое вхождение проверяется
// на доступность и тарифицируется независимо. Конфликтующие вхождения не
// прерывают операцию - они попадают в список Skipped с причиной.
//
// Проверка и запись выполняются в одной сериализуемой транзакции с блокировкой
// бронирований корта в затронутом окне (FOR UPDATE), чтобы два конкурирующих
// запроса не увидели один и тот же слот свободным.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Result, error) {
	uc.logger.Info("CreateSeries: court=%d, start=%s, duration=%d, kind=%s",
		req.CourtID, req.StartAt.Format(time.RFC3339), req.DurationMinutes, req.Rule.Kind)

	// 1. Структурная валидация (fail fast, до любого обращения к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSeries: validation failed: %v", err)
		return nil, err
	}

	// 2. Разворачиваем правило в моменты начала вхождений
	occurrences, err := scheduling.Expand(req.StartAt, req.Rule)
	if err != nil {
		uc.logger.Warn("CreateSeries: rule expansion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(occurrences) == 0 {
		// Правило с endDate раньше seed не порождает ни одного вхождения
		uc.logger.Info("CreateSeries: rule produced no occurrences for court=%d", req.CourtID)
		return &Result{Created: []*domain.Booking{}, Skipped: []scheduling.Skipped{}}, nil
	}

	// 3. Резолвим корт и его площадку
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateSeries: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateSeries: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if !court.Active {
		uc.logger.Warn("CreateSeries: court id=%d is inactive", req.CourtID)
		return nil, ErrCourtInactive
	}

	var seriesID *uuid.UUID
	if req.Rule.IsRecurring() {
		id := uc.seriesIDs.NewSeriesID()
		seriesID = &id
	}

	// Окно, покрывающее все вхождения серии
	windowFrom := occurrences[0]
	windowTo := occurrences[len(occurrences)-1].Add(time.Duration(req.DurationMinutes) * time.Minute)

	result := &Result{
		SeriesID: seriesID,
		Created:  make([]*domain.Booking, 0, len(occurrences)),
		Skipped:  make([]scheduling.Skipped, 0),
	}

	// 4. Проверка доступности и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Существующие бронирования корта в окне серии (FOR UPDATE)
		existing, err := uc.bookingRepo.GetByCourtWithFilter(txCtx, domain.CourtBookingsFilter{
			CourtID: req.CourtID,
			From:    &windowFrom,
			To:      &windowTo,
		})
		if err != nil {
			uc.logger.Error("CreateSeries: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.2. Окна блокировки площадки, пересекающие окно серии
		blackouts, err := uc.blackoutRepo.GetActiveForFacilityInRange(txCtx, court.FacilityID,
			dateOf(windowFrom), dateOf(windowTo))
		if err != nil {
			uc.logger.Error("CreateSeries: failed to get blackout windows: %v", err)
			return fmt.Errorf("%w: failed to get blackout windows: %v", ErrInternal, err)
		}

		// 4.3. Тарифные полосы корта (для снапшота цены)
		bands, err := uc.bandRepo.GetActiveByCourt(txCtx, req.CourtID)
		if err != nil {
			uc.logger.Error("CreateSeries: failed to get price bands: %v", err)
			return fmt.Errorf("%w: failed to get price bands: %v", ErrInternal, err)
		}

		// 4.4. Вхождения обрабатываются хронологически; принятые ранее в этом
		// же вызове участвуют в проверке последующих
		known := existing

		for _, startAt := range occurrences {
			candidate := domain.TimeRange{Start: startAt, DurationMinutes: req.DurationMinutes}

			check := scheduling.Check(req.CourtID, candidate, known, blackouts)
			if !check.Available {
				result.Skipped = append(result.Skipped, scheduling.Skipped{
					StartAt:    startAt,
					Reason:     check.Reason,
					ConflictID: check.ConflictID,
				})
				continue
			}

			booking := &domain.Booking{
				CourtID:         req.CourtID,
				Occupant:        req.Occupant,
				StartAt:         startAt,
				DurationMinutes: req.DurationMinutes,
				Status:          domain.StatusConfirmed,
				IsLesson:        req.IsLesson,
				NegotiatedPrice: req.NegotiatedPrice,
				SeriesID:        seriesID,
				Notes:           req.Notes,
			}

			// Снапшот тарифа; отсутствие полосы - валидный "нетарифицированный" исход
			if rate, ok := scheduling.ResolveRate(bands, candidate.StartMinuteOfDay(), req.IsLesson); ok {
				price := scheduling.ComputePrice(rate, req.DurationMinutes)
				booking.HourlyRate = &rate
				booking.ComputedPrice = &price
			}

			// Правило хранится на первом созданном вхождении серии
			if seriesID != nil && len(result.Created) == 0 {
				rule := req.Rule
				booking.Rule = &rule
			}

			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				uc.logger.Error("CreateSeries: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}

			result.Created = append(result.Created, created)
			known = append(known, created)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSeries: court=%d, created=%d, skipped=%d",
		req.CourtID, len(result.Created), len(result.Skipped))

	return result, nil
}

// dateOf обнуляет время, оставляя только дату (UTC)
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
