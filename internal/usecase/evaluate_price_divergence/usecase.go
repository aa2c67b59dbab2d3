package evaluate_price_divergence

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArenaService/internal/scheduling"
	bookingRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
)

// UseCase use case проверки расхождения снапшота цены с текущими тарифами
type UseCase struct {
	bookingRepo BookingRepository
	bandRepo    PriceBandRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, bandRepo PriceBandRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		bandRepo:    bandRepo,
		logger:      logger,
	}
}

// Execute сравнивает сохранённую расчётную цену бронирования с ценой по
// текущим тарифным полосам корта. Чисто читающая операция: снапшот на
// бронировании не меняется, решение о перетарификации принимает оператор.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Report, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("EvaluatePriceDivergence: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("EvaluatePriceDivergence: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	bands, err := uc.bandRepo.GetActiveByCourt(ctx, booking.CourtID)
	if err != nil {
		uc.logger.Error("EvaluatePriceDivergence: failed to get price bands: %v", err)
		return nil, fmt.Errorf("%w: failed to get price bands: %v", ErrInternal, err)
	}

	report := &Report{
		BookingID:        booking.ID,
		OldComputedPrice: booking.ComputedPrice,
		NegotiatedPrice:  booking.NegotiatedPrice,
	}

	if rate, ok := scheduling.ResolveRate(bands, booking.Range().StartMinuteOfDay(), booking.IsLesson); ok {
		price := scheduling.ComputePrice(rate, booking.DurationMinutes)
		report.NewComputedPrice = &price
	}

	report.HasDivergence = scheduling.PriceDiverges(report.OldComputedPrice, report.NewComputedPrice)

	return report, nil
}
