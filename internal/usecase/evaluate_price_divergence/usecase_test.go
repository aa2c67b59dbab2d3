package evaluate_price_divergence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	storage "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArenaService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, storage.ErrBookingNotFound
	}
	return f.booking, nil
}

type fakeBandRepo struct {
	bands []*domain.PriceBand
}

func (f *fakeBandRepo) GetActiveByCourt(_ context.Context, _ int64) ([]*domain.PriceBand, error) {
	return f.bands, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pricedBooking(computed *float64) *domain.Booking {
	return &domain.Booking{
		ID:              1,
		CourtID:         1,
		Occupant:        domain.RegisteredOccupant(42),
		StartAt:         time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		ComputedPrice:   computed,
	}
}

func bandsWithRate(rate float64) []*domain.PriceBand {
	return []*domain.PriceBand{
		{ID: 1, CourtID: 1, StartMinute: 0, EndMinute: 1440, HourlyRate: rate, Active: true},
	}
}

func TestExecute_RateRaised_ReportsDivergence(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{booking: pricedBooking(ptr.Ptr(80.0))},
		&fakeBandRepo{bands: bandsWithRate(100)},
		nopLogger{},
	)

	report, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.True(t, report.HasDivergence)
	require.NotNil(t, report.OldComputedPrice)
	assert.Equal(t, 80.0, *report.OldComputedPrice)
	require.NotNil(t, report.NewComputedPrice)
	assert.Equal(t, 100.0, *report.NewComputedPrice)
}

func TestExecute_RateUnchanged_NoDivergence(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{booking: pricedBooking(ptr.Ptr(100.0))},
		&fakeBandRepo{bands: bandsWithRate(100)},
		nopLogger{},
	)

	report, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.False(t, report.HasDivergence)
}

func TestExecute_TariffRemoved_NoDivergence(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{booking: pricedBooking(ptr.Ptr(100.0))},
		&fakeBandRepo{},
		nopLogger{},
	)

	report, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	// Снятый тариф оставляет новую цену пустой; это не расхождение
	assert.Nil(t, report.NewComputedPrice)
	assert.False(t, report.HasDivergence)
	require.NotNil(t, report.OldComputedPrice)
	assert.Equal(t, 100.0, *report.OldComputedPrice)
}

func TestExecute_NeverPriced_StaysUnpriced(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{booking: pricedBooking(nil)},
		&fakeBandRepo{},
		nopLogger{},
	)

	report, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.Nil(t, report.OldComputedPrice)
	assert.Nil(t, report.NewComputedPrice)
	assert.False(t, report.HasDivergence)
}

func TestExecute_LessonRateUsedForLessons(t *testing.T) {
	booking := pricedBooking(ptr.Ptr(100.0))
	booking.IsLesson = true
	bands := bandsWithRate(100)
	bands[0].HourlyRateLesson = ptr.Ptr(140.0)

	uc := NewUseCase(&fakeBookingRepo{booking: booking}, &fakeBandRepo{bands: bands}, nopLogger{})

	report, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	require.NotNil(t, report.NewComputedPrice)
	assert.Equal(t, 140.0, *report.NewComputedPrice)
	assert.True(t, report.HasDivergence)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeBandRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 404})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidID(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeBandRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
