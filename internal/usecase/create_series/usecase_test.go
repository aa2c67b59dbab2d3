package create_series

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/scheduling"
	"github.com/m04kA/SMC-ArenaService/pkg/ptr"
)

// Фейки зависимостей use case

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	f.created = append(f.created, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) GetByCourtWithFilter(_ context.Context, _ domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeCourtRepo struct {
	court *domain.Court
	err   error
}

func (f *fakeCourtRepo) GetByID(_ context.Context, _ int64) (*domain.Court, error) {
	return f.court, f.err
}

type fakeBandRepo struct {
	bands []*domain.PriceBand
}

func (f *fakeBandRepo) GetActiveByCourt(_ context.Context, _ int64) ([]*domain.PriceBand, error) {
	return f.bands, nil
}

type fakeBlackoutRepo struct {
	windows []*domain.BlackoutWindow
}

func (f *fakeBlackoutRepo) GetActiveForFacilityInRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlackoutWindow, error) {
	return f.windows, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(bookingRepo *fakeBookingRepo, courtRepo *fakeCourtRepo, bands []*domain.PriceBand, windows []*domain.BlackoutWindow) *UseCase {
	return NewUseCase(
		bookingRepo,
		courtRepo,
		&fakeBandRepo{bands: bands},
		&fakeBlackoutRepo{windows: windows},
		&fakeTxManager{},
		nopLogger{},
	)
}

func activeCourt() *fakeCourtRepo {
	return &fakeCourtRepo{court: &domain.Court{ID: 1, FacilityID: 10, Name: "Корт 1", Active: true}}
}

func allDayBands(rate float64) []*domain.PriceBand {
	return []*domain.PriceBand{
		{ID: 1, CourtID: 1, StartMinute: 0, EndMinute: 1440, HourlyRate: rate, Active: true},
	}
}

func TestExecute_SingleBooking(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	uc := newTestUseCase(bookingRepo, activeCourt(), allDayBands(100), nil)

	result, err := uc.Execute(context.Background(), &Request{
		CourtID:         1,
		StartAt:         time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
		Rule:            domain.RecurrenceRule{Kind: domain.RecurrenceNone},
		Occupant:        domain.RegisteredOccupant(42),
	})

	require.NoError(t, err)
	assert.Nil(t, result.SeriesID)
	require.Len(t, result.Created, 1)
	assert.Empty(t, result.Skipped)

	booking := result.Created[0]
	assert.Nil(t, booking.SeriesID)
	assert.Nil(t, booking.Rule)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	require.NotNil(t, booking.HourlyRate)
	assert.Equal(t, 100.0, *booking.HourlyRate)
	require.NotNil(t, booking.ComputedPrice)
	assert.Equal(t, 150.0, *booking.ComputedPrice)
}

func TestExecute_WeeklySeries_SkipsConflicts(t *testing.T) {
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)

	// Четвёртое вхождение (27 октября) уже занято
	bookingRepo := &fakeBookingRepo{
		existing: []*domain.Booking{
			{
				ID:              99,
				CourtID:         1,
				StartAt:         start.AddDate(0, 0, 21).Add(30 * time.Minute),
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			},
		},
		nextID: 100,
	}
	uc := newTestUseCase(bookingRepo, activeCourt(), allDayBands(100), nil)

	result, err := uc.Execute(context.Background(), &Request{
		CourtID:         1,
		StartAt:         start,
		DurationMinutes: 60,
		Rule: domain.RecurrenceRule{
			Kind:     domain.RecurrenceWeekly,
			Interval: 1,
			Weekdays: []int{1},
			Count:    ptr.Ptr(10),
		},
		Occupant: domain.WalkInOccupant("Анна Смирнова", "+7 900 000-00-00"),
	})

	require.NoError(t, err)
	require.NotNil(t, result.SeriesID)
	assert.Len(t, result.Created, 9)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, scheduling.ConflictBooking, result.Skipped[0].Reason)
	assert.Equal(t, int64(99), result.Skipped[0].ConflictID)
	assert.Equal(t, start.AddDate(0, 0, 21), result.Skipped[0].StartAt)

	// Правило хранится только на первом созданном вхождении
	require.NotNil(t, result.Created[0].Rule)
	assert.Equal(t, domain.RecurrenceWeekly, result.Created[0].Rule.Kind)
	for _, booking := range result.Created[1:] {
		assert.Nil(t, booking.Rule)
	}

	// Все вхождения принадлежат одной серии
	for _, booking := range result.Created {
		require.NotNil(t, booking.SeriesID)
		assert.Equal(t, *result.SeriesID, *booking.SeriesID)
	}
}

func TestExecute_AllOccurrencesBlocked_IsNotAnError(t *testing.T) {
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)

	// Полнодневная блокировка на весь период серии
	windows := []*domain.BlackoutWindow{
		{
			ID:         5,
			FacilityID: 10,
			DateStart:  time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			DateEnd:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			Active:     true,
		},
	}
	bookingRepo := &fakeBookingRepo{}
	uc := newTestUseCase(bookingRepo, activeCourt(), allDayBands(100), windows)

	result, err := uc.Execute(context.Background(), &Request{
		CourtID:         1,
		StartAt:         start,
		DurationMinutes: 60,
		Rule: domain.RecurrenceRule{
			Kind:     domain.RecurrenceDaily,
			Interval: 1,
			Count:    ptr.Ptr(3),
		},
		Occupant: domain.RegisteredOccupant(42),
	})

	require.NoError(t, err)
	assert.Empty(t, result.Created)
	require.Len(t, result.Skipped, 3)
	for _, skipped := range result.Skipped {
		assert.Equal(t, scheduling.ConflictBlackoutFullDay, skipped.Reason)
	}
}

func TestExecute_NoTariffConfigured_CreatesUnpriced(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	uc := newTestUseCase(bookingRepo, activeCourt(), nil, nil)

	result, err := uc.Execute(context.Background(), &Request{
		CourtID:         1,
		StartAt:         time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Rule:            domain.RecurrenceRule{Kind: domain.RecurrenceNone},
		Occupant:        domain.RegisteredOccupant(42),
		NegotiatedPrice: ptr.Ptr(55.0),
	})

	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Nil(t, result.Created[0].HourlyRate)
	assert.Nil(t, result.Created[0].ComputedPrice)
	require.NotNil(t, result.Created[0].NegotiatedPrice)
	assert.Equal(t, 55.0, *result.Created[0].NegotiatedPrice)
}

func TestExecute_CourtInactive(t *testing.T) {
	courtRepo := &fakeCourtRepo{court: &domain.Court{ID: 1, FacilityID: 10, Active: false}}
	uc := newTestUseCase(&fakeBookingRepo{}, courtRepo, nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		CourtID:         1,
		StartAt:         time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Rule:            domain.RecurrenceRule{Kind: domain.RecurrenceNone},
		Occupant:        domain.RegisteredOccupant(42),
	})

	assert.ErrorIs(t, err, ErrCourtInactive)
}

func TestExecute_ValidationFailures(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, activeCourt(), nil, nil)
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  Request
	}{
		{"zero court", Request{StartAt: start, DurationMinutes: 60, Occupant: domain.RegisteredOccupant(1)}},
		{"zero duration", Request{CourtID: 1, StartAt: start, Occupant: domain.RegisteredOccupant(1)}},
		{"malformed occupant", Request{CourtID: 1, StartAt: start, DurationMinutes: 60}},
		{"negative price", Request{CourtID: 1, StartAt: start, DurationMinutes: 60,
			Occupant: domain.RegisteredOccupant(1), NegotiatedPrice: ptr.Ptr(-5.0)}},
		{"invalid rule", Request{CourtID: 1, StartAt: start, DurationMinutes: 60,
			Occupant: domain.RegisteredOccupant(1),
			Rule:     domain.RecurrenceRule{Kind: domain.RecurrenceDaily, Interval: 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
