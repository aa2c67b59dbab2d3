package update_occurrence

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/scheduling"
	storage "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArenaService/pkg/ptr"
)

// Фейки зависимостей use case

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	updated  []*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetByCourtWithFilter(_ context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.CourtID == filter.CourtID {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (f *fakeBookingRepo) GetSeriesFrom(_ context.Context, seriesID uuid.UUID, from time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.SeriesID != nil && *b.SeriesID == seriesID && !b.StartAt.Before(from) {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	copied := *booking
	f.bookings[booking.ID] = &copied
	f.updated = append(f.updated, &copied)
	return nil
}

type fakeCourtRepo struct {
	court *domain.Court
}

func (f *fakeCourtRepo) GetByID(_ context.Context, _ int64) (*domain.Court, error) {
	return f.court, nil
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

func newTestUseCase(repo *fakeBookingRepo, bands []*domain.PriceBand, windows []*domain.BlackoutWindow) *UseCase {
	return NewUseCase(
		repo,
		&fakeCourtRepo{court: &domain.Court{ID: 1, FacilityID: 10, Name: "Корт 1", Active: true}},
		&fakeBandRepo{bands: bands},
		&fakeBlackoutRepo{windows: windows},
		&fakeTxManager{},
		nopLogger{},
	)
}

func allDayBands(rate float64) []*domain.PriceBand {
	return []*domain.PriceBand{
		{ID: 1, CourtID: 1, StartMinute: 0, EndMinute: 1440, HourlyRate: rate, Active: true},
	}
}

// weeklySeries строит серию из пяти еженедельных вхождений, id 1..5
func weeklySeries(seriesID uuid.UUID) []*domain.Booking {
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)
	members := make([]*domain.Booking, 0, 5)
	for i := 0; i < 5; i++ {
		members = append(members, &domain.Booking{
			ID:              int64(i + 1),
			CourtID:         1,
			Occupant:        domain.RegisteredOccupant(42),
			StartAt:         start.AddDate(0, 0, 7*i),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
			SeriesID:        &seriesID,
		})
	}
	return members
}

func TestExecute_SeriesDurationChange_TouchesOnlyFutureMembers(t *testing.T) {
	seriesID := uuid.New()
	members := weeklySeries(seriesID)
	repo := newFakeBookingRepo(members...)
	uc := newTestUseCase(repo, allDayBands(100), nil)

	// Изменение от третьего члена распространяется на хвост серии
	result, err := uc.Execute(context.Background(), &Request{
		BookingID:     3,
		ApplyToSeries: true,
		Changes:       Changes{DurationMinutes: ptr.Ptr(90)},
	})

	require.NoError(t, err)
	assert.Empty(t, result.Skipped)
	require.Len(t, result.Updated, 3)

	updatedIDs := make([]int64, 0, len(result.Updated))
	for _, b := range result.Updated {
		updatedIDs = append(updatedIDs, b.ID)
		assert.Equal(t, 90, b.DurationMinutes)
		require.NotNil(t, b.ComputedPrice)
		assert.Equal(t, 150.0, *b.ComputedPrice)
	}
	assert.Equal(t, []int64{3, 4, 5}, updatedIDs)

	// Прошлые члены не тронуты
	assert.Equal(t, 60, repo.bookings[1].DurationMinutes)
	assert.Equal(t, 60, repo.bookings[2].DurationMinutes)
}

func TestExecute_SeriesTimeShift_AppliesDeltaToEachMember(t *testing.T) {
	seriesID := uuid.New()
	members := weeklySeries(seriesID)
	repo := newFakeBookingRepo(members...)
	uc := newTestUseCase(repo, allDayBands(100), nil)

	// Сдвиг первого вхождения на час позже
	newStart := time.Date(2025, 10, 6, 11, 0, 0, 0, time.UTC)
	result, err := uc.Execute(context.Background(), &Request{
		BookingID:     1,
		ApplyToSeries: true,
		Changes:       Changes{StartAt: &newStart},
	})

	require.NoError(t, err)
	assert.Empty(t, result.Skipped)
	require.Len(t, result.Updated, 5)

	for i, b := range result.Updated {
		expected := newStart.AddDate(0, 0, 7*i)
		assert.Equal(t, expected, b.StartAt)
	}
}

func TestExecute_SeriesShift_SkipsConflictingMember(t *testing.T) {
	seriesID := uuid.New()
	members := weeklySeries(seriesID)
	// Чужое бронирование занимает новый слот третьего члена
	blocker := &domain.Booking{
		ID:              99,
		CourtID:         1,
		Occupant:        domain.RegisteredOccupant(7),
		StartAt:         time.Date(2025, 10, 20, 11, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
	repo := newFakeBookingRepo(append(members, blocker)...)
	uc := newTestUseCase(repo, allDayBands(100), nil)

	newStart := time.Date(2025, 10, 6, 11, 0, 0, 0, time.UTC)
	result, err := uc.Execute(context.Background(), &Request{
		BookingID:     1,
		ApplyToSeries: true,
		Changes:       Changes{StartAt: &newStart},
	})

	require.NoError(t, err)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, scheduling.ConflictBooking, result.Skipped[0].Reason)
	assert.Equal(t, int64(99), result.Skipped[0].ConflictID)
	require.Len(t, result.Updated, 4)

	// Конфликтующий член остался на прежнем времени
	assert.Equal(t, time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC), repo.bookings[3].StartAt)
}

func TestExecute_DailySeriesShiftOntoSiblingSlot(t *testing.T) {
	seriesID := uuid.New()
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)
	members := make([]*domain.Booking, 0, 3)
	for i := 0; i < 3; i++ {
		member := &domain.Booking{
			ID:              int64(i + 1),
			CourtID:         1,
			Occupant:        domain.RegisteredOccupant(42),
			StartAt:         start.AddDate(0, 0, i),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
			SeriesID:        &seriesID,
		}
		members = append(members, member)
	}
	repo := newFakeBookingRepo(members...)
	uc := newTestUseCase(repo, allDayBands(100), nil)

	// Сдвиг дневной серии ровно на сутки: каждый член, кроме последнего,
	// попадает на ещё не сдвинутый слот соседа и пропускается
	newStart := start.AddDate(0, 0, 1)
	result, err := uc.Execute(context.Background(), &Request{
		BookingID:     1,
		ApplyToSeries: true,
		Changes:       Changes{StartAt: &newStart},
	})

	require.NoError(t, err)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, scheduling.ConflictBooking, result.Skipped[0].Reason)
	assert.Equal(t, int64(2), result.Skipped[0].ConflictID)
	assert.Equal(t, int64(3), result.Skipped[1].ConflictID)

	require.Len(t, result.Updated, 1)
	assert.Equal(t, int64(3), result.Updated[0].ID)
	assert.Equal(t, start.AddDate(0, 0, 3), result.Updated[0].StartAt)

	// Пропущенные члены остались на прежних слотах
	assert.Equal(t, start, repo.bookings[1].StartAt)
	assert.Equal(t, start.AddDate(0, 0, 1), repo.bookings[2].StartAt)
}

func TestExecute_SingleShift_ConflictAborts(t *testing.T) {
	booking := &domain.Booking{
		ID:              1,
		CourtID:         1,
		Occupant:        domain.RegisteredOccupant(42),
		StartAt:         time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
	blocker := &domain.Booking{
		ID:              2,
		CourtID:         1,
		Occupant:        domain.RegisteredOccupant(7),
		StartAt:         time.Date(2025, 10, 6, 11, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
	repo := newFakeBookingRepo(booking, blocker)
	uc := newTestUseCase(repo, allDayBands(100), nil)

	newStart := time.Date(2025, 10, 6, 11, 30, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Changes:   Changes{StartAt: &newStart},
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, repo.updated)
}

func TestExecute_RecomputeKeepsNegotiatedPrice(t *testing.T) {
	booking := &domain.Booking{
		ID:              1,
		CourtID:         1,
		Occupant:        domain.RegisteredOccupant(42),
		StartAt:         time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		HourlyRate:      ptr.Ptr(100.0),
		ComputedPrice:   ptr.Ptr(100.0),
		NegotiatedPrice: ptr.Ptr(75.0),
	}
	repo := newFakeBookingRepo(booking)
	uc := newTestUseCase(repo, allDayBands(120), nil)

	result, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Changes:   Changes{DurationMinutes: ptr.Ptr(90)},
	})

	require.NoError(t, err)
	require.Len(t, result.Updated, 1)
	updated := result.Updated[0]
	require.NotNil(t, updated.ComputedPrice)
	assert.Equal(t, 180.0, *updated.ComputedPrice)
	require.NotNil(t, updated.NegotiatedPrice)
	assert.Equal(t, 75.0, *updated.NegotiatedPrice)
}

func TestExecute_NotesOnlyChange_LeavesPriceSnapshotAlone(t *testing.T) {
	booking := &domain.Booking{
		ID:              1,
		CourtID:         1,
		Occupant:        domain.RegisteredOccupant(42),
		StartAt:         time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		HourlyRate:      ptr.Ptr(100.0),
		ComputedPrice:   ptr.Ptr(100.0),
	}
	repo := newFakeBookingRepo(booking)
	// Полосы репозитория дают другую ставку; она не должна примениться
	uc := newTestUseCase(repo, allDayBands(500), nil)

	result, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Changes:   Changes{Notes: ptr.Ptr("перенести сетку")},
	})

	require.NoError(t, err)
	require.Len(t, result.Updated, 1)
	require.NotNil(t, result.Updated[0].ComputedPrice)
	assert.Equal(t, 100.0, *result.Updated[0].ComputedPrice)
	require.NotNil(t, result.Updated[0].Notes)
	assert.Equal(t, "перенести сетку", *result.Updated[0].Notes)
}

func TestExecute_SeriesMode_SkipsCancelledMembers(t *testing.T) {
	seriesID := uuid.New()
	members := weeklySeries(seriesID)
	members[3].Status = domain.StatusCancelled
	repo := newFakeBookingRepo(members...)
	uc := newTestUseCase(repo, allDayBands(100), nil)

	result, err := uc.Execute(context.Background(), &Request{
		BookingID:     3,
		ApplyToSeries: true,
		Changes:       Changes{DurationMinutes: ptr.Ptr(90)},
	})

	require.NoError(t, err)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, scheduling.ConflictNotUpdatable, result.Skipped[0].Reason)
	assert.Equal(t, int64(4), result.Skipped[0].ConflictID)
	require.Len(t, result.Updated, 2)
}

func TestExecute_NotASeries(t *testing.T) {
	booking := &domain.Booking{
		ID:              1,
		CourtID:         1,
		Occupant:        domain.RegisteredOccupant(42),
		StartAt:         time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
	uc := newTestUseCase(newFakeBookingRepo(booking), nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     1,
		ApplyToSeries: true,
		Changes:       Changes{DurationMinutes: ptr.Ptr(90)},
	})

	assert.ErrorIs(t, err, ErrNotASeries)
}

func TestExecute_CancelledBooking_CannotBeUpdated(t *testing.T) {
	booking := &domain.Booking{
		ID:              1,
		CourtID:         1,
		Occupant:        domain.RegisteredOccupant(42),
		StartAt:         time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusCancelled,
	}
	uc := newTestUseCase(newFakeBookingRepo(booking), nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Changes:   Changes{DurationMinutes: ptr.Ptr(90)},
	})

	assert.ErrorIs(t, err, ErrCannotUpdate)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 404,
		Changes:   Changes{DurationMinutes: ptr.Ptr(90)},
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_EmptyChanges(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), nil, nil)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
