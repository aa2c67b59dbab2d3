package bookings

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	storage "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
	courtStorage "github.com/m04kA/SMC-ArenaService/internal/infra/storage/court"
	"github.com/m04kA/SMC-ArenaService/internal/service/bookings/models"
)

// Фейки зависимостей сервиса

type fakeBookingRepo struct {
	bookings  map[int64]*domain.Booking
	statuses  map[int64]domain.BookingStatus
	deletedID []int64
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings: make(map[int64]*domain.Booking),
		statuses: make(map[int64]domain.BookingStatus),
	}
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
	return booking, nil
}

func (f *fakeBookingRepo) GetByCourtWithFilter(_ context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.CourtID != filter.CourtID {
			continue
		}
		if !filter.IncludeCancelled && b.Status == domain.StatusCancelled && filter.Status == nil {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (f *fakeBookingRepo) GetSeriesFrom(_ context.Context, seriesID uuid.UUID, from time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.SeriesID != nil && *b.SeriesID == seriesID && !b.StartAt.Before(from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.statuses[id] = status
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	delete(f.bookings, id)
	f.deletedID = append(f.deletedID, id)
	return nil
}

type fakeCourtRepo struct {
	court *domain.Court
}

func (f *fakeCourtRepo) GetByID(_ context.Context, _ int64) (*domain.Court, error) {
	if f.court == nil {
		return nil, courtStorage.ErrCourtNotFound
	}
	return f.court, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeBookingRepo) *Service {
	return NewService(
		repo,
		&fakeCourtRepo{court: &domain.Court{ID: 1, FacilityID: 10, Name: "Корт 1", Active: true}},
		&fakeTxManager{},
		nopLogger{},
	)
}

func confirmedBooking(id int64, startAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		CourtID:         1,
		Occupant:        domain.RegisteredOccupant(42),
		StartAt:         startAt,
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func seriesOf(seriesID uuid.UUID, count int) []*domain.Booking {
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)
	members := make([]*domain.Booking, 0, count)
	for i := 0; i < count; i++ {
		member := confirmedBooking(int64(i+1), start.AddDate(0, 0, 7*i))
		member.SeriesID = &seriesID
		members = append(members, member)
	}
	return members
}

func TestCancel_SingleOccurrence(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1, time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)))
	svc := newTestService(repo)

	result, err := svc.Cancel(context.Background(), 1, &models.ScopeRequest{})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result.Affected)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, domain.StatusCancelled, repo.statuses[1])
}

func TestCancel_SeriesScope_FutureMembersOnly(t *testing.T) {
	seriesID := uuid.New()
	repo := newFakeBookingRepo(seriesOf(seriesID, 5)...)
	svc := newTestService(repo)

	// Отмена от третьего члена затрагивает только хвост серии
	result, err := svc.Cancel(context.Background(), 3, &models.ScopeRequest{ApplyToSeries: true})

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 5}, result.Affected)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[2].Status)
}

func TestCancel_SeriesScope_SkipsCompletedMembers(t *testing.T) {
	seriesID := uuid.New()
	members := seriesOf(seriesID, 3)
	members[1].Status = domain.StatusCompleted
	repo := newFakeBookingRepo(members...)
	svc := newTestService(repo)

	result, err := svc.Cancel(context.Background(), 1, &models.ScopeRequest{ApplyToSeries: true})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, result.Affected)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, int64(2), result.Skipped[0].BookingID)
	assert.Equal(t, reasonNotCancellable, result.Skipped[0].Reason)
	assert.Equal(t, domain.StatusCompleted, repo.bookings[2].Status)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := confirmedBooking(1, time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC))
	booking.Status = domain.StatusCancelled
	svc := newTestService(newFakeBookingRepo(booking))

	_, err := svc.Cancel(context.Background(), 1, &models.ScopeRequest{})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_SeriesScopeOnNonSeries(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(confirmedBooking(1, time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC))))

	_, err := svc.Cancel(context.Background(), 1, &models.ScopeRequest{ApplyToSeries: true})

	assert.ErrorIs(t, err, ErrNotASeries)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())

	_, err := svc.Cancel(context.Background(), 404, &models.ScopeRequest{})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDelete_SingleOccurrence(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1, time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)))
	svc := newTestService(repo)

	result, err := svc.Delete(context.Background(), 1, &models.ScopeRequest{})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result.Affected)
	assert.Equal(t, []int64{1}, repo.deletedID)
}

func TestDelete_SeriesScope(t *testing.T) {
	seriesID := uuid.New()
	repo := newFakeBookingRepo(seriesOf(seriesID, 4)...)
	svc := newTestService(repo)

	result, err := svc.Delete(context.Background(), 2, &models.ScopeRequest{ApplyToSeries: true})

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4}, result.Affected)
	assert.Contains(t, repo.bookings, int64(1))
	assert.NotContains(t, repo.bookings, int64(3))
}

func TestGetByID(t *testing.T) {
	booking := confirmedBooking(1, time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC))
	svc := newTestService(newFakeBookingRepo(booking))

	resp, err := svc.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-10-06T10:00:00Z", resp.StartAt)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, int64(42), *resp.UserID)
	assert.Nil(t, resp.GuestName)
}

func TestGetCourtBookings_ExcludesCancelledByDefault(t *testing.T) {
	active := confirmedBooking(1, time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC))
	cancelled := confirmedBooking(2, time.Date(2025, 10, 6, 12, 0, 0, 0, time.UTC))
	cancelled.Status = domain.StatusCancelled
	svc := newTestService(newFakeBookingRepo(active, cancelled))

	resp, err := svc.GetCourtBookings(context.Background(), &models.GetCourtBookingsRequest{CourtID: 1})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestGetCourtBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())
	status := "pending"

	_, err := svc.GetCourtBookings(context.Background(), &models.GetCourtBookingsRequest{CourtID: 1, Status: &status})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCourtBookings_CourtNotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeCourtRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := svc.GetCourtBookings(context.Background(), &models.GetCourtBookingsRequest{CourtID: 7})

	assert.ErrorIs(t, err, ErrCourtNotFound)
}
