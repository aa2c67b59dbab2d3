package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArenaService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"court_id",
	"user_id",
	"guest_name",
	"guest_phone",
	"start_at",
	"duration_minutes",
	"status",
	"is_lesson",
	"hourly_rate",
	"computed_price",
	"negotiated_price",
	"series_id",
	"recurrence_kind",
	"recurrence_interval",
	"recurrence_weekdays",
	"recurrence_day_of_month",
	"recurrence_end_date",
	"recurrence_count",
	"notes",
	"created_at",
	"updated_at",
}

// Create создает новое бронирование (одно вхождение)
// Если в контексте передана активная транзакция, использует её -
// пакетное создание серии выполняется целиком внутри одной транзакции
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	userID, guestName, guestPhone := occupantColumns(booking.Occupant)

	var ruleKind, ruleWeekdays, ruleEndDate, ruleInterval, ruleDayOfMonth, ruleCount interface{}
	if booking.Rule != nil {
		ruleKind = string(booking.Rule.Kind)
		ruleInterval = booking.Rule.Interval
		weekdays := make(pq.Int64Array, 0, len(booking.Rule.Weekdays))
		for _, wd := range booking.Rule.Weekdays {
			weekdays = append(weekdays, int64(wd))
		}
		ruleWeekdays = weekdays
		if booking.Rule.DayOfMonth != 0 {
			ruleDayOfMonth = booking.Rule.DayOfMonth
		}
		if booking.Rule.EndDate != nil {
			ruleEndDate = *booking.Rule.EndDate
		}
		if booking.Rule.Count != nil {
			ruleCount = *booking.Rule.Count
		}
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"court_id",
			"user_id",
			"guest_name",
			"guest_phone",
			"start_at",
			"duration_minutes",
			"status",
			"is_lesson",
			"hourly_rate",
			"computed_price",
			"negotiated_price",
			"series_id",
			"recurrence_kind",
			"recurrence_interval",
			"recurrence_weekdays",
			"recurrence_day_of_month",
			"recurrence_end_date",
			"recurrence_count",
			"notes",
		).
		Values(
			booking.CourtID,
			userID,
			guestName,
			guestPhone,
			booking.StartAt,
			booking.DurationMinutes,
			booking.Status,
			booking.IsLesson,
			booking.HourlyRate,
			booking.ComputedPrice,
			booking.NegotiatedPrice,
			booking.SeriesID,
			ruleKind,
			ruleInterval,
			ruleWeekdays,
			ruleDayOfMonth,
			ruleEndDate,
			ruleCount,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: чтение предшествует изменению
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCourtWithFilter получает бронирования корта с гибкой фильтрацией.
// From/To задают полуоткрытое окно [From, To): выбираются бронирования,
// временной интервал которых пересекает окно (учитывается длительность,
// а не только момент начала).
//
// Внутри транзакции с заданным окном строки блокируются (FOR UPDATE) -
// это сериализует конкурирующие проверки доступности одного корта.
func (r *Repository) GetByCourtWithFilter(ctx context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"court_id": filter.CourtID})

	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("start_at + duration_minutes * interval '1 minute' > ?", *filter.From),
		)
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.From != nil && filter.To != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetSeriesFrom получает вхождения серии, начинающиеся не раньше from,
// в хронологическом порядке. Прошлые вхождения серии никогда не
// возвращаются этим методом и потому не могут быть затронуты.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetSeriesFrom(ctx context.Context, seriesID uuid.UUID, from time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"series_id": seriesID}).
		Where(squirrel.GtOrEq{"start_at": from}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeriesFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeriesFrom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update сохраняет изменяемые поля бронирования
// Снапшоты цены (hourly_rate, computed_price) перезаписываются вместе с
// полями, от которых они вычислены; negotiated_price пишется как есть
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	userID, guestName, guestPhone := occupantColumns(booking.Occupant)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_at", booking.StartAt).
		Set("duration_minutes", booking.DurationMinutes).
		Set("user_id", userID).
		Set("guest_name", guestName).
		Set("guest_phone", guestPhone).
		Set("status", booking.Status).
		Set("is_lesson", booking.IsLesson).
		Set("hourly_rate", booking.HourlyRate).
		Set("computed_price", booking.ComputedPrice).
		Set("negotiated_price", booking.NegotiatedPrice).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete физически удаляет бронирование
// Используется только для корректировок до появления финансовых записей;
// для обычной отмены применяется UpdateStatus со статусом cancelled
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// occupantColumns раскладывает tagged union занимающего на nullable колонки
func occupantColumns(o domain.Occupant) (userID, guestName, guestPhone interface{}) {
	switch o.Kind {
	case domain.OccupantRegistered:
		return o.UserID, nil, nil
	case domain.OccupantWalkIn:
		var phone interface{}
		if o.GuestPhone != "" {
			phone = o.GuestPhone
		}
		return nil, o.GuestName, phone
	}
	return nil, nil, nil
}

// scanBooking читает одну строку в доменную модель
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var booking domain.Booking
	var userID sql.NullInt64
	var guestName, guestPhone sql.NullString
	var seriesID uuid.NullUUID
	var ruleKind sql.NullString
	var ruleInterval, ruleDayOfMonth, ruleCount sql.NullInt64
	var ruleWeekdays pq.Int64Array
	var ruleEndDate sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&booking.ID,
		&booking.CourtID,
		&userID,
		&guestName,
		&guestPhone,
		&booking.StartAt,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.IsLesson,
		&booking.HourlyRate,
		&booking.ComputedPrice,
		&booking.NegotiatedPrice,
		&seriesID,
		&ruleKind,
		&ruleInterval,
		&ruleWeekdays,
		&ruleDayOfMonth,
		&ruleEndDate,
		&ruleCount,
		&booking.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.StartAt = booking.StartAt.UTC()

	if userID.Valid {
		booking.Occupant = domain.RegisteredOccupant(userID.Int64)
	} else {
		booking.Occupant = domain.WalkInOccupant(guestName.String, guestPhone.String)
	}

	if seriesID.Valid {
		id := seriesID.UUID
		booking.SeriesID = &id
	}

	if ruleKind.Valid {
		rule := &domain.RecurrenceRule{
			Kind:     domain.RecurrenceKind(ruleKind.String),
			Interval: int(ruleInterval.Int64),
		}
		for _, wd := range ruleWeekdays {
			rule.Weekdays = append(rule.Weekdays, int(wd))
		}
		if ruleDayOfMonth.Valid {
			rule.DayOfMonth = int(ruleDayOfMonth.Int64)
		}
		if ruleEndDate.Valid {
			endDate := ruleEndDate.Time.UTC()
			rule.EndDate = &endDate
		}
		if ruleCount.Valid {
			count := int(ruleCount.Int64)
			rule.Count = &count
		}
		booking.Rule = rule
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
