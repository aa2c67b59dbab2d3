package blackout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArenaService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с окнами блокировки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон блокировки
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var blackoutColumns = []string{
	"id",
	"facility_id",
	"court_ids",
	"title",
	"date_start",
	"date_end",
	"minute_start",
	"minute_end",
	"active",
	"created_at",
	"updated_at",
}

// GetActiveForFacilityInRange получает активные окна блокировки площадки,
// чей диапазон дат (включительный) пересекает [dateFrom, dateTo].
// Фильтрация по конкретному корту выполняется в памяти (court_ids NULL/пустой
// означает "все корты площадки").
func (r *Repository) GetActiveForFacilityInRange(ctx context.Context, facilityID int64, dateFrom, dateTo time.Time) ([]*domain.BlackoutWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_windows").
		Where(squirrel.Eq{"facility_id": facilityID, "active": true}).
		Where(squirrel.LtOrEq{"date_start": dateTo}).
		Where(squirrel.GtOrEq{"date_end": dateFrom}).
		OrderBy("date_start ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForFacilityInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForFacilityInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlackouts(rows)
}

// scanBlackouts сканирует результаты запроса в слайс окон блокировки
func scanBlackouts(rows *sql.Rows) ([]*domain.BlackoutWindow, error) {
	windows := make([]*domain.BlackoutWindow, 0)

	for rows.Next() {
		var window domain.BlackoutWindow
		var courtIDs pq.Int64Array
		var minuteStart, minuteEnd sql.NullInt64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.FacilityID,
			&courtIDs,
			&window.Title,
			&window.DateStart,
			&window.DateEnd,
			&minuteStart,
			&minuteEnd,
			&window.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlackouts - scan row: %v", ErrScanRow, err)
		}

		window.CourtIDs = courtIDs
		window.DateStart = window.DateStart.UTC()
		window.DateEnd = window.DateEnd.UTC()

		if minuteStart.Valid {
			m := int(minuteStart.Int64)
			window.MinuteStart = &m
		}
		if minuteEnd.Valid {
			m := int(minuteEnd.Int64)
			window.MinuteEnd = &m
		}

		window.CreatedAt = createdAt.Time
		window.UpdatedAt = updatedAt.Time

		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlackouts - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
