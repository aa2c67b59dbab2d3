package priceband

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArenaService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с тарифными полосами кортов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифных полос
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var priceBandColumns = []string{
	"id",
	"court_id",
	"start_minute",
	"end_minute",
	"hourly_rate",
	"hourly_rate_lesson",
	"active",
	"created_at",
	"updated_at",
}

// GetActiveByCourt получает активные тарифные полосы корта в сохранённом
// порядке (start_minute ASC). Порядок значим: при пересекающихся активных
// полосах выигрывает первая подходящая.
func (r *Repository) GetActiveByCourt(ctx context.Context, courtID int64) ([]*domain.PriceBand, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(priceBandColumns...).
		From("price_bands").
		Where(squirrel.Eq{"court_id": courtID, "active": true}).
		OrderBy("start_minute ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCourt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCourt - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPriceBands(rows)
}

// GetAllByCourt получает все тарифные полосы корта, включая неактивные
// Используется операторским календарём для отображения конфигурации тарифов
func (r *Repository) GetAllByCourt(ctx context.Context, courtID int64) ([]*domain.PriceBand, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(priceBandColumns...).
		From("price_bands").
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("start_minute ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCourt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCourt - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPriceBands(rows)
}

// scanPriceBands сканирует результаты запроса в слайс тарифных полос
func scanPriceBands(rows *sql.Rows) ([]*domain.PriceBand, error) {
	bands := make([]*domain.PriceBand, 0)

	for rows.Next() {
		var band domain.PriceBand
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&band.ID,
			&band.CourtID,
			&band.StartMinute,
			&band.EndMinute,
			&band.HourlyRate,
			&band.HourlyRateLesson,
			&band.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPriceBands - scan row: %v", ErrScanRow, err)
		}

		band.CreatedAt = createdAt.Time
		band.UpdatedAt = updatedAt.Time

		bands = append(bands, &band)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPriceBands - rows error: %v", ErrScanRow, err)
	}

	return bands, nil
}
