package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/psqlbuilder"
)

var timeOffColumns = []string{"id", "tenant_id", "staff_id", "date_from", "date_to", "reason"}

// HasTimeOff сообщает, отсутствует ли мастер в указанную дату
// Дата передается строкой YYYY-MM-DD, чтобы сравнение DATE не зависело от часового пояса соединения
func (r *Repository) HasTimeOff(ctx context.Context, tenantID string, staffID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select("1").
		From("time_off").
		Where(squirrel.Eq{"tenant_id": tenantID, "staff_id": staffID}).
		Where(squirrel.LtOrEq{"date_from": day}).
		Where(squirrel.GtOrEq{"date_to": day}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasTimeOff - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasTimeOff - scan row: %w", ErrScanRow, err)
	}

	return true, nil
}

// ListTimeOff получает отсутствия мастера
func (r *Repository) ListTimeOff(ctx context.Context, tenantID string, staffID int64) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeOffColumns...).
		From("time_off").
		Where(squirrel.Eq{"tenant_id": tenantID, "staff_id": staffID}).
		OrderBy("date_from ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	list := make([]*domain.TimeOff, 0)
	for rows.Next() {
		var t domain.TimeOff
		if err := rows.Scan(&t.ID, &t.TenantID, &t.StaffID, &t.DateFrom, &t.DateTo, &t.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListTimeOff - scan row: %w", ErrScanRow, err)
		}
		list = append(list, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - rows error: %w", ErrScanRow, err)
	}

	return list, nil
}

// GetTimeOff получает отсутствие по ID
func (r *Repository) GetTimeOff(ctx context.Context, tenantID string, id int64) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeOffColumns...).
		From("time_off").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - build select query: %w", ErrBuildQuery, err)
	}

	var t domain.TimeOff
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.TenantID, &t.StaffID, &t.DateFrom, &t.DateTo, &t.Reason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeOffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - scan time off: %w", ErrScanRow, err)
	}

	return &t, nil
}

// CreateTimeOff добавляет отсутствие мастера
func (r *Repository) CreateTimeOff(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_off").
		Columns("tenant_id", "staff_id", "date_from", "date_to", "reason").
		Values(
			timeOff.TenantID,
			timeOff.StaffID,
			timeOff.DateFrom.Format(domain.DateFormat),
			timeOff.DateTo.Format(domain.DateFormat),
			timeOff.Reason,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&timeOff.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - execute insert: %w", ErrExecQuery, err)
	}

	return timeOff, nil
}

// DeleteTimeOff удаляет отсутствие
func (r *Repository) DeleteTimeOff(ctx context.Context, tenantID string, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_off").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - execute delete: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "DeleteTimeOff", ErrTimeOffNotFound)
}
