package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/psqlbuilder"
)

var scheduleColumns = []string{"id", "tenant_id", "staff_id", "weekday", "start_min", "end_min"}

// ListSchedules получает расписание мастера на день недели, упорядоченное по началу
func (r *Repository) ListSchedules(ctx context.Context, tenantID string, staffID int64, weekday int) ([]*domain.Schedule, error) {
	return r.listSchedules(ctx, "ListSchedules", squirrel.Eq{"tenant_id": tenantID, "staff_id": staffID, "weekday": weekday})
}

// ListStaffSchedules получает все интервалы расписания мастера
func (r *Repository) ListStaffSchedules(ctx context.Context, tenantID string, staffID int64) ([]*domain.Schedule, error) {
	return r.listSchedules(ctx, "ListStaffSchedules", squirrel.Eq{"tenant_id": tenantID, "staff_id": staffID})
}

func (r *Repository) listSchedules(ctx context.Context, op string, where squirrel.Eq) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(where).
		OrderBy("weekday ASC", "start_min ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ID, &s.TenantID, &s.StaffID, &s.Weekday, &s.StartMin, &s.EndMin); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return schedules, nil
}

// GetSchedule получает интервал расписания по ID
func (r *Repository) GetSchedule(ctx context.Context, tenantID string, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - build select query: %w", ErrBuildQuery, err)
	}

	var s domain.Schedule
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.TenantID, &s.StaffID, &s.Weekday, &s.StartMin, &s.EndMin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - scan schedule: %w", ErrScanRow, err)
	}

	return &s, nil
}

// CreateSchedule добавляет интервал расписания
func (r *Repository) CreateSchedule(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedules").
		Columns("tenant_id", "staff_id", "weekday", "start_min", "end_min").
		Values(schedule.TenantID, schedule.StaffID, schedule.Weekday, schedule.StartMin, schedule.EndMin).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSchedule - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&schedule.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateSchedule - execute insert: %w", ErrExecQuery, err)
	}

	return schedule, nil
}

// UpdateSchedule изменяет интервал расписания
func (r *Repository) UpdateSchedule(ctx context.Context, schedule *domain.Schedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("weekday", schedule.Weekday).
		Set("start_min", schedule.StartMin).
		Set("end_min", schedule.EndMin).
		Where(squirrel.Eq{"tenant_id": schedule.TenantID, "id": schedule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateSchedule", ErrScheduleNotFound)
}

// DeleteSchedule удаляет интервал расписания
func (r *Repository) DeleteSchedule(ctx context.Context, tenantID string, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSchedule - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSchedule - execute delete: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "DeleteSchedule", ErrScheduleNotFound)
}
