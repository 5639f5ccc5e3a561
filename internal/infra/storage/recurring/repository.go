package recurring

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

var seriesColumns = []string{
	"id",
	"tenant_id",
	"service_id",
	"staff_id",
	"customer_email",
	"start_date",
	"frequency",
	"time_slot",
	"end_date",
	"max_occurrences",
	"status",
	"created_by",
	"created_at",
	"updated_at",
}

var instanceColumns = []string{
	"id",
	"tenant_id",
	"series_id",
	"scheduled_at",
	"status",
	"booking_id",
	"skip_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий повторяющихся серий и их экземпляров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория серий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateSeries сохраняет шаблон серии
func (r *Repository) CreateSeries(ctx context.Context, series *domain.RecurringSeries) (*domain.RecurringSeries, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var endDate *string
	if series.EndDate != nil {
		s := series.EndDate.Format(domain.DateFormat)
		endDate = &s
	}

	query, args, err := psqlbuilder.Insert("recurring_series").
		Columns(
			"tenant_id",
			"service_id",
			"staff_id",
			"customer_email",
			"start_date",
			"frequency",
			"time_slot",
			"end_date",
			"max_occurrences",
			"status",
			"created_by",
		).
		Values(
			series.TenantID,
			series.ServiceID,
			series.StaffID,
			series.CustomerEmail,
			series.StartDate.Format(domain.DateFormat),
			series.Frequency,
			series.TimeSlot,
			endDate,
			series.MaxOccurrences,
			series.Status,
			series.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSeries - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&series.ID, &series.CreatedAt, &series.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateSeries - execute insert: %w", ErrExecQuery, err)
	}

	return series, nil
}

// CreateInstances сохраняет экземпляры серии одним запросом и проставляет им ID
func (r *Repository) CreateInstances(ctx context.Context, instances []*domain.RecurringInstance) error {
	if len(instances) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("recurring_instances").
		Columns("tenant_id", "series_id", "scheduled_at", "status")
	for _, inst := range instances {
		insert = insert.Values(inst.TenantID, inst.SeriesID, inst.ScheduledAt, inst.Status)
	}

	query, args, err := insert.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateInstances - build insert query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CreateInstances - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	// PostgreSQL возвращает строки multi-row INSERT в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(instances) {
			return fmt.Errorf("%w: CreateInstances - unexpected extra row", ErrScanRow)
		}
		if err := rows.Scan(&instances[i].ID, &instances[i].CreatedAt, &instances[i].UpdatedAt); err != nil {
			return fmt.Errorf("%w: CreateInstances - scan row: %w", ErrScanRow, err)
		}
		i++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: CreateInstances - rows error: %w", ErrScanRow, err)
	}

	return nil
}

// GetSeries получает серию по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetSeries(ctx context.Context, tenantID string, id int64) (*domain.RecurringSeries, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(seriesColumns...).
		From("recurring_series").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeries - build select query: %w", ErrBuildQuery, err)
	}

	var s domain.RecurringSeries
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.TenantID,
		&s.ServiceID,
		&s.StaffID,
		&s.CustomerEmail,
		&s.StartDate,
		&s.Frequency,
		&s.TimeSlot,
		&s.EndDate,
		&s.MaxOccurrences,
		&s.Status,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeriesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeries - scan series: %w", ErrScanRow, err)
	}

	return &s, nil
}

// UpdateSeriesStatus меняет статус серии
func (r *Repository) UpdateSeriesStatus(ctx context.Context, tenantID string, id int64, status domain.SeriesStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("recurring_series").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSeriesStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSeriesStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSeriesStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSeriesNotFound
	}

	return nil
}

// ListInstances получает экземпляры серии в порядке времени
func (r *Repository) ListInstances(ctx context.Context, tenantID string, seriesID int64) ([]*domain.RecurringInstance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(instanceColumns...).
		From("recurring_instances").
		Where(squirrel.Eq{"tenant_id": tenantID, "series_id": seriesID}).
		OrderBy("scheduled_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInstances - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInstances - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	instances := make([]*domain.RecurringInstance, 0)
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListInstances - scan row: %w", ErrScanRow, err)
		}
		instances = append(instances, inst)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInstances - rows error: %w", ErrScanRow, err)
	}

	return instances, nil
}

// GetInstance получает экземпляр по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetInstance(ctx context.Context, tenantID string, id int64) (*domain.RecurringInstance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(instanceColumns...).
		From("recurring_instances").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInstance - build select query: %w", ErrBuildQuery, err)
	}

	inst, err := scanInstance(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInstanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetInstance - scan instance: %w", ErrScanRow, err)
	}

	return inst, nil
}

// UpdateInstance сохраняет статус, ссылку на бронирование и причину пропуска
func (r *Repository) UpdateInstance(ctx context.Context, inst *domain.RecurringInstance) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	inst.UpdatedAt = time.Now()

	query, args, err := psqlbuilder.Update("recurring_instances").
		Set("status", inst.Status).
		Set("booking_id", inst.BookingID).
		Set("skip_reason", inst.SkipReason).
		Set("updated_at", inst.UpdatedAt).
		Where(squirrel.Eq{"tenant_id": inst.TenantID, "id": inst.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateInstance - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateInstance - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateInstance - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInstanceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInstance(row rowScanner) (*domain.RecurringInstance, error) {
	var inst domain.RecurringInstance
	err := row.Scan(
		&inst.ID,
		&inst.TenantID,
		&inst.SeriesID,
		&inst.ScheduledAt,
		&inst.Status,
		&inst.BookingID,
		&inst.SkipReason,
		&inst.CreatedAt,
		&inst.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}
