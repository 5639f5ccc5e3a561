package earlier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var requestColumns = []string{
	"r.id",
	"r.tenant_id",
	"r.customer_email",
	"r.current_booking_id",
	"r.desired_date",
	"r.flexible_timing",
	"r.priority",
	"r.status",
	"r.expires_at",
	"r.offered_start_at",
	"r.offered_staff_id",
	"r.fulfilled_at",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий запросов на более раннюю запись
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет активный запрос
func (r *Repository) Create(ctx context.Context, req *domain.EarlierAppointmentRequest) (*domain.EarlierAppointmentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var desiredDate *string
	if req.DesiredDate != nil {
		s := req.DesiredDate.Format(domain.DateFormat)
		desiredDate = &s
	}

	query, args, err := psqlbuilder.Insert("earlier_requests").
		Columns(
			"tenant_id",
			"customer_email",
			"current_booking_id",
			"desired_date",
			"flexible_timing",
			"priority",
			"status",
			"expires_at",
		).
		Values(
			req.TenantID,
			req.CustomerEmail,
			req.CurrentBookingID,
			desiredDate,
			req.FlexibleTiming,
			req.Priority,
			req.Status,
			req.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrActiveRequestExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return req, nil
}

// HasActiveForBooking сообщает, есть ли активный запрос для бронирования
func (r *Repository) HasActiveForBooking(ctx context.Context, tenantID string, bookingID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("earlier_requests").
		Where(squirrel.Eq{
			"tenant_id":          tenantID,
			"current_booking_id": bookingID,
			"status":             domain.RequestActive,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveForBooking - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveForBooking - scan row: %w", ErrScanRow, err)
	}

	return true, nil
}

// ListActiveCandidates получает активные запросы арендатора для мастера вместе с их текущими бронированиями,
// срочные первыми, затем старые первыми
// Внутри транзакции строки запросов блокируются (FOR UPDATE OF r)
func (r *Repository) ListActiveCandidates(ctx context.Context, tenantID string, staffID int64) ([]*domain.EarlierCandidate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, requestColumns...), "b.start_at", "b.end_at", "b.staff_id")

	selectBuilder := psqlbuilder.Select(columns...).
		From("earlier_requests r").
		Join("bookings b ON b.id = r.current_booking_id AND b.tenant_id = r.tenant_id").
		Where(squirrel.Eq{
			"r.tenant_id": tenantID,
			"r.status":    domain.RequestActive,
			"b.staff_id":  staffID,
			"b.status":    domain.BookingConfirmed,
		}).
		OrderBy("CASE WHEN r.priority = 'urgent' THEN 0 ELSE 1 END", "r.created_at ASC", "r.id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveCandidates - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveCandidates - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	candidates := make([]*domain.EarlierCandidate, 0)
	for rows.Next() {
		var req domain.EarlierAppointmentRequest
		c := domain.EarlierCandidate{Request: &req}
		err := rows.Scan(
			&req.ID,
			&req.TenantID,
			&req.CustomerEmail,
			&req.CurrentBookingID,
			&req.DesiredDate,
			&req.FlexibleTiming,
			&req.Priority,
			&req.Status,
			&req.ExpiresAt,
			&req.OfferedStartAt,
			&req.OfferedStaffID,
			&req.FulfilledAt,
			&req.CreatedAt,
			&req.UpdatedAt,
			&c.CurrentStartAt,
			&c.CurrentEndAt,
			&c.StaffID,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveCandidates - scan row: %w", ErrScanRow, err)
		}
		candidates = append(candidates, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveCandidates - rows error: %w", ErrScanRow, err)
	}

	return candidates, nil
}

// MarkFulfilled фиксирует предложенный слот
func (r *Repository) MarkFulfilled(ctx context.Context, tenantID string, id int64, offeredStart time.Time, offeredStaffID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("earlier_requests").
		Set("status", domain.RequestFulfilled).
		Set("offered_start_at", offeredStart).
		Set("offered_staff_id", offeredStaffID).
		Set("fulfilled_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id, "status": domain.RequestActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkFulfilled - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkFulfilled - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkFulfilled - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// MarkExpired переводит указанные активные запросы в статус expired
func (r *Repository) MarkExpired(ctx context.Context, tenantID string, ids []int64, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("earlier_requests").
		Set("status", domain.RequestExpired).
		Set("updated_at", at).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": ids, "status": domain.RequestActive}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkExpired - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkExpired - execute update: %w", ErrExecQuery, err)
	}

	return result.RowsAffected()
}

// ExpireStale переводит в expired все активные запросы с expires_at < now во всех арендаторах
func (r *Repository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("earlier_requests").
		Set("status", domain.RequestExpired).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": domain.RequestActive}).
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - execute update: %w", ErrExecQuery, err)
	}

	return result.RowsAffected()
}
