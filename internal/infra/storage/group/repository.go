package group

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

var groupColumns = []string{
	"id",
	"tenant_id",
	"service_id",
	"staff_id",
	"booking_id",
	"primary_email",
	"start_at",
	"end_at",
	"max_participants",
	"current_participants",
	"price_per_person_cents",
	"status",
	"created_by",
	"created_at",
	"updated_at",
}

var participantColumns = []string{"id", "tenant_id", "group_id", "name", "email", "phone", "status", "created_at", "updated_at"}

// Repository репозиторий групповых записей и участников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория групповых записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет групповую запись
func (r *Repository) Create(ctx context.Context, g *domain.GroupBooking) (*domain.GroupBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("group_bookings").
		Columns(
			"tenant_id",
			"service_id",
			"staff_id",
			"booking_id",
			"primary_email",
			"start_at",
			"end_at",
			"max_participants",
			"current_participants",
			"price_per_person_cents",
			"status",
			"created_by",
		).
		Values(
			g.TenantID,
			g.ServiceID,
			g.StaffID,
			g.BookingID,
			g.PrimaryEmail,
			g.StartAt,
			g.EndAt,
			g.MaxParticipants,
			g.CurrentParticipants,
			g.PricePerPersonCents,
			g.Status,
			g.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return g, nil
}

// GetByID получает групповую запись без участников
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, tenantID string, id int64) (*domain.GroupBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(groupColumns...).
		From("group_bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var g domain.GroupBooking
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&g.ID,
		&g.TenantID,
		&g.ServiceID,
		&g.StaffID,
		&g.BookingID,
		&g.PrimaryEmail,
		&g.StartAt,
		&g.EndAt,
		&g.MaxParticipants,
		&g.CurrentParticipants,
		&g.PricePerPersonCents,
		&g.Status,
		&g.CreatedBy,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan group: %w", ErrScanRow, err)
	}

	return &g, nil
}

// IncrementParticipants атомарно занимает место в группе
// Условие в WHERE не дает счетчику превысить max_participants даже при конкурентных запросах
func (r *Repository) IncrementParticipants(ctx context.Context, tenantID string, id int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("group_bookings").
		Set("current_participants", squirrel.Expr("current_participants + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id, "status": domain.GroupConfirmed}).
		Where("current_participants < max_participants").
		Suffix("RETURNING current_participants").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: IncrementParticipants - build update query: %w", ErrBuildQuery, err)
	}

	var current int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrGroupFull
	}
	if err != nil {
		return 0, fmt.Errorf("%w: IncrementParticipants - execute update: %w", ErrExecQuery, err)
	}

	return current, nil
}

// DecrementParticipants освобождает место в группе
func (r *Repository) DecrementParticipants(ctx context.Context, tenantID string, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("group_bookings").
		Set("current_participants", squirrel.Expr("current_participants - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		Where("current_participants > 0").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DecrementParticipants - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DecrementParticipants - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementParticipants - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// UpdateStatus меняет статус групповой записи
func (r *Repository) UpdateStatus(ctx context.Context, tenantID string, id int64, status domain.GroupStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("group_bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// AddParticipant сохраняет участника
// Место в группе должно быть занято заранее через IncrementParticipants или при создании группы
func (r *Repository) AddParticipant(ctx context.Context, p *domain.Participant) (*domain.Participant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("group_participants").
		Columns("tenant_id", "group_id", "name", "email", "phone", "status").
		Values(p.TenantID, p.GroupID, p.Name, p.Email, p.Phone, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddParticipant - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: AddParticipant - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

// ListParticipants получает участников группы
func (r *Repository) ListParticipants(ctx context.Context, tenantID string, groupID int64) ([]*domain.Participant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(participantColumns...).
		From("group_participants").
		Where(squirrel.Eq{"tenant_id": tenantID, "group_id": groupID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListParticipants - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListParticipants - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListParticipants - scan row: %w", ErrScanRow, err)
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListParticipants - rows error: %w", ErrScanRow, err)
	}

	return participants, nil
}

// GetParticipant получает участника группы
func (r *Repository) GetParticipant(ctx context.Context, tenantID string, groupID, id int64) (*domain.Participant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(participantColumns...).
		From("group_participants").
		Where(squirrel.Eq{"tenant_id": tenantID, "group_id": groupID, "id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetParticipant - build select query: %w", ErrBuildQuery, err)
	}

	p, err := scanParticipant(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetParticipant - scan participant: %w", ErrScanRow, err)
	}

	return p, nil
}

// HasActiveParticipant сообщает, есть ли в группе подтвержденный участник с таким email
func (r *Repository) HasActiveParticipant(ctx context.Context, tenantID string, groupID int64, email string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("group_participants").
		Where(squirrel.Eq{
			"tenant_id": tenantID,
			"group_id":  groupID,
			"email":     email,
			"status":    domain.ParticipantConfirmed,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveParticipant - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveParticipant - scan row: %w", ErrScanRow, err)
	}

	return true, nil
}

// CancelParticipant отменяет участие
func (r *Repository) CancelParticipant(ctx context.Context, tenantID string, groupID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("group_participants").
		Set("status", domain.ParticipantCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"tenant_id": tenantID,
			"group_id":  groupID,
			"id":        id,
			"status":    domain.ParticipantConfirmed,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CancelParticipant - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelParticipant - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelParticipant - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanParticipant(row rowScanner) (*domain.Participant, error) {
	var p domain.Participant
	err := row.Scan(&p.ID, &p.TenantID, &p.GroupID, &p.Name, &p.Email, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
