package ban

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

// Repository репозиторий блокировок клиентов
// Email хранится в нижнем регистре
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create блокирует email в рамках арендатора
func (r *Repository) Create(ctx context.Context, ban *domain.CustomerBan) (*domain.CustomerBan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	ban.Email = domain.NormalizeEmail(ban.Email)

	query, args, err := psqlbuilder.Insert("customer_bans").
		Columns("tenant_id", "email", "reason", "created_by").
		Values(ban.TenantID, ban.Email, ban.Reason, ban.CreatedBy).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&ban.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrBanExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return ban, nil
}

// Delete снимает блокировку
func (r *Repository) Delete(ctx context.Context, tenantID, email string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("customer_bans").
		Where(squirrel.Eq{"tenant_id": tenantID, "email": domain.NormalizeEmail(email)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBanNotFound
	}

	return nil
}

// IsBanned сообщает, заблокирован ли email
func (r *Repository) IsBanned(ctx context.Context, tenantID, email string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("customer_bans").
		Where(squirrel.Eq{"tenant_id": tenantID, "email": domain.NormalizeEmail(email)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsBanned - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsBanned - scan row: %w", ErrScanRow, err)
	}

	return true, nil
}

// List получает все блокировки арендатора
func (r *Repository) List(ctx context.Context, tenantID string) ([]*domain.CustomerBan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("tenant_id", "email", "reason", "created_by", "created_at").
		From("customer_bans").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bans := make([]*domain.CustomerBan, 0)
	for rows.Next() {
		var b domain.CustomerBan
		if err := rows.Scan(&b.TenantID, &b.Email, &b.Reason, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		bans = append(bans, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return bans, nil
}
