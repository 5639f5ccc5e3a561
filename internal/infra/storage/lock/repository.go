package lock

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
)

const staffLockQuery = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"

// Repository выдает транзакционные advisory-блокировки PostgreSQL
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// StaffLockKey ключ блокировки календаря мастера
func StaffLockKey(tenantID string, staffID int64) string {
	return fmt.Sprintf("staff:%s:%d", tenantID, staffID)
}

// LockStaff блокирует календарь мастера до конца текущей транзакции
// Сериализует проверку пересечений между процессами
func (r *Repository) LockStaff(ctx context.Context, tenantID string, staffID int64) error {
	tx, ok := dbmetrics.GetTx(ctx)
	if !ok {
		return ErrNoTransaction
	}

	if _, err := tx.ExecContext(ctx, staffLockQuery, StaffLockKey(tenantID, staffID)); err != nil {
		return fmt.Errorf("%w: LockStaff - execute: %w", ErrExecQuery, err)
	}

	return nil
}
