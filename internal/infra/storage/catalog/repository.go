package catalog

import (
	"database/sql"
	"fmt"
)

// Repository репозиторий справочников салона: услуги, мастера, расписания и отсутствия
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// checkAffected превращает 0 затронутых строк в notFound
func checkAffected(result sql.Result, op string, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
