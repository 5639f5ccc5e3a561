package ban

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO customer_bans`).
		WithArgs("salon-1", "ann@example.com", nil, "admin@example.com").
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), &domain.CustomerBan{
		TenantID:  "salon-1",
		Email:     " Ann@Example.com",
		CreatedBy: "admin@example.com",
	})

	assert.ErrorIs(t, err, ErrBanExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IsBanned_NormalizesEmail(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT 1 FROM customer_bans WHERE email = \$1 AND tenant_id = \$2`).
		WithArgs("ann@example.com", "salon-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	banned, err := repo.IsBanned(context.Background(), "salon-1", "ANN@example.com")

	require.NoError(t, err)
	assert.True(t, banned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM customer_bans`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "salon-1", "ann@example.com")

	assert.ErrorIs(t, err, ErrBanNotFound)
}
