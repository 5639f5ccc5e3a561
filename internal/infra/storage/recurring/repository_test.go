package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestRepository_CreateInstances_AssignsIDsInOrder(t *testing.T) {
	repo, mock := newRepo(t)
	base := time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC)
	now := time.Now()

	instances := []*domain.RecurringInstance{
		{TenantID: "salon-1", SeriesID: 4, ScheduledAt: base, Status: domain.InstanceScheduled},
		{TenantID: "salon-1", SeriesID: 4, ScheduledAt: base.AddDate(0, 0, 7), Status: domain.InstanceScheduled},
	}

	mock.ExpectQuery(`INSERT INTO recurring_instances \(tenant_id,series_id,scheduled_at,status\) VALUES \(\$1,\$2,\$3,\$4\),\(\$5,\$6,\$7,\$8\) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(10), now, now).
			AddRow(int64(11), now, now))

	require.NoError(t, repo.CreateInstances(context.Background(), instances))

	assert.Equal(t, int64(10), instances[0].ID)
	assert.Equal(t, int64(11), instances[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateInstances_Empty(t *testing.T) {
	repo, mock := newRepo(t)

	require.NoError(t, repo.CreateInstances(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetInstance_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM recurring_instances WHERE`).WillReturnRows(sqlmock.NewRows(instanceColumns))

	_, err := repo.GetInstance(context.Background(), "salon-1", 99)

	assert.ErrorIs(t, err, ErrInstanceNotFound)
}

func TestRepository_UpdateSeriesStatus(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE recurring_series SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND tenant_id = \$3`).
		WithArgs(domain.SeriesPaused, int64(4), "salon-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateSeriesStatus(context.Background(), "salon-1", 4, domain.SeriesPaused))
	assert.NoError(t, mock.ExpectationsWereMet())
}
