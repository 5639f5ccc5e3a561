package catalog

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

func TestRepository_GetService_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM services WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetService(context.Background(), "salon-1", 9)

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListSchedules(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM schedules WHERE .* ORDER BY weekday ASC, start_min ASC`).
		WillReturnRows(sqlmock.NewRows(scheduleColumns).
			AddRow(int64(1), "salon-1", int64(7), 0, 540, 720).
			AddRow(int64(2), "salon-1", int64(7), 0, 780, 1020))

	list, err := repo.ListSchedules(context.Background(), "salon-1", 7, 0)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 540, list[0].StartMin)
	assert.Equal(t, 1020, list[1].EndMin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasTimeOff_PassesDateAsString(t *testing.T) {
	repo, mock := newRepo(t)
	date := time.Date(2026, 10, 12, 0, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))

	mock.ExpectQuery(`SELECT 1 FROM time_off WHERE .* LIMIT 1`).
		WithArgs(int64(7), "salon-1", "2026-10-12", "2026-10-12").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	ok, err := repo.HasTimeOff(context.Background(), "salon-1", 7, date)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasTimeOff_None(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT 1 FROM time_off`).WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	ok, err := repo.HasTimeOff(context.Background(), "salon-1", 7, time.Now())

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_DeleteSchedule_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM schedules WHERE`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteSchedule(context.Background(), "salon-1", 3)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestRepository_CreateStaff(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO staff \(tenant_id,name,active\) VALUES \(\$1,\$2,\$3\) RETURNING id, created_at, updated_at`).
		WithArgs("salon-1", "Maria", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	staff, err := repo.CreateStaff(context.Background(), &domain.StaffMember{TenantID: "salon-1", Name: "Maria", Active: true})

	require.NoError(t, err)
	assert.Equal(t, int64(5), staff.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
