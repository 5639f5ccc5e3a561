package lock

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
)

func TestRepository_LockStaff_RequiresTransaction(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewRepository(db).LockStaff(context.Background(), "salon-1", 7)

	assert.ErrorIs(t, err, ErrNoTransaction)
}

func TestRepository_LockStaff(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(staffLockQuery)).
		WithArgs("staff:salon-1:7").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, NewRepository(wrapped).LockStaff(dbmetrics.WithTx(context.Background(), tx), "salon-1", 7))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
