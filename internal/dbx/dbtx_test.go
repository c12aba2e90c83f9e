package dbx

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, func(fn func(ctx context.Context, tx DBTX) error) error) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return mock, func(fn func(ctx context.Context, tx DBTX) error) error {
		return WithTx(context.Background(), db, nil, fn)
	}
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	mock, run := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM metadata").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := run(func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM metadata")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	mock, run := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := run(func(ctx context.Context, tx DBTX) error { return boom })
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	mock, run := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	require.PanicsWithValue(t, "kaput", func() {
		_ = run(func(ctx context.Context, tx DBTX) error { panic("kaput") })
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginError(t *testing.T) {
	mock, run := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	called := false
	err := run(func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "database is locked")
	require.False(t, called)
}

func TestWithTx_CommitError(t *testing.T) {
	mock, run := newMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := run(func(ctx context.Context, tx DBTX) error { return nil })
	require.ErrorContains(t, err, "disk full")
}
