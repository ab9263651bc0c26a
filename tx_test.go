package loom_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/loom"
	"github.com/syssam/loom/dialect"
)

func TestRunInTxCommit(t *testing.T) {
	ctx := context.Background()
	c, mock := newMockClient(t, dialect.SQLite)
	user := userModel(t, c)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (name, email) VALUES (?, ?)")).
		WithArgs("Alice", "alice@example.com").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT last_insert_rowid();")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET name = ?, email = ? WHERE id = ?")).
		WithArgs("Alice B.", "alice@example.com", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := c.RunInTx(ctx, func(tx *loom.Tx) error {
		id, err := tx.Insert(ctx, user, loom.Entity{"name": "Alice", "email": "alice@example.com"})
		if err != nil {
			return err
		}
		_, err = tx.Update(ctx, user, "id", loom.Entity{"id": id, "name": "Alice B.", "email": "alice@example.com"})
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestRunInTxRollback verifies a failing unit of work rolls back and
// re-signals the original error unchanged.
func TestRunInTxRollback(t *testing.T) {
	ctx := context.Background()
	c, mock := newMockClient(t, dialect.SQLite)
	user := userModel(t, c)
	boom := errors.New("NOT NULL constraint failed: users.email")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (name, email) VALUES (?, ?)")).
		WithArgs("Alice", "alice@example.com").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT last_insert_rowid();")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (name, email) VALUES (?, ?)")).
		WithArgs("Bob", nil).
		WillReturnError(boom)
	mock.ExpectRollback()

	err := c.RunInTx(ctx, func(tx *loom.Tx) error {
		if _, err := tx.Insert(ctx, user, loom.Entity{"name": "Alice", "email": "alice@example.com"}); err != nil {
			return err
		}
		_, err := tx.Insert(ctx, user, loom.Entity{"name": "Bob"})
		return err
	})
	require.Error(t, err)
	assert.True(t, loom.IsStoreError(err))
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTxPanic(t *testing.T) {
	ctx := context.Background()
	c, mock := newMockClient(t, dialect.SQLite)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = c.RunInTx(ctx, func(*loom.Tx) error { panic("boom") })
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTxRollbackFailure(t *testing.T) {
	ctx := context.Background()
	c, mock := newMockClient(t, dialect.SQLite)
	boom := errors.New("work failed")
	rberr := errors.New("connection gone")

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(rberr)

	err := c.RunInTx(ctx, func(*loom.Tx) error { return boom })
	require.Error(t, err)
	var re *loom.RollbackError
	require.True(t, errors.As(err, &re))
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, rberr)
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestTxManual drives a transaction through the manual handle.
func TestTxManual(t *testing.T) {
	ctx := context.Background()
	c, mock := newMockClient(t, dialect.SQLite)
	user := userModel(t, c)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, name FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectCommit()

	tx, err := c.Tx(ctx)
	require.NoError(t, err)
	n, err := tx.Delete(ctx, user, "id", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	rows, err := tx.Query(ctx, "SELECT id, name FROM users")
	require.NoError(t, err)
	require.NoError(t, rows.Close())
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
