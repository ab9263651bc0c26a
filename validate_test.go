package loom_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/loom"
	"github.com/syssam/loom/dialect"
)

func TestValidateRequired(t *testing.T) {
	ctx := context.Background()
	c, mock := newMockClient(t, dialect.SQLite)
	user := userModel(t, c)

	tests := []struct {
		name   string
		entity loom.Entity
		column string
	}{
		{"missing_key", loom.Entity{"email": "alice@example.com"}, "name"},
		{"nil_value", loom.Entity{"name": nil, "email": "alice@example.com"}, "name"},
		{"empty_string", loom.Entity{"name": "", "email": "alice@example.com"}, "name"},
		{"whitespace_only", loom.Entity{"name": "   \t", "email": "alice@example.com"}, "name"},
		{"second_column", loom.Entity{"name": "Alice"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.column != "name" {
				// The name unique pre-check runs before email is reached.
				mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE name = ?")).
					WithArgs("Alice").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			}
			err := c.Validate(ctx, user, tt.entity)
			require.Error(t, err)
			assert.True(t, loom.IsRequired(err))
			assert.True(t, loom.IsValidation(err))
			assert.Contains(t, err.Error(), tt.column)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestValidateUnique(t *testing.T) {
	ctx := context.Background()
	c, mock := newMockClient(t, dialect.SQLite)
	user := userModel(t, c)
	entity := loom.Entity{"name": "Alice", "email": "alice@example.com"}

	t.Run("violation", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE name = ?")).
			WithArgs("Alice").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := c.Validate(ctx, user, entity)
		require.Error(t, err)
		assert.True(t, loom.IsUnique(err))
		assert.True(t, loom.IsValidation(err))
		assert.Contains(t, err.Error(), "name")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ok", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE name = ?")).
			WithArgs("Alice").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		require.NoError(t, c.Validate(ctx, user, entity))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestValidateCompositeKey verifies the composite-key check runs first,
// conjunctively over all key columns, before any per-column check.
func TestValidateCompositeKey(t *testing.T) {
	ctx := context.Background()
	c, mock := newMockClient(t, dialect.SQLite)
	grant := grantModel(t, c)

	t.Run("violation_before_required", func(t *testing.T) {
		// subject is empty, but the composite check fires first.
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM grants WHERE subject = ? AND resource = ?")).
			WithArgs("", "db1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := c.Validate(ctx, grant, loom.Entity{"subject": "", "resource": "db1"})
		require.Error(t, err)
		assert.True(t, loom.IsCompositeKey(err))
		assert.Contains(t, err.Error(), "subject")
		assert.Contains(t, err.Error(), "resource")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ok", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM grants WHERE subject = ? AND resource = ?")).
			WithArgs("alice", "db1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := c.Validate(ctx, grant, loom.Entity{"subject": "alice", "resource": "db1"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestValidateFailFast verifies validation stops at the first failure
// without touching the store when no pre-check is needed.
func TestValidateFailFast(t *testing.T) {
	ctx := context.Background()
	c, mock := newMockClient(t, dialect.SQLite)
	user := userModel(t, c)

	err := c.Validate(ctx, user, loom.Entity{})
	require.Error(t, err)
	assert.True(t, loom.IsRequired(err))
	assert.Contains(t, err.Error(), "name")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidatePlaceholderStyle(t *testing.T) {
	ctx := context.Background()
	c, mock := newMockClient(t, dialect.Postgres)
	user := userModel(t, c)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE name = $1")).
		WithArgs("Alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	require.NoError(t, c.Validate(ctx, user, loom.Entity{"name": "Alice", "email": "alice@example.com"}))
	require.NoError(t, mock.ExpectationsWereMet())
}
