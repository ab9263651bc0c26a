// Package dialect provides database dialect abstraction for Loom.
//
// It defines two boundaries. The Driver/Tx/ExecQuerier interfaces form the
// store boundary: statement execution and transaction control over an open
// connection. The Dialect interface is the syntax boundary: a stateless
// strategy translating column metadata into one target store's SQL.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.SQLite    = "sqlite"
//	dialect.MySQL     = "mysql"
//	dialect.MariaDB   = "mariadb"
//	dialect.Postgres  = "postgres"
//	dialect.SQLServer = "sqlserver"
//
// A Dialect is selected explicitly at initialization:
//
//	d, err := dialect.New(dialect.Postgres)
//
// There is no runtime dialect auto-detection.
package dialect

import (
	"context"
	"fmt"

	"github.com/syssam/loom/schema/field"
)

// Dialect names.
const (
	SQLite    = "sqlite"
	MySQL     = "mysql"
	MariaDB   = "mariadb"
	Postgres  = "postgres"
	SQLServer = "sqlserver"
)

// ExecQuerier wraps the two base methods for executing statements
// against the store.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows. The args
	// parameter is expected to be a []any, and v an optional *sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows. The args parameter
	// is expected to be a []any, and v a *sql.Rows wrapper.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all database operations.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps transaction commit and rollback on top of statement execution.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}

// A Dialect translates column metadata into one target store's SQL syntax.
// Implementations are stateless values; the mapping from column type to
// SQL type is table-driven, pure and total over the field.Type set.
type Dialect interface {
	// Name returns the dialect name.
	Name() string
	// MapType returns the dialect's column type for the given primitive
	// type. It fails with *UnsupportedTypeError for any type outside the
	// supported set and never returns an empty string.
	MapType(t field.Type) (string, error)
	// PrimaryKey returns the single-column primary key fragment.
	PrimaryKey() string
	// AutoIncrement returns the store-generated identity fragment.
	AutoIncrement() string
	// Unique returns the unique constraint fragment.
	Unique() string
	// NotNull returns the not-null constraint fragment.
	NotNull() string
	// Placeholder returns the bound-parameter placeholder for the given
	// 1-based index.
	Placeholder(i int) string
	// LastInsertIDQuery returns the query fetching the identity generated
	// by the last insert into the given table. The mechanism must be
	// safe for concurrent callers on separate connections.
	LastInsertIDQuery(table string) string
}

// New returns the Dialect implementation for the named dialect.
func New(name string) (Dialect, error) {
	switch name {
	case SQLite:
		return sqlite{}, nil
	case MySQL:
		return mysql{}, nil
	case MariaDB:
		return mariadb{}, nil
	case Postgres:
		return postgres{}, nil
	case SQLServer:
		return sqlserver{}, nil
	default:
		return nil, fmt.Errorf("dialect: unknown dialect %q", name)
	}
}

// UnsupportedTypeError is returned by Dialect.MapType for a column type
// outside the dialect's mapping table.
type UnsupportedTypeError struct {
	Dialect string
	Type    field.Type
}

// Error returns the error string.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("dialect: %s: unsupported column type %q", e.Dialect, e.Type)
}

// mapType resolves t in the dialect's type table.
func mapType(dialect string, table map[field.Type]string, t field.Type) (string, error) {
	s, ok := table[t]
	if !ok {
		return "", &UnsupportedTypeError{Dialect: dialect, Type: t}
	}
	return s, nil
}
