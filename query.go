package loom

import (
	"context"
	"database/sql"

	"github.com/syssam/loom/dialect"
	dsql "github.com/syssam/loom/dialect/sql"
)

// A Cell is one (column, value) pair of a result row.
type Cell struct {
	Column string
	Value  any
}

// A Row is an ordered sequence of cells, one per result column. It keeps
// per-cell type information without requiring static knowledge of the
// result shape.
type Row []Cell

// Get returns the value of the named column.
func (r Row) Get(column string) (any, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return nil, false
}

// Rows is a lazy, finite, one-shot cursor over a query's results. It is
// not restartable; re-querying requires re-invoking the operation. The
// caller must Close it unless it is drained through ScanAs or FirstAs.
type Rows struct {
	scanner dsql.ColumnScanner
	columns []string
}

// Next advances to the next row.
func (r *Rows) Next() bool { return r.scanner.Next() }

// Scan scans the current row into dest, like database/sql.Rows.Scan.
func (r *Rows) Scan(dest ...any) error { return r.scanner.Scan(dest...) }

// Columns returns the result column names.
func (r *Rows) Columns() []string { return r.columns }

// Err returns the error, if any, encountered during iteration.
func (r *Rows) Err() error { return r.scanner.Err() }

// Close closes the cursor.
func (r *Rows) Close() error { return r.scanner.Close() }

// Row scans the current row into a tagged Row.
func (r *Rows) Row() (Row, error) {
	values := make([]any, len(r.columns))
	ptrs := make([]any, len(r.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := r.scanner.Scan(ptrs...); err != nil {
		return nil, err
	}
	row := make(Row, len(r.columns))
	for i, col := range r.columns {
		row[i] = Cell{Column: col, Value: values[i]}
	}
	return row, nil
}

// Query executes caller-supplied SQL with bound parameters and returns a
// lazy cursor over the results.
func (c *Client) Query(ctx context.Context, query string, args ...any) (*Rows, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return queryOn(ctx, c.driver, query, args)
}

// Exec executes caller-supplied SQL that returns no rows and reports the
// number of rows affected.
func (c *Client) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if err := c.init(); err != nil {
		return 0, err
	}
	return execOn(ctx, c.driver, query, args)
}

func queryOn(ctx context.Context, conn dialect.ExecQuerier, query string, args []any) (*Rows, error) {
	rows := &dsql.Rows{}
	if err := conn.Query(ctx, query, args, rows); err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, &StoreError{Op: "query", Err: err}
	}
	return &Rows{scanner: rows, columns: columns}, nil
}

func execOn(ctx context.Context, conn dialect.ExecQuerier, query string, args []any) (int64, error) {
	var res sql.Result
	if err := conn.Exec(ctx, query, args, &res); err != nil {
		return 0, &StoreError{Op: "exec", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StoreError{Op: "exec", Err: err}
	}
	return n, nil
}

// ScanAs drains the cursor into a typed slice, scanning each row with
// the given function, and closes it.
func ScanAs[T any](rows *Rows, scan func(*Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "scan", Err: err}
	}
	return out, nil
}

// FirstAs scans the first row of the cursor and closes it. The second
// return value reports whether a row was present.
func FirstAs[T any](rows *Rows, scan func(*Rows) (T, error)) (T, bool, error) {
	defer rows.Close()
	var zero T
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, false, &StoreError{Op: "scan", Err: err}
		}
		return zero, false, nil
	}
	v, err := scan(rows)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Collect drains the cursor into tagged rows and closes it.
func Collect(rows *Rows) ([]Row, error) {
	return ScanAs(rows, func(r *Rows) (Row, error) { return r.Row() })
}
