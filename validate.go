package loom

import (
	"context"
	"fmt"
	"strings"

	"github.com/syssam/loom/dialect"
	dsql "github.com/syssam/loom/dialect/sql"
	"github.com/syssam/loom/schema"
	"github.com/syssam/loom/schema/field"
)

// Validate re-walks the model's metadata against the entity and enforces
// its constraints before a write. The composite-key check runs first,
// then required and unique checks per column in declaration order; the
// first violation is returned (fail-fast).
//
// Unique and composite-key checks count matching rows in committed state.
// Under concurrency they are an early-rejection optimization only; the
// synthesized store-level constraints remain authoritative.
func (c *Client) Validate(ctx context.Context, m *schema.Model, e Entity) error {
	if err := c.init(); err != nil {
		return err
	}
	if key := m.CompositeKey(); len(key) > 0 {
		vals := make([]any, len(key))
		for i, k := range key {
			vals[i] = e[k]
		}
		n, err := c.count(ctx, m.Table(), key, vals)
		if err != nil {
			return err
		}
		if n > 0 {
			return &CompositeKeyError{Columns: key}
		}
	}
	for _, col := range m.Columns() {
		if col.Required && emptyValue(col, e) {
			return &RequiredError{Column: col.Name}
		}
		if col.Unique {
			v, ok := e[col.Name]
			if !ok || v == nil {
				continue
			}
			n, err := c.count(ctx, m.Table(), []string{col.Name}, []any{v})
			if err != nil {
				return err
			}
			if n > 0 {
				return &UniqueError{Column: col.Name}
			}
		}
	}
	return nil
}

// emptyValue reports whether the entity's value for the column counts as
// missing: null for any type, empty or whitespace-only for text columns.
func emptyValue(col *field.Descriptor, e Entity) bool {
	v, ok := e[col.Name]
	if !ok || v == nil {
		return true
	}
	if col.Type == field.TypeString {
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return true
		}
	}
	return false
}

// count returns the number of rows in table where every named column
// equals its value, conjunctively.
func (c *Client) count(ctx context.Context, table string, columns []string, values []any) (int64, error) {
	return countOn(ctx, c.driver, c.dialect, table, columns, values)
}

func countOn(ctx context.Context, conn dialect.ExecQuerier, d dialect.Dialect, table string, columns []string, values []any) (int64, error) {
	conds := make([]string, len(columns))
	for i, col := range columns {
		conds[i] = fmt.Sprintf("%s = %s", col, d.Placeholder(i+1))
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, strings.Join(conds, " AND "))
	rows := &dsql.Rows{}
	if err := conn.Query(ctx, query, values, rows); err != nil {
		return 0, &StoreError{Op: "count " + table, Err: err}
	}
	defer rows.Close()
	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, &StoreError{Op: "count " + table, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return 0, &StoreError{Op: "count " + table, Err: err}
	}
	return n, nil
}
