package loom

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/loom/dialect"
	dsql "github.com/syssam/loom/dialect/sql"
	"github.com/syssam/loom/schema"
)

// Insert builds and executes a parameterized INSERT for the entity,
// excluding the auto-increment primary-key column, and returns the
// store-generated identifier. When the model declares no auto-increment
// column the returned id is 0.
//
// The insert and the dialect's last-insert-id query must observe the same
// connection-scoped state, so the pair is pinned to a single connection.
func (c *Client) Insert(ctx context.Context, m *schema.Model, e Entity) (int64, error) {
	if err := c.init(); err != nil {
		return 0, err
	}
	conn, release, err := c.pinConn(ctx)
	if err != nil {
		return 0, &StoreError{Op: "insert " + m.Table(), Err: err}
	}
	if release != nil {
		defer release()
	}
	return insertOn(ctx, conn, c.dialect, m, e)
}

// Update builds and executes a parameterized UPDATE setting every column
// except idColumn, keyed on idColumn. A non-matching identifier is not an
// error: the row count is returned and zero means no row was touched.
func (c *Client) Update(ctx context.Context, m *schema.Model, idColumn string, e Entity) (int64, error) {
	if err := c.init(); err != nil {
		return 0, err
	}
	return updateOn(ctx, c.driver, c.dialect, m, idColumn, e)
}

// Delete removes the row whose idColumn equals idValue. Like Update, a
// non-matching identifier completes successfully with zero rows affected.
func (c *Client) Delete(ctx context.Context, m *schema.Model, idColumn string, idValue any) (int64, error) {
	if err := c.init(); err != nil {
		return 0, err
	}
	return deleteOn(ctx, c.driver, c.dialect, m, idColumn, idValue)
}

func insertOn(ctx context.Context, conn dialect.ExecQuerier, d dialect.Dialect, m *schema.Model, e Entity) (int64, error) {
	var (
		cols []string
		ph   []string
		args []any
	)
	for _, col := range m.Columns() {
		if col.PrimaryKey && col.AutoIncrement {
			continue
		}
		cols = append(cols, col.Name)
		ph = append(ph, d.Placeholder(len(cols)))
		args = append(args, e[col.Name])
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", m.Table(), strings.Join(cols, ", "), strings.Join(ph, ", "))
	if err := conn.Exec(ctx, query, args, nil); err != nil {
		return 0, &StoreError{Op: "insert " + m.Table(), Err: err}
	}
	if m.AutoIncrementColumn() == "" {
		return 0, nil
	}
	rows := &dsql.Rows{}
	if err := conn.Query(ctx, d.LastInsertIDQuery(m.Table()), []any{}, rows); err != nil {
		return 0, &StoreError{Op: "last insert id " + m.Table(), Err: err}
	}
	defer rows.Close()
	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return 0, &StoreError{Op: "last insert id " + m.Table(), Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return 0, &StoreError{Op: "last insert id " + m.Table(), Err: err}
	}
	return id, nil
}

func updateOn(ctx context.Context, conn dialect.ExecQuerier, d dialect.Dialect, m *schema.Model, idColumn string, e Entity) (int64, error) {
	var (
		sets []string
		args []any
	)
	for _, col := range m.Columns() {
		if col.Name == idColumn {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = %s", col.Name, d.Placeholder(len(sets)+1)))
		args = append(args, e[col.Name])
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s", m.Table(), strings.Join(sets, ", "), idColumn, d.Placeholder(len(sets)+1))
	args = append(args, e[idColumn])
	var res sql.Result
	if err := conn.Exec(ctx, query, args, &res); err != nil {
		return 0, &StoreError{Op: "update " + m.Table(), Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StoreError{Op: "update " + m.Table(), Err: err}
	}
	return n, nil
}

func deleteOn(ctx context.Context, conn dialect.ExecQuerier, d dialect.Dialect, m *schema.Model, idColumn string, idValue any) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s", m.Table(), idColumn, d.Placeholder(1))
	var res sql.Result
	if err := conn.Exec(ctx, query, []any{idValue}, &res); err != nil {
		return 0, &StoreError{Op: "delete " + m.Table(), Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StoreError{Op: "delete " + m.Table(), Err: err}
	}
	return n, nil
}
