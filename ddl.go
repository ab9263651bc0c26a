package loom

import (
	"context"
	"fmt"
	"strings"

	"github.com/syssam/loom/dialect"
	"github.com/syssam/loom/schema"
)

// CreateTable synthesizes the model's "create table if missing" statement
// for the client's dialect and executes it against the store. Synthesis
// is idempotent: running it against an existing table neither errors nor
// alters the table's structure or data.
func (c *Client) CreateTable(ctx context.Context, m *schema.Model) error {
	if err := c.init(); err != nil {
		return err
	}
	ddl, err := createTableSQL(m, c.dialect)
	if err != nil {
		return err
	}
	if err := c.driver.Exec(ctx, ddl, []any{}, nil); err != nil {
		return &StoreError{Op: "create table " + m.Table(), Err: err}
	}
	return nil
}

// createTableSQL builds the CREATE TABLE IF NOT EXISTS statement for the
// model. Column clauses come first, in declaration order, followed by one
// foreign-key clause per referencing column, followed by the composite-key
// clause if the model declares one.
func createTableSQL(m *schema.Model, d dialect.Dialect) (string, error) {
	if m.Table() == "" {
		return "", &schema.MissingTableNameError{Model: m.Name()}
	}
	clauses := make([]string, 0, len(m.Columns())+1)
	var fks []string
	for _, col := range m.Columns() {
		typ, err := d.MapType(col.Type)
		if err != nil {
			return "", err
		}
		parts := []string{col.Name, typ}
		if col.PrimaryKey {
			parts = append(parts, d.PrimaryKey())
			if col.AutoIncrement {
				parts = append(parts, d.AutoIncrement())
			}
		}
		if col.Unique {
			parts = append(parts, d.Unique())
		}
		if col.Required {
			parts = append(parts, d.NotNull())
		}
		clauses = append(clauses, strings.Join(parts, " "))
		if fk := col.ForeignKey; fk != nil {
			clause := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)", col.Name, fk.Table, fk.Column)
			if fk.OnDelete != "" {
				clause += " ON DELETE " + string(fk.OnDelete)
			}
			if fk.OnUpdate != "" {
				clause += " ON UPDATE " + string(fk.OnUpdate)
			}
			fks = append(fks, clause)
		}
	}
	clauses = append(clauses, fks...)
	if key := m.CompositeKey(); len(key) > 0 {
		clauses = append(clauses, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(key, ", ")))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s);", m.Table(), strings.Join(clauses, ", ")), nil
}
