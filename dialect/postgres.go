package dialect

import (
	"fmt"

	"github.com/syssam/loom/schema/field"
)

// postgres implements Dialect for PostgreSQL.
//
// Identity columns are backed by sequences, so lastval() reports the
// generated id and is scoped to the session.
type postgres struct{}

var postgresTypes = map[field.Type]string{
	field.TypeInt:     "BIGINT",
	field.TypeString:  "TEXT",
	field.TypeTime:    "TIMESTAMPTZ",
	field.TypeBool:    "BOOLEAN",
	field.TypeFloat:   "DOUBLE PRECISION",
	field.TypeDecimal: "NUMERIC(18,6)",
}

func (postgres) Name() string { return Postgres }

func (postgres) MapType(t field.Type) (string, error) {
	return mapType(Postgres, postgresTypes, t)
}

func (postgres) PrimaryKey() string    { return "PRIMARY KEY" }
func (postgres) AutoIncrement() string { return "GENERATED BY DEFAULT AS IDENTITY" }
func (postgres) Unique() string        { return "UNIQUE" }
func (postgres) NotNull() string       { return "NOT NULL" }

func (postgres) Placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}

func (postgres) LastInsertIDQuery(string) string {
	return "SELECT lastval();"
}
