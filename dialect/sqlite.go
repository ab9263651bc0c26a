package dialect

import "github.com/syssam/loom/schema/field"

// sqlite implements Dialect for SQLite.
//
// SQLite requires the exact column definition "INTEGER PRIMARY KEY
// AUTOINCREMENT" for store-generated identities, which the int mapping
// and fragment order below produce. last_insert_rowid() is scoped to
// the connection.
type sqlite struct{}

var sqliteTypes = map[field.Type]string{
	field.TypeInt:     "INTEGER",
	field.TypeString:  "TEXT",
	field.TypeTime:    "DATETIME",
	field.TypeBool:    "INTEGER",
	field.TypeFloat:   "REAL",
	field.TypeDecimal: "NUMERIC",
}

func (sqlite) Name() string { return SQLite }

func (sqlite) MapType(t field.Type) (string, error) {
	return mapType(SQLite, sqliteTypes, t)
}

func (sqlite) PrimaryKey() string    { return "PRIMARY KEY" }
func (sqlite) AutoIncrement() string { return "AUTOINCREMENT" }
func (sqlite) Unique() string        { return "UNIQUE" }
func (sqlite) NotNull() string       { return "NOT NULL" }

func (sqlite) Placeholder(int) string { return "?" }

func (sqlite) LastInsertIDQuery(string) string {
	return "SELECT last_insert_rowid();"
}
