package dialect

import "github.com/syssam/loom/schema/field"

// mariadb implements Dialect for MariaDB.
//
// The syntax is MySQL-compatible, with native BOOLEAN and microsecond
// timestamp columns.
type mariadb struct{}

var mariadbTypes = map[field.Type]string{
	field.TypeInt:     "BIGINT",
	field.TypeString:  "VARCHAR(255)",
	field.TypeTime:    "DATETIME(6)",
	field.TypeBool:    "BOOLEAN",
	field.TypeFloat:   "DOUBLE",
	field.TypeDecimal: "DECIMAL(18,6)",
}

func (mariadb) Name() string { return MariaDB }

func (mariadb) MapType(t field.Type) (string, error) {
	return mapType(MariaDB, mariadbTypes, t)
}

func (mariadb) PrimaryKey() string    { return "PRIMARY KEY" }
func (mariadb) AutoIncrement() string { return "AUTO_INCREMENT" }
func (mariadb) Unique() string        { return "UNIQUE" }
func (mariadb) NotNull() string       { return "NOT NULL" }

func (mariadb) Placeholder(int) string { return "?" }

func (mariadb) LastInsertIDQuery(string) string {
	return "SELECT LAST_INSERT_ID();"
}
