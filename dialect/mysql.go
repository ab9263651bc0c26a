package dialect

import "github.com/syssam/loom/schema/field"

// mysql implements Dialect for MySQL.
//
// LAST_INSERT_ID() is scoped to the connection.
type mysql struct{}

var mysqlTypes = map[field.Type]string{
	field.TypeInt:     "BIGINT",
	field.TypeString:  "VARCHAR(255)",
	field.TypeTime:    "DATETIME",
	field.TypeBool:    "TINYINT(1)",
	field.TypeFloat:   "DOUBLE",
	field.TypeDecimal: "DECIMAL(18,6)",
}

func (mysql) Name() string { return MySQL }

func (mysql) MapType(t field.Type) (string, error) {
	return mapType(MySQL, mysqlTypes, t)
}

func (mysql) PrimaryKey() string    { return "PRIMARY KEY" }
func (mysql) AutoIncrement() string { return "AUTO_INCREMENT" }
func (mysql) Unique() string        { return "UNIQUE" }
func (mysql) NotNull() string       { return "NOT NULL" }

func (mysql) Placeholder(int) string { return "?" }

func (mysql) LastInsertIDQuery(string) string {
	return "SELECT LAST_INSERT_ID();"
}
