package dialect

import (
	"fmt"

	"github.com/syssam/loom/schema/field"
)

// sqlserver implements Dialect for Microsoft SQL Server.
//
// The id fetch runs as its own batch after the INSERT, which puts it in
// a new T-SQL scope; SCOPE_IDENTITY() would return NULL there. @@IDENTITY
// is session-scoped, so it survives the batch boundary and stays isolated
// from other connections on the pinned connection.
type sqlserver struct{}

var sqlserverTypes = map[field.Type]string{
	field.TypeInt:     "BIGINT",
	field.TypeString:  "NVARCHAR(255)",
	field.TypeTime:    "DATETIME2",
	field.TypeBool:    "BIT",
	field.TypeFloat:   "FLOAT",
	field.TypeDecimal: "DECIMAL(18,6)",
}

func (sqlserver) Name() string { return SQLServer }

func (sqlserver) MapType(t field.Type) (string, error) {
	return mapType(SQLServer, sqlserverTypes, t)
}

func (sqlserver) PrimaryKey() string    { return "PRIMARY KEY" }
func (sqlserver) AutoIncrement() string { return "IDENTITY(1,1)" }
func (sqlserver) Unique() string        { return "UNIQUE" }
func (sqlserver) NotNull() string       { return "NOT NULL" }

func (sqlserver) Placeholder(i int) string {
	return fmt.Sprintf("@p%d", i)
}

func (sqlserver) LastInsertIDQuery(string) string {
	return "SELECT @@IDENTITY;"
}
