// Package schema provides model declaration and metadata resolution for Loom.
//
// A model is declared once with the field builders and registered with a
// Registry, which builds and caches an immutable Model descriptor:
//
//	def := schema.New("User",
//	    field.Int("id").PrimaryKey().AutoIncrement(),
//	    field.String("name").Required().Unique(),
//	    field.String("email").Required(),
//	)
//	model, err := registry.Register(def)
//
// The table name may be set explicitly with Definition.Table; otherwise it
// is inferred from the model name (snake_case, pluralized): "UserProfile"
// becomes "user_profiles".
package schema

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/syssam/loom/schema/field"
)

// A Definition is a model declaration before registration. It carries the
// column builders and the optional table-level options.
type Definition struct {
	name   string
	table  string
	fields []*field.Builder
	key    []string
}

// New returns a new model definition with the given name and columns.
func New(name string, fields ...*field.Builder) *Definition {
	return &Definition{name: name, fields: fields}
}

// Table sets the table name explicitly, overriding inference.
func (d *Definition) Table(name string) *Definition {
	d.table = name
	return d
}

// Key declares a table-level composite primary key over the named columns.
// A model declares either a composite key or a single-column primary key,
// never both; registration rejects conflicting declarations.
func (d *Definition) Key(columns ...string) *Definition {
	d.key = columns
	return d
}

// A Model is the immutable, cached descriptor of a registered model.
// It is built once per definition and is read-only afterwards.
type Model struct {
	name    string
	table   string
	columns []*field.Descriptor
	key     []string
	autoPK  string // name of the auto-increment primary-key column, if any.
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Table returns the resolved table name.
func (m *Model) Table() string { return m.table }

// Columns returns the ordered column descriptors. The returned slice is
// shared and must be treated as read-only.
func (m *Model) Columns() []*field.Descriptor { return m.columns }

// CompositeKey returns the composite-key column names, or nil if the
// model declares none.
func (m *Model) CompositeKey() []string { return m.key }

// Column returns the descriptor of the named column.
func (m *Model) Column(name string) (*field.Descriptor, bool) {
	for _, c := range m.columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// AutoIncrementColumn returns the name of the auto-increment primary-key
// column, or "" if the model declares none.
func (m *Model) AutoIncrementColumn() string { return m.autoPK }

// A SchemaError reports a defect in a model declaration, detected at
// registration time rather than surfaced as an opaque store failure.
type SchemaError struct {
	Model string
	Msg   string
}

// Error returns the error string.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: model %s: %s", e.Model, e.Msg)
}

// A MissingTableNameError reports that a model has neither an explicit
// table name nor metadata to infer one from.
type MissingTableNameError struct {
	Model string
}

// Error returns the error string.
func (e *MissingTableNameError) Error() string {
	return fmt.Sprintf("schema: model %q: no table name given or inferable", e.Model)
}

// build resolves the definition into an immutable Model. It validates the
// declaration and resolves the table name; it never touches the store.
func (d *Definition) build() (*Model, error) {
	if d.name == "" && d.table == "" {
		return nil, &MissingTableNameError{Model: d.name}
	}
	m := &Model{
		name:    d.name,
		table:   d.table,
		columns: make([]*field.Descriptor, 0, len(d.fields)),
		key:     d.key,
	}
	if m.table == "" {
		m.table = TableName(d.name)
	}
	seen := make(map[string]struct{}, len(d.fields))
	for _, fb := range d.fields {
		c := fb.Descriptor()
		if c.Err != nil {
			return nil, c.Err
		}
		if c.Name == "" {
			return nil, &SchemaError{Model: d.name, Msg: "column with empty name"}
		}
		if _, ok := seen[c.Name]; ok {
			return nil, &SchemaError{Model: d.name, Msg: fmt.Sprintf("duplicate column %q", c.Name)}
		}
		seen[c.Name] = struct{}{}
		if !c.Type.Valid() {
			return nil, &SchemaError{Model: d.name, Msg: fmt.Sprintf("column %q has invalid type", c.Name)}
		}
		if c.AutoIncrement && !c.PrimaryKey {
			return nil, &SchemaError{Model: d.name, Msg: fmt.Sprintf("column %q: auto-increment without primary key", c.Name)}
		}
		if c.PrimaryKey && len(d.key) > 0 {
			return nil, &SchemaError{Model: d.name, Msg: fmt.Sprintf("column %q: primary key conflicts with composite key", c.Name)}
		}
		if c.PrimaryKey && c.AutoIncrement {
			m.autoPK = c.Name
		}
		m.columns = append(m.columns, c)
	}
	for _, k := range d.key {
		if _, ok := seen[k]; !ok {
			return nil, &SchemaError{Model: d.name, Msg: fmt.Sprintf("composite key references unknown column %q", k)}
		}
	}
	return m, nil
}

// TableName infers a table name from a model name: snake_case, pluralized.
func TableName(model string) string {
	return inflect.Pluralize(inflect.Underscore(model))
}
