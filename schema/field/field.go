// Package field provides fluent builders for declaring model columns in Loom.
//
// A column is declared once, at registration time, with its semantic type and
// role flags. No runtime reflection is involved; the builder is the single
// source of structural metadata:
//
//	field.Int("id").PrimaryKey().AutoIncrement()
//	field.String("email").Required().Unique()
//	field.Int("owner_id").References("users", "id").OnDelete(field.Cascade)
//
// # Column Types
//
// The supported primitive set is closed:
//
//	field.Int("count")        // integer
//	field.String("name")      // text
//	field.Time("created_at")  // timestamp
//	field.Bool("is_active")   // boolean
//	field.Float("score")      // floating-point
//	field.Decimal("amount")   // fixed-point decimal
//
// Each dialect maps these to its own column types; a type outside the set
// fails the mapping when schema is synthesized, never at declaration time.
package field

import "fmt"

// A Type represents a column's primitive semantic type.
type Type uint8

// List of all supported column types.
const (
	TypeInvalid Type = iota
	TypeInt
	TypeString
	TypeTime
	TypeBool
	TypeFloat
	TypeDecimal
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeInt:     "int",
	TypeString:  "string",
	TypeTime:    "time",
	TypeBool:    "bool",
	TypeFloat:   "float",
	TypeDecimal: "decimal",
}

// String returns the string representation of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid(%d)", t)
}

// Valid reports if the given type is a valid column type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// A ReferenceAction is a foreign-key action to take on delete or update
// of the referenced row.
type ReferenceAction string

// Reference actions.
const (
	NoAction   ReferenceAction = "NO ACTION"
	Restrict   ReferenceAction = "RESTRICT"
	Cascade    ReferenceAction = "CASCADE"
	SetNull    ReferenceAction = "SET NULL"
	SetDefault ReferenceAction = "SET DEFAULT"
)

// A ForeignKey describes a reference from a column to a column in
// another table, with optional on-delete/on-update actions.
type ForeignKey struct {
	Table    string
	Column   string
	OnDelete ReferenceAction
	OnUpdate ReferenceAction
}

// A Descriptor holds the metadata of a single column. Descriptors are
// produced by the builders in this package and are read-only afterwards.
type Descriptor struct {
	Name          string      // column name.
	Type          Type        // primitive semantic type.
	PrimaryKey    bool        // single-column primary key.
	AutoIncrement bool        // store-generated identity; meaningful only with PrimaryKey.
	Unique        bool        // unique constraint.
	Required      bool        // not-null constraint, enforced by validation too.
	ForeignKey    *ForeignKey // optional reference to another table.
	Err           error       // first declaration error, checked at registration.
}

// A Builder is a fluent column declaration. The zero value is not usable;
// use one of the type constructors (Int, String, Time, ...).
type Builder struct {
	desc *Descriptor
}

// Int returns a new integer column with the given name.
func Int(name string) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: TypeInt}}
}

// String returns a new text column with the given name.
func String(name string) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: TypeString}}
}

// Time returns a new timestamp column with the given name.
func Time(name string) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: TypeTime}}
}

// Bool returns a new boolean column with the given name.
func Bool(name string) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: TypeBool}}
}

// Float returns a new floating-point column with the given name.
func Float(name string) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: TypeFloat}}
}

// Decimal returns a new fixed-point decimal column with the given name.
func Decimal(name string) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: TypeDecimal}}
}

// PrimaryKey marks the column as the table's single-column primary key.
func (b *Builder) PrimaryKey() *Builder {
	b.desc.PrimaryKey = true
	return b
}

// AutoIncrement marks the column's value as generated by the store.
// It is meaningful only on a primary-key column; registration rejects
// it otherwise.
func (b *Builder) AutoIncrement() *Builder {
	b.desc.AutoIncrement = true
	return b
}

// Unique adds a unique constraint to the column.
func (b *Builder) Unique() *Builder {
	b.desc.Unique = true
	return b
}

// Required adds a not-null constraint to the column. For text columns,
// validation also rejects empty and whitespace-only values.
func (b *Builder) Required() *Builder {
	b.desc.Required = true
	return b
}

// References declares a foreign key from the column to table.column.
func (b *Builder) References(table, column string) *Builder {
	b.desc.ForeignKey = &ForeignKey{Table: table, Column: column}
	return b
}

// OnDelete sets the foreign-key action for deletes of the referenced row.
// It must follow a References call.
func (b *Builder) OnDelete(action ReferenceAction) *Builder {
	if b.desc.ForeignKey == nil {
		b.err(fmt.Errorf("field: OnDelete on column %q without References", b.desc.Name))
		return b
	}
	b.desc.ForeignKey.OnDelete = action
	return b
}

// OnUpdate sets the foreign-key action for updates of the referenced row.
// It must follow a References call.
func (b *Builder) OnUpdate(action ReferenceAction) *Builder {
	if b.desc.ForeignKey == nil {
		b.err(fmt.Errorf("field: OnUpdate on column %q without References", b.desc.Name))
		return b
	}
	b.desc.ForeignKey.OnUpdate = action
	return b
}

// Descriptor returns the column descriptor built so far.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

func (b *Builder) err(err error) {
	if b.desc.Err == nil {
		b.desc.Err = err
	}
}
