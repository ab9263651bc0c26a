package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/loom/schema"
	"github.com/syssam/loom/schema/field"
)

func TestRegister(t *testing.T) {
	r := schema.NewRegistry()
	m, err := r.Register(schema.New("User",
		field.Int("id").PrimaryKey().AutoIncrement(),
		field.String("name").Required().Unique(),
		field.String("email").Required(),
	))
	require.NoError(t, err)
	assert.Equal(t, "User", m.Name())
	assert.Equal(t, "users", m.Table())
	assert.Len(t, m.Columns(), 3)
	assert.Equal(t, "id", m.AutoIncrementColumn())
	assert.Empty(t, m.CompositeKey())

	name, ok := m.Column("name")
	require.True(t, ok)
	assert.True(t, name.Required)
	assert.True(t, name.Unique)

	_, ok = m.Column("missing")
	assert.False(t, ok)
}

func TestTableName(t *testing.T) {
	tests := []struct {
		model string
		table string
	}{
		{"User", "users"},
		{"UserProfile", "user_profiles"},
		{"Category", "categories"},
		{"order", "orders"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.table, schema.TableName(tt.model))
	}

	t.Run("explicit_override", func(t *testing.T) {
		r := schema.NewRegistry()
		m, err := r.Register(schema.New("User", field.Int("id").PrimaryKey()).Table("accounts"))
		require.NoError(t, err)
		assert.Equal(t, "accounts", m.Table())
	})
}

func TestRegisterErrors(t *testing.T) {
	tests := []struct {
		name string
		def  *schema.Definition
		msg  string
	}{
		{
			name: "duplicate_column",
			def: schema.New("User",
				field.Int("id").PrimaryKey(),
				field.String("id"),
			),
			msg: `duplicate column "id"`,
		},
		{
			name: "auto_increment_without_primary_key",
			def: schema.New("User",
				field.Int("id").AutoIncrement(),
			),
			msg: "auto-increment without primary key",
		},
		{
			name: "primary_key_conflicts_with_composite_key",
			def: schema.New("Grant",
				field.Int("id").PrimaryKey().AutoIncrement(),
				field.String("subject"),
				field.String("resource"),
			).Key("subject", "resource"),
			msg: "conflicts with composite key",
		},
		{
			name: "composite_key_unknown_column",
			def: schema.New("Grant",
				field.String("subject"),
			).Key("subject", "resource"),
			msg: `unknown column "resource"`,
		},
		{
			name: "empty_column_name",
			def:  schema.New("User", field.Int("")),
			msg:  "empty name",
		},
		{
			name: "dangling_reference_action",
			def:  schema.New("Pet", field.Int("owner_id").OnDelete(field.Cascade)),
			msg:  "without References",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := schema.NewRegistry()
			_, err := r.Register(tt.def)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCompositeKey(t *testing.T) {
	r := schema.NewRegistry()
	m, err := r.Register(schema.New("Grant",
		field.String("subject").Required(),
		field.String("resource").Required(),
		field.Time("granted_at"),
	).Key("subject", "resource"))
	require.NoError(t, err)
	assert.Equal(t, []string{"subject", "resource"}, m.CompositeKey())
	assert.Empty(t, m.AutoIncrementColumn())
}
