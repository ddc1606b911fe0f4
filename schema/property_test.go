package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/daolite/schema"
)

// TestConstraintAssembly tests the constraint clause derived for each
// combination of flags.
func TestConstraintAssembly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(e *schema.Entity) *schema.PropertyBuilder
		want  string
	}{
		{
			name: "no_flags",
			build: func(e *schema.Entity) *schema.PropertyBuilder {
				return e.AddLongProperty("count")
			},
			want: "",
		},
		{
			name: "primary_key",
			build: func(e *schema.Entity) *schema.PropertyBuilder {
				return e.AddLongProperty("id").PrimaryKey()
			},
			want: "PRIMARY KEY",
		},
		{
			name: "primary_key_asc",
			build: func(e *schema.Entity) *schema.PropertyBuilder {
				return e.AddLongProperty("id").PrimaryKeyAsc()
			},
			want: "PRIMARY KEY ASC",
		},
		{
			name: "primary_key_desc",
			build: func(e *schema.Entity) *schema.PropertyBuilder {
				return e.AddLongProperty("id").PrimaryKeyDesc()
			},
			want: "PRIMARY KEY DESC",
		},
		{
			name: "asc_autoincrement_not_null",
			build: func(e *schema.Entity) *schema.PropertyBuilder {
				return e.AddLongProperty("id").PrimaryKeyAsc().Autoincrement().NotNull()
			},
			want: "PRIMARY KEY ASC AUTOINCREMENT NOT NULL",
		},
		{
			name: "not_null_unique",
			build: func(e *schema.Entity) *schema.PropertyBuilder {
				return e.AddStringProperty("email").NotNull().Unique()
			},
			want: "NOT NULL UNIQUE",
		},
		{
			name: "unique_only",
			build: func(e *schema.Entity) *schema.PropertyBuilder {
				return e.AddStringProperty("code").Unique()
			},
			want: "UNIQUE",
		},
		{
			// String primary keys are forced NOT NULL even when the
			// flag was left unset.
			name: "string_pk_forced_not_null",
			build: func(e *schema.Entity) *schema.PropertyBuilder {
				return e.AddStringProperty("key").PrimaryKey()
			},
			want: "PRIMARY KEY NOT NULL",
		},
		{
			// Both sort flags may be set; the builder does not
			// validate them as mutually exclusive and both are
			// emitted.
			name: "asc_and_desc_both_emitted",
			build: func(e *schema.Entity) *schema.PropertyBuilder {
				return e.AddLongProperty("id").PrimaryKeyAsc().PrimaryKeyDesc()
			},
			want: "PRIMARY KEY ASC DESC",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := schema.New(1, "")
			e := s.AddEntity("Sample")
			p := tt.build(e).Property()
			require.NoError(t, s.Resolve())
			assert.Equal(t, tt.want, p.Constraints())
			assert.Equal(t, tt.want != "", p.HasConstraints())
		})
	}
}

// TestAutoincrementPrecondition tests the one piece of eager validation
// in the builder.
func TestAutoincrementPrecondition(t *testing.T) {
	t.Parallel()

	t.Run("not_primary_key", func(t *testing.T) {
		t.Parallel()
		s := schema.New(1, "")
		e := s.AddEntity("Note")
		require.Panics(t, func() {
			e.AddLongProperty("id").Autoincrement()
		})
	})

	t.Run("not_long", func(t *testing.T) {
		t.Parallel()
		s := schema.New(1, "")
		e := s.AddEntity("Note")
		require.Panics(t, func() {
			e.AddIntProperty("id").PrimaryKey().Autoincrement()
		})
	})

	t.Run("long_primary_key_accepted", func(t *testing.T) {
		t.Parallel()
		s := schema.New(1, "")
		e := s.AddEntity("Note")
		var p *schema.Property
		require.NotPanics(t, func() {
			p = e.AddLongProperty("id").PrimaryKey().Autoincrement().Property()
		})
		assert.True(t, p.IsAutoincrement())
	})
}

func TestResolveDerivesStorageAndGoTypes(t *testing.T) {
	t.Parallel()

	s := schema.New(2, "")
	e := s.AddEntity("Note")
	text := e.AddStringProperty("text").NotNull().Property()
	date := e.AddDateProperty("creationDate").Property()
	blob := e.AddByteArrayProperty("payload").Property()
	custom := e.AddLongProperty("weird").ColumnName("WEIRDO").ColumnType("NUMERIC").Property()

	require.NoError(t, s.Resolve())

	assert.Equal(t, "TEXT", text.ColumnType())
	assert.Equal(t, "TEXT", text.ColumnName())
	assert.Equal(t, "string", text.GoType())

	assert.Equal(t, "INTEGER", date.ColumnType())
	assert.Equal(t, "CREATION_DATE", date.ColumnName())
	assert.Equal(t, "*time.Time", date.GoType())

	assert.Equal(t, "BLOB", blob.ColumnType())
	assert.Equal(t, "[]byte", blob.GoType())

	// Explicit overrides win over derivation.
	assert.Equal(t, "WEIRDO", custom.ColumnName())
	assert.Equal(t, "NUMERIC", custom.ColumnType())
}

// TestIDPropertyStaysNullable pins the key convention: AddIDProperty
// sets no NOT NULL, so the resolved Go type is the pointer spelling and
// an unsaved entity carries a nil key.
func TestIDPropertyStaysNullable(t *testing.T) {
	t.Parallel()

	s := schema.New(1, "")
	e := s.AddEntity("Note")
	id := e.AddIDProperty().Autoincrement().Property()
	require.NoError(t, s.Resolve())

	assert.False(t, id.IsNotNull())
	assert.Equal(t, "*int64", id.GoType())
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	s := schema.New(1, "example.com/model")
	e := s.AddEntity("Order")
	id := e.AddIDProperty().Autoincrement().Property()
	status := e.AddEnumProperty("status").Value("open", 0).Value("closed", 1).Property()

	require.NoError(t, s.Resolve())
	first := []string{id.ColumnName(), id.ColumnType(), id.Constraints(), id.GoType(),
		status.ColumnName(), status.GoType(), status.EnumTypeName()}

	require.NoError(t, s.Resolve())
	second := []string{id.ColumnName(), id.ColumnType(), id.Constraints(), id.GoType(),
		status.ColumnName(), status.GoType(), status.EnumTypeName()}

	assert.Equal(t, first, second)
}

func TestEnumResolution(t *testing.T) {
	t.Parallel()

	t.Run("with_default_package", func(t *testing.T) {
		t.Parallel()
		s := schema.New(1, "example.com/model")
		e := s.AddEntity("User")
		p := e.AddEnumProperty("role").Value("admin", 0).Value("guest", 1).Property()
		require.NoError(t, s.Resolve())
		assert.Equal(t, "Role", p.EnumTypeName())
		assert.Equal(t, "example.com/model.User.Role", p.GoType())
		assert.Equal(t, "INTEGER", p.ColumnType())
	})

	t.Run("without_default_package", func(t *testing.T) {
		t.Parallel()
		s := schema.New(1, "")
		e := s.AddEntity("User")
		p := e.AddEnumProperty("role").Value("admin", 0).Property()
		require.NoError(t, s.Resolve())
		assert.Equal(t, "User.Role", p.GoType())
	})

	t.Run("blank_default_package", func(t *testing.T) {
		t.Parallel()
		s := schema.New(1, "   ")
		e := s.AddEntity("User")
		p := e.AddEnumProperty("role").Value("admin", 0).Property()
		require.NoError(t, s.Resolve())
		assert.Equal(t, "User.Role", p.GoType())
	})

	t.Run("values_sorted_deterministically", func(t *testing.T) {
		t.Parallel()
		s := schema.New(1, "")
		e := s.AddEntity("User")
		p := e.AddEnumProperty("role").
			Value("guest", 2).
			Value("admin", 0).
			Value("member", 1).
			Property()
		require.NoError(t, s.Resolve())
		require.Len(t, p.Enums(), 3)
		assert.Equal(t, schema.Enum{Name: "admin", Value: 0}, p.Enums()[0])
		assert.Equal(t, schema.Enum{Name: "member", Value: 1}, p.Enums()[1])
		assert.Equal(t, schema.Enum{Name: "guest", Value: 2}, p.Enums()[2])
	})

	t.Run("value_on_non_enum_panics", func(t *testing.T) {
		t.Parallel()
		s := schema.New(1, "")
		e := s.AddEntity("User")
		require.Panics(t, func() {
			e.AddStringProperty("role").Value("admin", 0)
		})
	})

	t.Run("duplicate_value_panics", func(t *testing.T) {
		t.Parallel()
		s := schema.New(1, "")
		e := s.AddEntity("User")
		require.Panics(t, func() {
			e.AddEnumProperty("role").Value("admin", 0).Value("admin", 1)
		})
	})
}

func TestPropertyNameNormalization(t *testing.T) {
	t.Parallel()

	s := schema.New(1, "")
	e := s.AddEntity("Note")
	p := e.AddStringProperty("Text").Property()
	assert.Equal(t, "text", p.PropertyName())

	id := e.AddLongProperty("id").Property()
	require.NoError(t, s.Resolve())
	assert.Equal(t, "ID", id.ColumnName())
	assert.NotEmpty(t, id.ColumnName())
}

func TestIndexShortcuts(t *testing.T) {
	t.Parallel()

	s := schema.New(1, "")
	e := s.AddEntity("Note")
	date := e.AddDateProperty("date").IndexDesc("IDX_NOTE_DATE", true).Property()
	text := e.AddStringProperty("text").IndexAsc("", false).Property()
	plain := e.AddLongProperty("rank").Index().Property()

	require.Len(t, e.Indexes(), 3)

	desc := e.Indexes()[0]
	assert.Equal(t, []*schema.Property{date}, desc.Properties())
	assert.Equal(t, []schema.Order{schema.OrderDesc}, desc.Orders())
	assert.True(t, desc.IsUnique())
	assert.Equal(t, "IDX_NOTE_DATE", desc.Name())

	asc := e.Indexes()[1]
	assert.Equal(t, []*schema.Property{text}, asc.Properties())
	assert.Equal(t, []schema.Order{schema.OrderAsc}, asc.Orders())
	assert.False(t, asc.IsUnique())
	assert.Empty(t, asc.Name())

	bare := e.Indexes()[2]
	assert.Equal(t, []*schema.Property{plain}, bare.Properties())
	assert.Equal(t, []schema.Order{schema.OrderNone}, bare.Orders())
}

// TestClone tests that a clone copies type and name only and resolves
// independently of the original's flags.
func TestClone(t *testing.T) {
	t.Parallel()

	s := schema.New(1, "")
	e := s.AddEntity("Note")
	orig := e.AddStringProperty("text").PrimaryKey().Unique().NotNull().Property()
	require.NoError(t, s.Resolve())

	clone, err := orig.Clone()
	require.NoError(t, err)

	assert.Equal(t, orig.PropertyName(), clone.PropertyName())
	assert.Equal(t, orig.Type(), clone.Type())
	assert.Equal(t, orig.Entity(), clone.Entity())

	assert.False(t, clone.IsPrimaryKey())
	assert.False(t, clone.IsUnique())
	assert.False(t, clone.IsNotNull())
	assert.False(t, clone.HasConstraints())

	// The clone derived its own storage fields.
	assert.Equal(t, "TEXT", clone.ColumnName())
	assert.Equal(t, "TEXT", clone.ColumnType())
	assert.Equal(t, "*string", clone.GoType())
}
