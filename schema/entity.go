package schema

import "fmt"

// Entity is a table-like grouping of properties: it maps to one
// generated Go type and one database table. Properties and indexes are
// kept in declaration order, which is meaningful for generated field and
// column order.
type Entity struct {
	schema     *Schema
	className  string
	tableName  string
	properties []*Property
	indexes    []*Index
}

func newEntity(s *Schema, className string) *Entity {
	return &Entity{
		schema:    s,
		className: CapFirst(className),
	}
}

// ClassName returns the generated type name of the entity.
func (e *Entity) ClassName() string { return e.className }

// TableName returns the database table name. Before resolution it is
// empty unless set explicitly.
func (e *Entity) TableName() string { return e.tableName }

// SetTableName overrides the derived table name.
func (e *Entity) SetTableName(name string) *Entity {
	e.tableName = name
	return e
}

// Schema returns the schema owning this entity.
func (e *Entity) Schema() *Schema { return e.schema }

// Properties returns the entity's properties in declaration order.
func (e *Entity) Properties() []*Property { return e.properties }

// Indexes returns the entity's indexes in declaration order.
func (e *Entity) Indexes() []*Index { return e.indexes }

// PKProperty returns the first primary-key property, or nil if the
// entity has none. Meaningful only after resolution for derived fields.
func (e *Entity) PKProperty() *Property {
	for _, p := range e.properties {
		if p.IsPrimaryKey() {
			return p
		}
	}
	return nil
}

// AddProperty adds a property of the given abstract type and returns its
// builder for further configuration.
func (e *Entity) AddProperty(t Type, name string) *PropertyBuilder {
	b := newPropertyBuilder(e.schema, e, t, name)
	e.properties = append(e.properties, b.property)
	return b
}

// AddIDProperty adds the conventional "_id" primary key of type Long.
func (e *Entity) AddIDProperty() *PropertyBuilder {
	return e.AddProperty(TypeLong, "id").ColumnName("_id").PrimaryKey()
}

// AddByteProperty adds a property of type Byte.
func (e *Entity) AddByteProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeByte, name)
}

// AddShortProperty adds a property of type Short.
func (e *Entity) AddShortProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeShort, name)
}

// AddIntProperty adds a property of type Int.
func (e *Entity) AddIntProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeInt, name)
}

// AddLongProperty adds a property of type Long.
func (e *Entity) AddLongProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeLong, name)
}

// AddBooleanProperty adds a property of type Boolean.
func (e *Entity) AddBooleanProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeBoolean, name)
}

// AddFloatProperty adds a property of type Float.
func (e *Entity) AddFloatProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeFloat, name)
}

// AddDoubleProperty adds a property of type Double.
func (e *Entity) AddDoubleProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeDouble, name)
}

// AddStringProperty adds a property of type String.
func (e *Entity) AddStringProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeString, name)
}

// AddByteArrayProperty adds a property of type ByteArray.
func (e *Entity) AddByteArrayProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeByteArray, name)
}

// AddDateProperty adds a property of type Date.
func (e *Entity) AddDateProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeDate, name)
}

// AddEnumProperty adds a property of type Enum. Symbolic values are
// registered through PropertyBuilder.Value.
func (e *Entity) AddEnumProperty(name string) *PropertyBuilder {
	return e.AddProperty(TypeEnum, name)
}

// AddIndex attaches an index to the entity. Indexes synthesized by the
// property builder's Index shortcuts arrive here as well.
func (e *Entity) AddIndex(i *Index) *Entity {
	e.indexes = append(e.indexes, i)
	return e
}

// resolve runs the second resolution pass over the entity: it derives
// the table name, checks property names for uniqueness, assigns ordinals
// and resolves every property.
func (e *Entity) resolve() error {
	if e.tableName == "" {
		e.tableName = DBName(e.className)
	}
	seen := make(map[string]struct{}, len(e.properties))
	for i, p := range e.properties {
		if _, ok := seen[p.propertyName]; ok {
			return fmt.Errorf("%w: duplicate property %q in entity %s", ErrInvalidSchema, p.propertyName, e.className)
		}
		seen[p.propertyName] = struct{}{}
		p.setOrdinal(i)
		if err := p.resolve(); err != nil {
			return fmt.Errorf("entity %s: %w", e.className, err)
		}
	}
	return nil
}

// finalize runs the third resolution pass over the entity's properties.
func (e *Entity) finalize() error {
	for _, p := range e.properties {
		if err := p.finalize(); err != nil {
			return fmt.Errorf("entity %s: %w", e.className, err)
		}
	}
	return nil
}
