package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Property is one column definition of an entity: a generated Go field
// mapped to a database column.
//
// Properties are created through [Entity.AddProperty] and its typed
// shortcuts, configured through the returned [PropertyBuilder], and
// derive their remaining fields (column name, column type, constraint
// string, Go type) when the owning schema resolves.
type Property struct {
	schema *Schema
	entity *Entity

	propertyType Type
	propertyName string

	// Declaration-time overrides. Empty means derive during resolution.
	columnName string
	columnType string

	primaryKey      bool
	pkAsc           bool
	pkDesc          bool
	pkAutoincrement bool
	unique          bool
	notNull         bool

	enumValues map[string]int

	// Derived in the second resolution pass.
	constraints  string
	goType       string
	enumTypeName string

	// Position among the entity's properties, assigned on resolution.
	ordinal int
}

// Enum is one symbolic value of an enumerated property.
type Enum struct {
	Name  string
	Value int
}

// PropertyBuilder accumulates a single property's declaration-time
// configuration. All methods return the builder to allow chaining and
// none of them trigger resolution; derivations that need sibling or
// schema-wide state run only when the owning schema resolves.
type PropertyBuilder struct {
	property *Property
}

func newPropertyBuilder(s *Schema, e *Entity, t Type, name string) *PropertyBuilder {
	return &PropertyBuilder{
		property: &Property{
			schema:       s,
			entity:       e,
			propertyType: t,
			propertyName: UncapFirst(name),
			enumValues:   make(map[string]int),
		},
	}
}

// ColumnName overrides the derived storage column name.
func (b *PropertyBuilder) ColumnName(name string) *PropertyBuilder {
	b.property.columnName = name
	return b
}

// ColumnType overrides the derived storage column type.
func (b *PropertyBuilder) ColumnType(typ string) *PropertyBuilder {
	b.property.columnType = typ
	return b
}

// PrimaryKey marks the property as the table's primary key.
func (b *PropertyBuilder) PrimaryKey() *PropertyBuilder {
	b.property.primaryKey = true
	return b
}

// PrimaryKeyAsc marks the property as an ascending primary key.
func (b *PropertyBuilder) PrimaryKeyAsc() *PropertyBuilder {
	b.property.primaryKey = true
	b.property.pkAsc = true
	return b
}

// PrimaryKeyDesc marks the property as a descending primary key.
func (b *PropertyBuilder) PrimaryKeyDesc() *PropertyBuilder {
	b.property.primaryKey = true
	b.property.pkDesc = true
	return b
}

// Autoincrement marks the primary key as AUTOINCREMENT. It panics unless
// the property was already marked as a primary key of type Long; this is
// the one precondition the builder can check at the call site.
func (b *PropertyBuilder) Autoincrement() *PropertyBuilder {
	p := b.property
	if !p.primaryKey || p.propertyType != TypeLong {
		panic(fmt.Sprintf("daolite: AUTOINCREMENT is only available to primary key properties of type Long (property %q)",
			p.propertyName))
	}
	p.pkAutoincrement = true
	return b
}

// Unique marks the column as UNIQUE.
func (b *PropertyBuilder) Unique() *PropertyBuilder {
	b.property.unique = true
	return b
}

// NotNull marks the column as NOT NULL.
func (b *PropertyBuilder) NotNull() *PropertyBuilder {
	b.property.notNull = true
	return b
}

// Index attaches a single-property index to the owning entity.
func (b *PropertyBuilder) Index() *PropertyBuilder {
	idx := NewIndex()
	idx.AddProperty(b.property)
	b.property.entity.AddIndex(idx)
	return b
}

// IndexAsc attaches an ascending single-property index to the owning
// entity. An empty name leaves index naming to the renderer.
func (b *PropertyBuilder) IndexAsc(name string, unique bool) *PropertyBuilder {
	idx := NewIndex()
	idx.AddPropertyAsc(b.property)
	if unique {
		idx.MakeUnique()
	}
	idx.SetName(name)
	b.property.entity.AddIndex(idx)
	return b
}

// IndexDesc attaches a descending single-property index to the owning
// entity. An empty name leaves index naming to the renderer.
func (b *PropertyBuilder) IndexDesc(name string, unique bool) *PropertyBuilder {
	idx := NewIndex()
	idx.AddPropertyDesc(b.property)
	if unique {
		idx.MakeUnique()
	}
	idx.SetName(name)
	b.property.entity.AddIndex(idx)
	return b
}

// Value registers a symbolic name for an enumerated property. It panics
// if the property is not of type Enum or the name was already registered.
func (b *PropertyBuilder) Value(name string, value int) *PropertyBuilder {
	p := b.property
	if p.propertyType != TypeEnum {
		panic(fmt.Sprintf("daolite: enum values are only available to properties of type Enum (property %q)",
			p.propertyName))
	}
	if _, ok := p.enumValues[name]; ok {
		panic(fmt.Sprintf("daolite: duplicate enum value %q for property %q", name, p.propertyName))
	}
	p.enumValues[name] = value
	return b
}

// Property returns the underlying property for further composition.
func (b *PropertyBuilder) Property() *Property {
	return b.property
}

// PropertyName returns the lower-camel name of the property.
func (p *Property) PropertyName() string { return p.propertyName }

// Type returns the abstract type of the property.
func (p *Property) Type() Type { return p.propertyType }

// Entity returns the entity owning this property.
func (p *Property) Entity() *Entity { return p.entity }

// ColumnName returns the storage column name. Empty before resolution.
func (p *Property) ColumnName() string { return p.columnName }

// ColumnType returns the storage column type. Empty before resolution.
func (p *Property) ColumnType() string { return p.columnType }

// IsPrimaryKey reports if the property is a primary key.
func (p *Property) IsPrimaryKey() bool { return p.primaryKey }

// IsAutoincrement reports if the primary key is AUTOINCREMENT.
func (p *Property) IsAutoincrement() bool { return p.pkAutoincrement }

// IsUnique reports if the column is UNIQUE.
func (p *Property) IsUnique() bool { return p.unique }

// IsNotNull reports if the column is NOT NULL.
func (p *Property) IsNotNull() bool { return p.notNull }

// Constraints returns the assembled column constraint clause.
// Empty means no constraints apply; renderers must not emit it.
func (p *Property) Constraints() string { return p.constraints }

// HasConstraints reports if a constraint clause was derived.
func (p *Property) HasConstraints() bool { return p.constraints != "" }

// GoType returns the target Go type string. Empty before resolution.
func (p *Property) GoType() string { return p.goType }

// EnumTypeName returns the synthesized type name of an enumerated
// property. Empty for non-enum properties and before resolution.
func (p *Property) EnumTypeName() string { return p.enumTypeName }

// Ordinal returns the property's position among its entity's properties.
func (p *Property) Ordinal() int { return p.ordinal }

func (p *Property) setOrdinal(n int) { p.ordinal = n }

// Enums returns the registered symbolic values of an enumerated property,
// ordered by value for deterministic generation.
func (p *Property) Enums() []Enum {
	enums := make([]Enum, 0, len(p.enumValues))
	for name, value := range p.enumValues {
		enums = append(enums, Enum{Name: name, Value: value})
	}
	sort.Slice(enums, func(i, j int) bool {
		if enums[i].Value != enums[j].Value {
			return enums[i].Value < enums[j].Value
		}
		return enums[i].Name < enums[j].Name
	})
	return enums
}

// resolve is the second resolution pass: it derives the constraint
// string, the storage column name and type, and the Go type. It must not
// depend on the pass results of sibling properties.
func (p *Property) resolve() error {
	p.initConstraint()
	if p.columnType == "" {
		ct, err := p.schema.MapToDBType(p.propertyType)
		if err != nil {
			return err
		}
		p.columnType = ct
	}
	if p.columnName == "" {
		p.columnName = DBName(p.propertyName)
	}
	if p.propertyType == TypeEnum {
		p.enumTypeName = CapFirst(p.propertyName)
		p.goType = p.entity.ClassName() + "." + p.enumTypeName
		if pkg := strings.TrimSpace(p.schema.DefaultPackage()); pkg != "" {
			p.goType = pkg + "." + p.goType
		}
		return nil
	}
	gt, err := p.schema.MapToGoType(p.propertyType, p.notNull)
	if err != nil {
		return err
	}
	p.goType = gt
	return nil
}

// initConstraint recomputes the constraint clause from the current flags.
func (p *Property) initConstraint() {
	var b strings.Builder
	if p.primaryKey {
		b.WriteString("PRIMARY KEY")
		if p.pkAsc {
			b.WriteString(" ASC")
		}
		if p.pkDesc {
			b.WriteString(" DESC")
		}
		if p.pkAutoincrement {
			b.WriteString(" AUTOINCREMENT")
		}
	}
	// String primary keys are always NOT NULL: SQLite accepts multiple
	// rows with NULL primary keys otherwise.
	if p.notNull || (p.primaryKey && p.propertyType == TypeString) {
		b.WriteString(" NOT NULL")
	}
	if p.unique {
		b.WriteString(" UNIQUE")
	}
	p.constraints = strings.TrimSpace(b.String())
}

// finalize is the third resolution pass. Derivations that depend on the
// second-pass results of other properties belong here.
func (p *Property) finalize() error {
	return nil
}

// Clone returns a fresh property sharing only the schema, entity, type
// and name of p. Constraint flags, uniqueness, nullability and index
// membership are not carried over; the clone resolves independently.
func (p *Property) Clone() (*Property, error) {
	c := &Property{
		schema:       p.schema,
		entity:       p.entity,
		propertyType: p.propertyType,
		propertyName: p.propertyName,
		enumValues:   make(map[string]int),
	}
	if err := c.resolve(); err != nil {
		return nil, err
	}
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// String implements fmt.Stringer.
func (p *Property) String() string {
	return fmt.Sprintf("Property %s of %s", p.propertyName, p.entity.ClassName())
}
