package schema

import "fmt"

// Schema is the root registry of the declarative model: it owns all
// entities, holds catalog-wide configuration, and orchestrates the
// resolution passes over everything it owns. Entities are kept in
// declaration order.
type Schema struct {
	version        int
	defaultPackage string
	entities       []*Entity
}

// New returns an empty schema. The default package qualifies generated
// enum type names and may be blank.
func New(version int, defaultPackage string) *Schema {
	return &Schema{
		version:        version,
		defaultPackage: defaultPackage,
	}
}

// Version returns the schema version.
func (s *Schema) Version() int { return s.version }

// DefaultPackage returns the default package for generated symbols.
func (s *Schema) DefaultPackage() string { return s.defaultPackage }

// Entities returns the owned entities in declaration order.
func (s *Schema) Entities() []*Entity { return s.entities }

// AddEntity adds an entity with the given class name and returns it for
// population.
func (s *Schema) AddEntity(className string) *Entity {
	e := newEntity(s, className)
	s.entities = append(s.entities, e)
	return e
}

// MapToDBType maps an abstract type to its SQLite column type.
func (s *Schema) MapToDBType(t Type) (string, error) {
	ct, ok := dbTypes[t]
	if !ok {
		return "", fmt.Errorf("%w: no column type for %s", ErrUnmappedType, t)
	}
	return ct, nil
}

// MapToGoType maps an abstract type to its Go type, selecting the
// non-nullable variant when notNull is set.
func (s *Schema) MapToGoType(t Type, notNull bool) (string, error) {
	types := goNullableTypes
	if notNull {
		types = goTypes
	}
	gt, ok := types[t]
	if !ok {
		return "", fmt.Errorf("%w: no Go type for %s", ErrUnmappedType, t)
	}
	return gt, nil
}

// Resolve runs the resolution passes across every entity and property.
// The second pass derives per-property storage and Go types; the third
// pass runs only after the second pass completed for the whole graph, so
// cross-entity derivations always see fully derived inputs. No entity
// may be read for derived fields before Resolve returns.
//
// Resolve is deterministic and idempotent: re-running it on an unchanged
// schema produces identical results.
func (s *Schema) Resolve() error {
	for _, e := range s.entities {
		if err := e.resolve(); err != nil {
			return err
		}
	}
	for _, e := range s.entities {
		if err := e.finalize(); err != nil {
			return err
		}
	}
	return nil
}
