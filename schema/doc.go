// Package schema provides the building blocks for defining daolite schemas
// and resolving them into fully-specified storage artifacts.
//
// A schema is built declaratively: a [Schema] owns entities, an [Entity] owns
// properties and indexes, and a [PropertyBuilder] accumulates one property's
// configuration through chained calls. Declarations may be made in any order;
// nothing is derived until the whole graph exists.
//
//	s := schema.New(1, "example.com/model")
//	note := s.AddEntity("Note")
//	note.AddIDProperty().Autoincrement()
//	note.AddStringProperty("text").NotNull()
//	note.AddDateProperty("date").IndexDesc("", false)
//
//	if err := s.Resolve(); err != nil {
//	    log.Fatal(err)
//	}
//
// Resolve runs the resolution passes over every entity and property: the
// second pass derives column names, column types, constraint strings and Go
// types; the third pass is reserved for derivations that depend on sibling
// results. Only after Resolve returns may the derived accessors (ColumnName,
// ColumnType, Constraints, GoType) be read.
//
// Resolution is deterministic and idempotent: resolving an unchanged schema
// twice yields identical results, regardless of the order in which the
// declaration calls were made.
package schema
