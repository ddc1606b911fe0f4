// Package sqlite renders resolved daolite entities into SQLite DDL.
//
// The package is a pure consumer of the resolved schema graph: it reads
// the derived column names, column types and constraint strings and
// assembles CREATE TABLE and CREATE INDEX statements. Entities must be
// resolved before being handed to this package.
package sqlite

import (
	"strings"

	"github.com/syssam/daolite/schema"
)

// CreateTable returns the CREATE TABLE statement for a resolved entity.
func CreateTable(e *schema.Entity, ifNotExists bool) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	quote(&b, e.TableName())
	b.WriteString(" (")
	for i, p := range e.Properties() {
		if i > 0 {
			b.WriteString(", ")
		}
		quote(&b, p.ColumnName())
		b.WriteByte(' ')
		b.WriteString(p.ColumnType())
		if p.HasConstraints() {
			b.WriteByte(' ')
			b.WriteString(p.Constraints())
		}
	}
	b.WriteString(");")
	return b.String()
}

// DropTable returns the DROP TABLE statement for an entity.
func DropTable(e *schema.Entity, ifExists bool) string {
	var b strings.Builder
	b.WriteString("DROP TABLE ")
	if ifExists {
		b.WriteString("IF EXISTS ")
	}
	quote(&b, e.TableName())
	b.WriteByte(';')
	return b.String()
}

// InsertRow returns the INSERT statement for a resolved entity, binding
// every column with a positional placeholder in declaration order.
func InsertRow(e *schema.Entity) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	quote(&b, e.TableName())
	b.WriteString(" (")
	for i, p := range e.Properties() {
		if i > 0 {
			b.WriteString(", ")
		}
		quote(&b, p.ColumnName())
	}
	b.WriteString(") VALUES (")
	for i := range e.Properties() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('?')
	}
	b.WriteString(");")
	return b.String()
}

// DeleteRow returns the DELETE statement matching an entity's primary
// key, with a positional placeholder for the key. Entities without a
// primary key yield no statement.
func DeleteRow(e *schema.Entity) string {
	pk := e.PKProperty()
	if pk == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	quote(&b, e.TableName())
	b.WriteString(" WHERE ")
	quote(&b, pk.ColumnName())
	b.WriteString(" = ?;")
	return b.String()
}

// CreateIndex returns the CREATE INDEX statement for one index of a
// resolved entity. Unnamed indexes get a synthesized name, see IndexName.
func CreateIndex(e *schema.Entity, idx *schema.Index, ifNotExists bool) string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.IsUnique() {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	if ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	quote(&b, IndexName(e, idx))
	b.WriteString(" ON ")
	quote(&b, e.TableName())
	b.WriteString(" (")
	orders := idx.Orders()
	for i, p := range idx.Properties() {
		if i > 0 {
			b.WriteString(", ")
		}
		quote(&b, p.ColumnName())
		if o := orders[i].String(); o != "" {
			b.WriteByte(' ')
			b.WriteString(o)
		}
	}
	b.WriteString(");")
	return b.String()
}

// IndexName returns the index's explicit name, or a synthesized
// "IDX_<TABLE>_<COL>..." name when none was set.
func IndexName(e *schema.Entity, idx *schema.Index) string {
	if idx.Name() != "" {
		return idx.Name()
	}
	parts := []string{"IDX", e.TableName()}
	for _, p := range idx.Properties() {
		parts = append(parts, p.ColumnName())
	}
	return strings.Join(parts, "_")
}

// CreateAll returns the table and index creation statements for every
// entity of a resolved schema, in declaration order.
func CreateAll(s *schema.Schema, ifNotExists bool) []string {
	var stmts []string
	for _, e := range s.Entities() {
		stmts = append(stmts, CreateTable(e, ifNotExists))
		for _, idx := range e.Indexes() {
			stmts = append(stmts, CreateIndex(e, idx, ifNotExists))
		}
	}
	return stmts
}

func quote(b *strings.Builder, ident string) {
	b.WriteByte('"')
	b.WriteString(ident)
	b.WriteByte('"')
}
