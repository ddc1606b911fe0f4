package gen

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/daolite/dialect/sqlite"
	"github.com/syssam/daolite/schema"
)

// Generator emits Go source from a resolved schema: one entity file
// (struct and enum types) and one DAO file (table and column constants,
// DDL helpers) per entity. Files are rendered with Jennifer and written
// in parallel.
type Generator struct {
	schema  *schema.Schema
	outDir  string
	pkg     string
	workers int
}

// NewGenerator creates a generator writing into outDir. The output
// package name defaults to the directory base name.
func NewGenerator(s *schema.Schema, outDir string) *Generator {
	return &Generator{
		schema:  s,
		outDir:  outDir,
		pkg:     filepath.Base(outDir),
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithPackage sets the output package name.
func (g *Generator) WithPackage(pkg string) *Generator {
	if pkg != "" {
		g.pkg = pkg
	}
	return g
}

// WithWorkers sets the number of parallel workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Generate renders and writes all files. The schema must be resolved
// before Generate is called.
func (g *Generator) Generate(ctx context.Context) error {
	if g.schema == nil {
		return NewConfigError("Schema", nil, "no schema set")
	}
	if g.outDir == "" {
		return NewConfigError("OutDir", nil, "missing output directory")
	}
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return err
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)

	for _, e := range g.schema.Entities() {
		e := e
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.writeFile(g.genEntity(e), strings.ToLower(e.ClassName())+".go")
			}
		})
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.writeFile(g.genDAO(e), strings.ToLower(e.ClassName())+"_dao.go")
			}
		})
	}

	return errg.Wait()
}

// newFile creates a new Jennifer file with the header comment.
func (g *Generator) newFile() *jen.File {
	f := jen.NewFile(g.pkg)
	f.HeaderComment("Code generated by daolite. DO NOT EDIT.")
	return f
}

// genEntity generates the entity struct and its enum types.
func (g *Generator) genEntity(e *schema.Entity) *jen.File {
	f := g.newFile()

	// Enum types first: a named integer type plus one constant per
	// symbolic value. The nested-name form of the resolved Go type is
	// flattened to <Entity><EnumType> for Go.
	for _, p := range e.Properties() {
		if p.Type() != schema.TypeEnum {
			continue
		}
		name := enumGoName(p)
		f.Commentf("%s is the enumerated type of the %s property of %s.", name, p.PropertyName(), e.ClassName())
		f.Type().Id(name).Int()
		f.Commentf("Values of %s.", name)
		f.Const().DefsFunc(func(group *jen.Group) {
			for _, v := range p.Enums() {
				group.Id(name + schema.CapFirst(v.Name)).Id(name).Op("=").Lit(v.Value)
			}
		})
	}

	f.Commentf("%s is the generated entity of the %s table.", e.ClassName(), e.TableName())
	f.Type().Id(e.ClassName()).StructFunc(func(group *jen.Group) {
		for _, p := range e.Properties() {
			group.Id(schema.CapFirst(p.PropertyName())).
				Add(fieldType(p)).
				Tag(map[string]string{"json": p.PropertyName() + ",omitempty"})
		}
	})

	return f
}

// genDAO generates table/column constants and DDL helpers for an entity.
func (g *Generator) genDAO(e *schema.Entity) *jen.File {
	f := g.newFile()
	class := e.ClassName()

	f.Commentf("%sTableName is the database table of %s.", class, class)
	f.Const().Id(class + "TableName").Op("=").Lit(e.TableName())

	f.Commentf("Column names of the %s table, ordered as declared.", e.TableName())
	f.Const().DefsFunc(func(group *jen.Group) {
		for _, p := range e.Properties() {
			group.Id(class + "Column" + schema.CapFirst(p.PropertyName())).Op("=").Lit(p.ColumnName())
		}
	})

	stmts := []string{sqlite.CreateTable(e, true)}
	for _, idx := range e.Indexes() {
		stmts = append(stmts, sqlite.CreateIndex(e, idx, true))
	}
	f.Commentf("DDL executed by Create%sTable.", class)
	f.Var().Id("create" + class + "Stmts").Op("=").Index().String().ValuesFunc(func(group *jen.Group) {
		for _, stmt := range stmts {
			group.Line().Lit(stmt)
		}
		group.Line()
	})

	f.Commentf("Create%sTable creates the %s table and its indexes.", class, e.TableName())
	f.Func().Id("Create"+class+"Table").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Op("*").Qual("database/sql", "DB"),
	).Error().Block(
		jen.For(jen.List(jen.Id("_"), jen.Id("stmt")).Op(":=").Range().Id("create"+class+"Stmts")).Block(
			jen.If(
				jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("db").Dot("ExecContext").Call(jen.Id("ctx"), jen.Id("stmt")),
				jen.Err().Op("!=").Nil(),
			).Block(
				jen.Return(jen.Err()),
			),
		),
		jen.Return(jen.Nil()),
	)

	f.Commentf("Drop%sTable drops the %s table.", class, e.TableName())
	f.Func().Id("Drop"+class+"Table").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Op("*").Qual("database/sql", "DB"),
	).Error().Block(
		jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("db").Dot("ExecContext").Call(
			jen.Id("ctx"),
			jen.Lit(sqlite.DropTable(e, true)),
		),
		jen.Return(jen.Err()),
	)

	f.Commentf("Insert%s inserts e into %s, binding every column in declared order.", class, e.TableName())
	f.Func().Id("Insert"+class).Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Op("*").Qual("database/sql", "DB"),
		jen.Id("e").Op("*").Id(class),
	).Params(jen.Qual("database/sql", "Result"), jen.Error()).Block(
		jen.Return(jen.Id("db").Dot("ExecContext").CallFunc(func(group *jen.Group) {
			group.Id("ctx")
			group.Lit(sqlite.InsertRow(e))
			for _, p := range e.Properties() {
				group.Id("e").Dot(schema.CapFirst(p.PropertyName()))
			}
		})),
	)

	if pk := e.PKProperty(); pk != nil {
		f.Commentf("Delete%s deletes the row of %s whose primary key equals id.", class, e.TableName())
		f.Func().Id("Delete"+class).Params(
			jen.Id("ctx").Qual("context", "Context"),
			jen.Id("db").Op("*").Qual("database/sql", "DB"),
			jen.Id("id").Add(g.pkType(pk)),
		).Error().Block(
			jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("db").Dot("ExecContext").Call(
				jen.Id("ctx"),
				jen.Lit(sqlite.DeleteRow(e)),
				jen.Id("id"),
			),
			jen.Return(jen.Err()),
		)
	}

	return f
}

// pkType returns the value-typed spelling of a primary key for function
// parameters. Keys are looked up by value even when the column itself is
// nullable.
func (g *Generator) pkType(p *schema.Property) jen.Code {
	if p.Type() == schema.TypeEnum {
		return jen.Id(enumGoName(p))
	}
	gt, err := g.schema.MapToGoType(p.Type(), true)
	if err != nil {
		return jen.Id(p.GoType())
	}
	switch gt {
	case "time.Time":
		return jen.Qual("time", "Time")
	case "[]byte":
		return jen.Index().Byte()
	default:
		return jen.Id(gt)
	}
}

// enumGoName flattens the synthesized nested enum type name to a flat
// Go identifier, e.g. Note.State becomes NoteState.
func enumGoName(p *schema.Property) string {
	return p.Entity().ClassName() + p.EnumTypeName()
}

// fieldType returns the Jennifer code for a property's Go type.
func fieldType(p *schema.Property) jen.Code {
	if p.Type() == schema.TypeEnum {
		return jen.Id(enumGoName(p))
	}
	switch p.GoType() {
	case "time.Time":
		return jen.Qual("time", "Time")
	case "*time.Time":
		return jen.Op("*").Qual("time", "Time")
	case "[]byte":
		return jen.Index().Byte()
	default:
		// Primitives and their pointer spellings.
		return jen.Id(p.GoType())
	}
}
