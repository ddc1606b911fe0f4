// Package load reads daolite schema documents and builds the
// declarative schema graph from them.
//
// A schema document is YAML:
//
//	version: 1
//	package: example.com/model
//	entities:
//	  - name: Note
//	    properties:
//	      - { name: id, type: long, columnName: _id, primaryKey: true, autoincrement: true }
//	      - { name: text, type: string, notNull: true }
//	      - name: state
//	        type: enum
//	        values: { draft: 0, done: 1 }
//	    indexes:
//	      - unique: true
//	        properties:
//	          - { name: text, order: asc }
//
// The loader validates documents eagerly and returns errors; invalid
// input never reaches the builder API's declaration-time panics.
package load

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/daolite/schema"
)

// Document is the root of a schema file.
type Document struct {
	Version        int       `yaml:"version"`
	DefaultPackage string    `yaml:"package"`
	Entities       []*Entity `yaml:"entities"`
}

// Entity describes one entity declaration.
type Entity struct {
	Name       string      `yaml:"name"`
	TableName  string      `yaml:"tableName"`
	Properties []*Property `yaml:"properties"`
	Indexes    []*Index    `yaml:"indexes"`
}

// Property describes one property declaration.
type Property struct {
	Name          string         `yaml:"name"`
	Type          string         `yaml:"type"`
	ColumnName    string         `yaml:"columnName"`
	ColumnType    string         `yaml:"columnType"`
	PrimaryKey    bool           `yaml:"primaryKey"`
	Direction     string         `yaml:"direction"` // "asc" or "desc", primary keys only
	Autoincrement bool           `yaml:"autoincrement"`
	Unique        bool           `yaml:"unique"`
	NotNull       bool           `yaml:"notNull"`
	Values        map[string]int `yaml:"values"` // enum properties only
}

// Index describes one index declaration.
type Index struct {
	Name       string           `yaml:"name"`
	Unique     bool             `yaml:"unique"`
	Properties []*IndexProperty `yaml:"properties"`
}

// IndexProperty references a declared property from an index.
type IndexProperty struct {
	Name  string `yaml:"name"`
	Order string `yaml:"order"` // "", "asc" or "desc"
}

var propertyTypes = map[string]schema.Type{
	"byte":      schema.TypeByte,
	"short":     schema.TypeShort,
	"int":       schema.TypeInt,
	"long":      schema.TypeLong,
	"boolean":   schema.TypeBoolean,
	"float":     schema.TypeFloat,
	"double":    schema.TypeDouble,
	"string":    schema.TypeString,
	"bytearray": schema.TypeByteArray,
	"date":      schema.TypeDate,
	"enum":      schema.TypeEnum,
}

// Parse decodes a schema document.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("daolite: decode schema document: %w", err)
	}
	return &doc, nil
}

// ParseFile decodes the schema document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// File parses and builds the schema at path. The returned schema is not
// yet resolved.
func File(path string) (*schema.Schema, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Build constructs the declarative schema graph from a document. It
// validates the document eagerly so builder preconditions always hold.
func Build(doc *Document) (*schema.Schema, error) {
	s := schema.New(doc.Version, doc.DefaultPackage)
	for _, le := range doc.Entities {
		if le.Name == "" {
			return nil, fmt.Errorf("daolite: entity with no name")
		}
		e := s.AddEntity(le.Name)
		if le.TableName != "" {
			e.SetTableName(le.TableName)
		}
		byName := make(map[string]*schema.Property, len(le.Properties))
		for _, lp := range le.Properties {
			p, err := buildProperty(e, lp)
			if err != nil {
				return nil, fmt.Errorf("daolite: entity %q: %w", le.Name, err)
			}
			byName[p.PropertyName()] = p
		}
		for _, li := range le.Indexes {
			if err := buildIndex(e, li, byName); err != nil {
				return nil, fmt.Errorf("daolite: entity %q: %w", le.Name, err)
			}
		}
	}
	return s, nil
}

func buildProperty(e *schema.Entity, lp *Property) (*schema.Property, error) {
	if lp.Name == "" {
		return nil, fmt.Errorf("property with no name")
	}
	t, ok := propertyTypes[strings.ToLower(lp.Type)]
	if !ok {
		return nil, fmt.Errorf("property %q: unknown type %q", lp.Name, lp.Type)
	}
	b := e.AddProperty(t, lp.Name)
	if lp.ColumnName != "" {
		b.ColumnName(lp.ColumnName)
	}
	if lp.ColumnType != "" {
		b.ColumnType(lp.ColumnType)
	}
	switch {
	case lp.PrimaryKey && strings.EqualFold(lp.Direction, "asc"):
		b.PrimaryKeyAsc()
	case lp.PrimaryKey && strings.EqualFold(lp.Direction, "desc"):
		b.PrimaryKeyDesc()
	case lp.PrimaryKey:
		b.PrimaryKey()
	case lp.Direction != "":
		return nil, fmt.Errorf("property %q: direction requires primaryKey", lp.Name)
	}
	if lp.Autoincrement {
		if !lp.PrimaryKey || t != schema.TypeLong {
			return nil, fmt.Errorf("property %q: autoincrement requires a primary key of type long", lp.Name)
		}
		b.Autoincrement()
	}
	if lp.Unique {
		b.Unique()
	}
	if lp.NotNull {
		b.NotNull()
	}
	if len(lp.Values) > 0 && t != schema.TypeEnum {
		return nil, fmt.Errorf("property %q: values are only allowed on enum properties", lp.Name)
	}
	if t == schema.TypeEnum && len(lp.Values) == 0 {
		return nil, fmt.Errorf("property %q: enum property has no values", lp.Name)
	}
	for name, value := range lp.Values {
		b.Value(name, value)
	}
	return b.Property(), nil
}

func buildIndex(e *schema.Entity, li *Index, byName map[string]*schema.Property) error {
	if len(li.Properties) == 0 {
		return fmt.Errorf("index with no properties")
	}
	idx := schema.NewIndex()
	if li.Name != "" {
		idx.SetName(li.Name)
	}
	if li.Unique {
		idx.MakeUnique()
	}
	seen := make(map[string]struct{}, len(li.Properties))
	for _, lip := range li.Properties {
		name := schema.UncapFirst(lip.Name)
		p, ok := byName[name]
		if !ok {
			return fmt.Errorf("index references unknown property %q", lip.Name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("index references property %q twice", lip.Name)
		}
		seen[name] = struct{}{}
		switch strings.ToLower(lip.Order) {
		case "":
			idx.AddProperty(p)
		case "asc":
			idx.AddPropertyAsc(p)
		case "desc":
			idx.AddPropertyDesc(p)
		default:
			return fmt.Errorf("index property %q: unknown order %q", lip.Name, lip.Order)
		}
	}
	e.AddIndex(idx)
	return nil
}
