package gen

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// writeFile renders a Jennifer file, cleans the import block with
// goimports and writes the result under the output directory.
func (g *Generator) writeFile(f *jen.File, filename string) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError("render", filename, "render file", err)
	}

	full := filepath.Join(g.outDir, filename)
	src, err := imports.Process(full, buf.Bytes(), nil)
	if err != nil {
		return NewGenerationError("format", filename, "format file", err)
	}

	if err := os.WriteFile(full, src, 0o644); err != nil {
		return NewGenerationError("write", filename, "write file", err)
	}
	return nil
}
