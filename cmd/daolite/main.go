// Command daolite generates entity and DAO sources from a schema file.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/daolite/dialect/sqlite"
	"github.com/syssam/daolite/gen"
	"github.com/syssam/daolite/load"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "daolite",
		Short: "daolite - schema-driven DAO and DDL generator for SQLite",
	}

	rootCmd.AddCommand(generateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var (
		schemaPath string
		outDir     string
		pkg        string
		ddlPath    string
		watch      bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate entity and DAO sources from a schema file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runGenerate(cmd.Context(), schemaPath, outDir, pkg, ddlPath); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchAndGenerate(cmd.Context(), schemaPath, outDir, pkg, ddlPath)
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "schema.yaml", "schema document to read")
	cmd.Flags().StringVar(&outDir, "out", "model", "output directory for generated sources")
	cmd.Flags().StringVar(&pkg, "package", "", "output package name (default: base of --out)")
	cmd.Flags().StringVar(&ddlPath, "ddl", "", "also write the CREATE statements to this file")
	cmd.Flags().BoolVar(&watch, "watch", false, "regenerate whenever the schema file changes")
	return cmd
}

func runGenerate(ctx context.Context, schemaPath, outDir, pkg, ddlPath string) error {
	s, err := load.File(schemaPath)
	if err != nil {
		return err
	}
	if err := s.Resolve(); err != nil {
		return err
	}
	g := gen.NewGenerator(s, outDir).WithPackage(pkg)
	if err := g.Generate(ctx); err != nil {
		return err
	}
	if ddlPath != "" {
		ddl := strings.Join(sqlite.CreateAll(s, true), "\n") + "\n"
		if err := os.WriteFile(ddlPath, []byte(ddl), 0o644); err != nil {
			return err
		}
	}
	color.Green("daolite: generated %d entities into %s", len(s.Entities()), outDir)
	return nil
}

// watchAndGenerate regenerates on every write to the schema file until
// the context is canceled. Generation errors are reported and do not
// stop the watch.
func watchAndGenerate(ctx context.Context, schemaPath, outDir, pkg, ddlPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops
	// a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(schemaPath)); err != nil {
		return err
	}
	color.Cyan("daolite: watching %s", schemaPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(schemaPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := runGenerate(ctx, schemaPath, outDir, pkg, ddlPath); err != nil {
				color.Red("daolite: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
