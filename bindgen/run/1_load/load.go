// Package load parses the Go files of a package directory into DST.
package load

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// File is one parsed source file.
type File struct {
	Name string
	AST  *dst.File
}

// Dir parses every .go file in dir, test files included, sorted by file name.
// Files that fail to parse are skipped; bindgen only needs declarations, and the
// compiler will report the broken file anyway.
func Dir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}

		names = append(names, entry.Name())
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no .go files in %s", errNoPackagesFound, dir)
	}

	slices.Sort(names)

	dec := decorator.NewDecorator(token.NewFileSet())
	files := make([]File, 0, len(names))

	for _, name := range names {
		dstFile, err := dec.ParseFile(filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			continue
		}

		files = append(files, File{Name: name, AST: dstFile})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: failed to parse any .go files in %s", errNoPackagesFound, dir)
	}

	return files, nil
}

// Source parses a single file from memory.
func Source(name, src string) (File, error) {
	dstFile, err := decorator.NewDecorator(token.NewFileSet()).ParseFile(name, src, parser.ParseComments)
	if err != nil {
		return File{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return File{Name: name, AST: dstFile}, nil
}

// unexported variables.
var (
	errNoPackagesFound = errors.New("no packages found")
)
