// Package output writes generated registration files, or checks that they are current.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
)

// FileSystem reads and writes generated files.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// CheckGeneratedCode compares the generated code with what is on disk. When they
// differ it prints a unified diff to out and returns an error wrapping ErrStale.
func CheckGeneratedCode(code, filename string, fileSys FileSystem, out io.Writer) error {
	generated := reordered(code, filename, out)

	current, err := fileSys.ReadFile(filename)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading %s: %w", filename, err)
	}

	if string(current) == generated {
		_, _ = fmt.Fprintf(out, "%s is up to date.\n", filename)

		return nil
	}

	diff := textdiff.Unified(filename+" (current)", filename+" (generated)", string(current), generated)
	_, _ = fmt.Fprintf(out, "%s\n", diff)

	return fmt.Errorf("%w: %s", ErrStale, filename)
}

// Filename returns the file bindgen writes for typeName. Registrations only
// serve tests, so the file is always a _test.go file. name overrides the
// generated_<typeName>_members base.
func Filename(typeName, name string) string {
	base := name
	if base == "" {
		base = "generated_" + typeName + "_members"
	}

	base = strings.TrimSuffix(strings.TrimSuffix(base, ".go"), "_test")

	return base + "_test.go"
}

// WriteGeneratedCode writes code to filename after reordering declarations.
func WriteGeneratedCode(code, filename string, fileSys FileSystem, out io.Writer) error {
	const generatedFilePermissions = 0o600

	err := fileSys.WriteFile(filename, []byte(reordered(code, filename, out)), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}

// ErrStale is returned by CheckGeneratedCode when the file on disk is out of date.
var ErrStale = errors.New("generated file is stale")

// reordered puts declarations in project order; on failure it warns and keeps code.
func reordered(code, filename string, out io.Writer) string {
	result, err := reorder.Source(code)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		return code
	}

	return result
}
