// bindgen generates privtest registrations for a type's methods, including
// unexported ones, so tests can bind them by signature.
// To use it, install it with `go install github.com/toejough/privtest/bindgen@latest`
// and next to the type add a `//go:generate bindgen <Type>` comment. Package-level
// functions tagged `//privtest:static <Type>` are registered as static members,
// and `//privtest:name <Name>` registers a function or method under another name.
// The registration is written to generated_<Type>_members_test.go in the same package.
package main

import (
	"fmt"
	"os"

	"github.com/toejough/privtest/bindgen/run"
	load "github.com/toejough/privtest/bindgen/run/1_load"
)

// main is the entry point of the bindgen tool.
func main() {
	if os.Args == nil {
		return
	}

	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements FileSystem using os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements PackageLoader by parsing the directory with DST.
type realPackageLoader struct{}

// Load parses the .go files in dir.
func (pl *realPackageLoader) Load(dir string) ([]load.File, error) {
	files, err := load.Dir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %q: %w", dir, err)
	}

	return files, nil
}
