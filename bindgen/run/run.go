// Package run implements the main logic for the bindgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexflint/go-arg"
	load "github.com/toejough/privtest/bindgen/run/1_load"
	detect "github.com/toejough/privtest/bindgen/run/2_detect"
	generate "github.com/toejough/privtest/bindgen/run/3_generate"
	output "github.com/toejough/privtest/bindgen/run/4_output"
)

// Interfaces - Public

// FileSystem interface for reading and writing generated files.
type FileSystem = output.FileSystem

// PackageLoader loads the files of the package in a directory.
type PackageLoader interface {
	Load(dir string) ([]load.File, error)
}

// Functions - Public

// Run executes the bindgen tool logic. It takes command-line arguments, an
// environment variable getter, a FileSystem for file operations, a PackageLoader
// for parsing the current package, and a writer for progress output. On success
// it writes (or, with --check, verifies) a _test.go file that registers the
// target type's methods and tagged static functions with privtest.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	files, err := pkgLoader.Load(".")
	if err != nil {
		return fmt.Errorf("failed to load package: %w", err)
	}

	target, err := detect.Members(files, parsed.Type)
	if err != nil {
		return err
	}

	err = checkPackage(target, getEnv("GOPACKAGE"))
	if err != nil {
		return err
	}

	code, err := generate.Code(target)
	if err != nil {
		return err
	}

	filename := output.Filename(target.TypeName, parsed.Name)

	if parsed.Check {
		return output.CheckGeneratedCode(code, filename, fileSys, out)
	}

	return output.WriteGeneratedCode(code, filename, fileSys, out)
}

// Structs - Private

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Type  string `arg:"positional,required" help:"type whose methods and static functions to register"`
	Name  string `arg:"--name"              help:"base name of the generated file (defaults to generated_<Type>_members)"`
	Check bool   `arg:"--check"             help:"fail with a diff instead of writing when the generated file is out of date"`
}

// unexported variables.
var (
	errWrongPackage = errors.New("bindgen must run in the package that declares the type")
)

// Functions - Private

// checkPackage rejects runs from a package other than the one declaring the
// type (or its external test package), since generated code must name
// unexported identifiers.
func checkPackage(target detect.Target, goPackage string) error {
	if goPackage == "" {
		return nil
	}

	if strings.TrimSuffix(goPackage, "_test") != strings.TrimSuffix(target.PkgName, "_test") {
		return fmt.Errorf("%w: %s is declared in package %s, not %s",
			errWrongPackage, target.TypeName, target.PkgName, goPackage)
	}

	return nil
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "bindgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}
