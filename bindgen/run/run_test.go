package run_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/toejough/privtest/bindgen/run"
	load "github.com/toejough/privtest/bindgen/run/1_load"
	output "github.com/toejough/privtest/bindgen/run/4_output"
)

const widgetSource = `package widget_test

type widget struct{}

func (w *widget) resize(width, height int) error { return nil }

//privtest:static widget
//privtest:name New
func newWidget() *widget { return &widget{} }
`

const wantGenerated = `// Code generated by bindgen. DO NOT EDIT.

package widget_test

import "github.com/toejough/privtest"

func init() {
	privtest.Register[widget](
		privtest.Instance("resize", (*widget).resize),
		privtest.Static("New", newWidget),
	)
}
`

func TestRun_WritesRegistration(t *testing.T) {
	t.Parallel()

	fileSys := newMemFS()
	loader := &sourceLoader{t: t, sources: []string{widgetSource}}

	var out bytes.Buffer

	err := run.Run([]string{"bindgen", "widget"}, env("widget"), fileSys, loader, &out)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	got := fileSys.files["generated_widget_members_test.go"]
	if got != wantGenerated {
		t.Errorf("Run() wrote:\n%s\nwant:\n%s", got, wantGenerated)
	}

	if loader.dir != "." {
		t.Errorf("Run() loaded %q, want the current directory", loader.dir)
	}

	if !strings.Contains(out.String(), "written successfully") {
		t.Errorf("Run() output = %q", out.String())
	}
}

func TestRun_NameFlagChoosesFile(t *testing.T) {
	t.Parallel()

	fileSys := newMemFS()
	loader := &sourceLoader{t: t, sources: []string{widgetSource}}

	err := run.Run([]string{"bindgen", "widget", "--name", "widget_bindings"}, env(""), fileSys, loader, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if _, ok := fileSys.files["widget_bindings_test.go"]; !ok {
		t.Errorf("Run() wrote %v, want widget_bindings_test.go", fileSys.files)
	}
}

func TestRun_CheckReportsStaleFile(t *testing.T) {
	t.Parallel()

	fileSys := newMemFS()
	fileSys.files["generated_widget_members_test.go"] = "package widget_test\n"
	loader := &sourceLoader{t: t, sources: []string{widgetSource}}

	var out bytes.Buffer

	err := run.Run([]string{"bindgen", "--check", "widget"}, env("widget"), fileSys, loader, &out)
	if !errors.Is(err, output.ErrStale) {
		t.Fatalf("Run() error = %v, want ErrStale", err)
	}

	if fileSys.files["generated_widget_members_test.go"] != "package widget_test\n" {
		t.Error("Run() --check modified the file")
	}

	if !strings.Contains(out.String(), "+func init() {") {
		t.Errorf("Run() output should contain a diff, got %q", out.String())
	}

	fileSys.files["generated_widget_members_test.go"] = wantGenerated

	err = run.Run([]string{"bindgen", "--check", "widget"}, env("widget"), fileSys, loader, &bytes.Buffer{})
	if err != nil {
		t.Errorf("Run() --check on a current file: %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		pkg     string
		loadErr error
		wantErr string
	}{
		{
			name:    "missing type argument",
			args:    []string{"bindgen"},
			wantErr: "failed to parse arguments",
		},
		{
			name:    "unknown flag",
			args:    []string{"bindgen", "widget", "--bogus"},
			wantErr: "failed to parse arguments",
		},
		{
			name:    "load failure",
			args:    []string{"bindgen", "widget"},
			loadErr: errors.New("no disk"),
			wantErr: "failed to load package",
		},
		{
			name:    "unknown type",
			args:    []string{"bindgen", "gadget"},
			wantErr: "type not found",
		},
		{
			name:    "wrong package",
			args:    []string{"bindgen", "widget"},
			pkg:     "gadget",
			wantErr: "must run in the package that declares the type",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fileSys := newMemFS()
			loader := &sourceLoader{t: t, sources: []string{widgetSource}, err: testCase.loadErr}

			err := run.Run(testCase.args, env(testCase.pkg), fileSys, loader, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), testCase.wantErr) {
				t.Errorf("Run() error = %v, want it to contain %q", err, testCase.wantErr)
			}

			if len(fileSys.files) != 0 {
				t.Errorf("Run() wrote %v on error", fileSys.files)
			}
		})
	}
}

func env(goPackage string) func(string) string {
	return func(key string) string {
		if key == "GOPACKAGE" {
			return goPackage
		}

		return ""
	}
}

// memFS is an in-memory FileSystem.
type memFS struct {
	files map[string]string
}

func newMemFS() *memFS {
	return &memFS{files: map[string]string{}}
}

func (m *memFS) ReadFile(name string) ([]byte, error) {
	content, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, os.ErrNotExist)
	}

	return []byte(content), nil
}

func (m *memFS) WriteFile(name string, data []byte, _ os.FileMode) error {
	m.files[name] = string(data)

	return nil
}

// sourceLoader parses in-memory sources instead of a directory.
type sourceLoader struct {
	t       *testing.T
	sources []string
	err     error
	dir     string
}

func (l *sourceLoader) Load(dir string) ([]load.File, error) {
	l.t.Helper()

	l.dir = dir

	if l.err != nil {
		return nil, l.err
	}

	files := make([]load.File, 0, len(l.sources))

	for i, src := range l.sources {
		file, err := load.Source(fmt.Sprintf("source%d.go", i), src)
		if err != nil {
			l.t.Fatalf("failed to parse source %d: %v", i, err)
		}

		files = append(files, file)
	}

	return files, nil
}
