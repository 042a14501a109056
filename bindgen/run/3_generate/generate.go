// Package generate renders the registration file for a detected target.
package generate

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	detect "github.com/toejough/privtest/bindgen/run/2_detect"
)

// ImportPath is the package generated code registers through.
const ImportPath = "github.com/toejough/privtest"

// Code renders the Go source that registers target's members from an init function.
// Code generated inside the privtest package itself refers to it unqualified.
func Code(target detect.Target) (string, error) {
	data := templateData{Target: target}
	if target.PkgName != "privtest" {
		data.Import = ImportPath
		data.Qualifier = "privtest."
	}

	var buf bytes.Buffer

	err := membersTmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to render registration for %s: %w", target.TypeName, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to format registration for %s: %w", target.TypeName, err)
	}

	return string(formatted), nil
}

type templateData struct {
	detect.Target

	Import    string
	Qualifier string
}

// unexported variables.
var (
	//nolint:gochecknoglobals // template is a hardcoded constant, parsed once
	membersTmpl = template.Must(template.New("members").Parse(membersTemplate))
)

const membersTemplate = `// Code generated by bindgen. DO NOT EDIT.

package {{.PkgName}}
{{if .Import}}
import "{{.Import}}"
{{end}}
func init() {
	{{.Qualifier}}Register[{{.TypeName}}](
{{- range .Members}}
		{{$.Qualifier}}{{if .Static}}Static{{else}}Instance{{end}}({{printf "%q" .Name}}, {{.Expr}}),
{{- end}}
	)
}
`
