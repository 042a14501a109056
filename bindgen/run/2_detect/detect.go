// Package detect finds the members of a type that bindgen should register.
package detect

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/dave/dst"
	load "github.com/toejough/privtest/bindgen/run/1_load"
)

// Directives recognized in the doc comment of a function or method.
const (
	// NameDirective registers the member under a different name:
	//	//privtest:name Resize
	NameDirective = "//privtest:name"
	// StaticDirective marks a package-level function as a static member of a type:
	//	//privtest:static widget
	StaticDirective = "//privtest:static"
)

// Member is one registration to generate.
type Member struct {
	Name   string // registered name
	Expr   string // Go expression for the function value
	Static bool
}

// Target is a type and the members found for it.
type Target struct {
	PkgName  string
	TypeName string
	Members  []Member
}

// Members collects the registrations for typeName: every method declared with
// a typeName or *typeName receiver, and every function tagged with
// StaticDirective for typeName. Members are returned in file order, then
// declaration order.
func Members(files []load.File, typeName string) (Target, error) {
	target, err := findType(files, typeName)
	if err != nil {
		return Target{}, err
	}

	for _, file := range files {
		for _, decl := range file.AST.Decls {
			funcDecl, ok := decl.(*dst.FuncDecl)
			if !ok {
				continue
			}

			member, ok, err := memberOf(funcDecl, typeName)
			if err != nil {
				return Target{}, fmt.Errorf("%s: %w", file.Name, err)
			}

			if ok {
				target.Members = append(target.Members, member)
			}
		}
	}

	if len(target.Members) == 0 {
		return Target{}, fmt.Errorf("%w: %s", errNoMembers, typeName)
	}

	return target, nil
}

// unexported variables.
var (
	errGeneric      = errors.New("generic declarations cannot be registered")
	errNoMembers    = errors.New("no methods or static functions found for type")
	errTypeNotFound = errors.New("type not found")
)

// directive returns the argument of the first doc-comment line starting with
// name, if any.
func directive(funcDecl *dst.FuncDecl, name string) (string, bool) {
	for _, line := range funcDecl.Decs.Start.All() {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != name {
			continue
		}

		if len(fields) < 2 { //nolint:mnd // directive plus one argument
			return "", true
		}

		return fields[1], true
	}

	return "", false
}

func findType(files []load.File, typeName string) (Target, error) {
	for _, file := range files {
		for _, decl := range file.AST.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if !ok || typeSpec.Name.Name != typeName {
					continue
				}

				if typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0 {
					return Target{}, fmt.Errorf("%w: type %s", errGeneric, typeName)
				}

				return Target{PkgName: file.AST.Name.Name, TypeName: typeName}, nil
			}
		}
	}

	return Target{}, fmt.Errorf("%w: %s", errTypeNotFound, typeName)
}

// matchesReceiverType checks if the receiver type expression matches the given type name.
// Handles both value receivers (T) and pointer receivers (*T).
func matchesReceiverType(expr dst.Expr, typeName string) bool {
	switch recv := expr.(type) {
	case *dst.Ident:
		return recv.Name == typeName
	case *dst.StarExpr:
		if ident, ok := recv.X.(*dst.Ident); ok {
			return ident.Name == typeName
		}
	}

	return false
}

func memberOf(funcDecl *dst.FuncDecl, typeName string) (Member, bool, error) {
	goName := funcDecl.Name.Name

	name, renamed := directive(funcDecl, NameDirective)
	if !renamed || name == "" {
		name = goName
	}

	if funcDecl.Recv != nil && len(funcDecl.Recv.List) > 0 {
		if !matchesReceiverType(funcDecl.Recv.List[0].Type, typeName) {
			return Member{}, false, nil
		}

		if _, pointer := funcDecl.Recv.List[0].Type.(*dst.StarExpr); pointer {
			return Member{Name: name, Expr: "(*" + typeName + ")." + goName}, true, nil
		}

		return Member{Name: name, Expr: typeName + "." + goName}, true, nil
	}

	staticFor, tagged := directive(funcDecl, StaticDirective)
	if !tagged || staticFor != typeName {
		return Member{}, false, nil
	}

	if funcDecl.Type.TypeParams != nil && len(funcDecl.Type.TypeParams.List) > 0 {
		return Member{}, false, fmt.Errorf("%w: function %s", errGeneric, goName)
	}

	return Member{Name: name, Expr: goName, Static: true}, true, nil
}
