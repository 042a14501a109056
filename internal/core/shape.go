package core

import (
	"reflect"
	"slices"
	"strings"
)

// Out marks an output-only parameter: the callee assigns *p and the caller's
// initial value is ignored.
type Out[T any] *T

// ParamKind is how a parameter passes its value.
type ParamKind int

// ParamKind values.
const (
	ByValue ParamKind = iota
	ByRef
	Output
)

func (k ParamKind) String() string {
	switch k {
	case ByValue:
		return "value"
	case ByRef:
		return "ref"
	case Output:
		return "out"
	default:
		return "unknown"
	}
}

// Param is one parameter of a shape or member. Type is the declared type for
// ByValue parameters and the pointed-to type for ByRef and Output parameters.
type Param struct {
	Kind ParamKind
	Type reflect.Type
}

func (p Param) String() string {
	if p.Kind == ByValue {
		return p.Type.String()
	}

	return p.Kind.String() + " " + p.Type.String()
}

// Ref marks a by-reference parameter: the caller supplies *p and the callee may
// change it.
type Ref[T any] *T

// Shape is the signature a caller expects: parameter kinds and types, results,
// and the name used when no method name is given explicitly.
type Shape struct {
	Type     reflect.Type
	Name     string
	Params   []Param
	Results  []reflect.Type
	Variadic bool
}

// ShapeOf describes fnType, which must be a func type.
func ShapeOf(fnType reflect.Type) (Shape, error) {
	if fnType == nil {
		return Shape{}, usageErrorf("<nil> is not a function type")
	}

	if fnType.Kind() != reflect.Func {
		return Shape{}, usageErrorf("%v is not a function type", fnType)
	}

	return Shape{
		Type:     fnType,
		Name:     stripTypeArgs(fnType.Name()),
		Params:   paramsOf(fnType, 0),
		Results:  resultsOf(fnType),
		Variadic: fnType.IsVariadic(),
	}, nil
}

// accepts reports whether m has exactly this signature: same count, order,
// type and kind of parameters, same variadic flag, same results. Names are not
// compared.
func (s Shape) accepts(m *Member) bool {
	if s.Variadic != m.Variadic {
		return false
	}

	if !slices.Equal(s.Params, m.Params) {
		return false
	}

	return slices.Equal(s.Results, m.Results)
}

func (s Shape) String() string {
	var b strings.Builder

	if s.Name != "" {
		b.WriteString(s.Name)
	}

	b.WriteString(signature(s.Params, s.Results, s.Variadic))

	return b.String()
}

// unexported variables.
var (
	//nolint:gochecknoglobals // marker identity computed once from the marker types themselves
	markerPkg = reflect.TypeFor[Ref[int]]().PkgPath()
	//nolint:gochecknoglobals // see markerPkg
	outName = stripTypeArgs(reflect.TypeFor[Out[int]]().Name())
	//nolint:gochecknoglobals // see markerPkg
	refName = stripTypeArgs(reflect.TypeFor[Ref[int]]().Name())
)

func classify(t reflect.Type) Param {
	if t.Kind() == reflect.Pointer && t.PkgPath() == markerPkg {
		switch stripTypeArgs(t.Name()) {
		case refName:
			return Param{Kind: ByRef, Type: t.Elem()}
		case outName:
			return Param{Kind: Output, Type: t.Elem()}
		}
	}

	return Param{Kind: ByValue, Type: t}
}

// paramsOf classifies the parameters of fnType starting at index skip.
func paramsOf(fnType reflect.Type, skip int) []Param {
	params := make([]Param, 0, fnType.NumIn()-skip)

	for i := skip; i < fnType.NumIn(); i++ {
		params = append(params, classify(fnType.In(i)))
	}

	return params
}

func resultsOf(fnType reflect.Type) []reflect.Type {
	results := make([]reflect.Type, 0, fnType.NumOut())

	for i := range fnType.NumOut() {
		results = append(results, fnType.Out(i))
	}

	return results
}

// signature renders "(int, ref int, ...string) (string, error)".
func signature(params []Param, results []reflect.Type, variadic bool) string {
	parts := make([]string, 0, len(params))

	for i, p := range params {
		if variadic && i == len(params)-1 && p.Kind == ByValue {
			parts = append(parts, "..."+p.Type.Elem().String())

			continue
		}

		parts = append(parts, p.String())
	}

	out := "(" + strings.Join(parts, ", ") + ")"

	switch len(results) {
	case 0:
		return out
	case 1:
		return out + " " + results[0].String()
	default:
		names := make([]string, 0, len(results))
		for _, r := range results {
			names = append(names, r.String())
		}

		return out + " (" + strings.Join(names, ", ") + ")"
	}
}
