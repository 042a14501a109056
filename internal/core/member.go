package core

import (
	"go/token"
	"reflect"
	"runtime"
	"strings"
)

// Member is a method or static function discovered on a target type for one
// lookup. Instance members take the receiver as the first argument of their
// function; Params excludes it.
type Member struct {
	Target     reflect.Type
	Name       string
	Static     bool
	Visibility Visibility
	Params     []Param
	Results    []reflect.Type
	Variadic   bool
	Receiver   reflect.Type

	fn reflect.Value
}

func (m *Member) String() string {
	scope := "instance"
	if m.Static {
		scope = "static"
	}

	return scope + " " + m.Target.String() + "." + m.Name + signature(m.Params, m.Results, m.Variadic)
}

// call invokes the member. recv is ignored for static members.
func (m *Member) call(recv reflect.Value, args []reflect.Value) []reflect.Value {
	in := make([]reflect.Value, 0, len(args)+1)

	if !m.Static {
		in = append(in, recv)
	}

	in = append(in, args...)

	if m.Variadic {
		return m.fn.CallSlice(in)
	}

	return m.fn.Call(in)
}

// Visibility is whether a member's Go identifier is exported.
type Visibility int

// Visibility values.
const (
	NonPublic Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}

	return "non-public"
}

func newMember(target reflect.Type, name string, static bool, fn reflect.Value) *Member {
	fnType := fn.Type()
	member := &Member{
		Target:     target,
		Name:       name,
		Static:     static,
		Visibility: declaredVisibility(fn),
		Results:    resultsOf(fnType),
		Variadic:   fnType.IsVariadic(),
		fn:         fn,
	}

	if static {
		member.Params = paramsOf(fnType, 0)
	} else {
		member.Receiver = fnType.In(0)
		member.Params = paramsOf(fnType, 1)
	}

	return member
}

// declaredVisibility reads the Go identifier behind fn from the runtime symbol
// table: "pkg.name", "pkg.(*T).name" or "pkg.T.name". Closures ("pkg.init.func1")
// count as non-public.
func declaredVisibility(fn reflect.Value) Visibility {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return NonPublic
	}

	symbol := strings.TrimSuffix(strings.TrimSuffix(f.Name(), "-fm"), "[...]")
	if idx := strings.LastIndexByte(symbol, '.'); idx >= 0 {
		symbol = symbol[idx+1:]
	}

	if token.IsExported(symbol) {
		return Public
	}

	return NonPublic
}
