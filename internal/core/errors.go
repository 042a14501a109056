package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinels for errors.Is classification. The concrete error types below carry
// the exact messages callers compare against.
var (
	ErrAssertion = errors.New("assertion failed")
	ErrNotFound  = errors.New("method not found")
	ErrUsage     = errors.New("usage error")
)

// AssertionError reports that an expectation checked by Throws did not hold.
type AssertionError struct {
	Msg   string
	Cause error
}

func (e *AssertionError) Error() string { return e.Msg }

// Is reports whether target is ErrAssertion.
func (e *AssertionError) Is(target error) bool { return target == ErrAssertion }

func (e *AssertionError) Unwrap() error { return e.Cause }

// KindMismatchError reports that a by-reference position of a shape landed on an
// output-only parameter of the resolved member, or the other way around.
// It is a refinement of NotFoundError.
type KindMismatchError struct {
	Member   string
	Position int
	Got      ParamKind
	Want     ParamKind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf(
		"Target method %s parameter at position %d is %s but shape parameter at position %d is %s",
		e.Member, e.Position, e.Got, e.Position, e.Want,
	)
}

// Is reports whether target is ErrNotFound.
func (e *KindMismatchError) Is(target error) bool { return target == ErrNotFound }

// NotFoundError reports that no member of the target type matched both the shape
// and the effective name.
type NotFoundError struct {
	Target reflect.Type
	Name   string
	Shape  reflect.Type
	Static bool
}

func (e *NotFoundError) Error() string {
	scope := "instance"
	if e.Static {
		scope = "static"
	}

	return fmt.Sprintf("No matching method found on target type %v: %s %s %v", e.Target, scope, e.Name, e.Shape)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PanicError wraps a non-error value recovered from a panicking action.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// UsageError reports that the API was called with invalid arguments.
type UsageError struct {
	Msg   string
	Cause error
}

func (e *UsageError) Error() string { return e.Msg }

// Is reports whether target is ErrUsage.
func (e *UsageError) Is(target error) bool { return target == ErrUsage }

func (e *UsageError) Unwrap() error { return e.Cause }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// kindName returns the simple name of an error's type: pointer stars stripped,
// package path dropped, "error" for the bare interface.
func kindName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}

	if name := t.Name(); name != "" {
		return stripTypeArgs(name)
	}

	return t.String()
}

// stripTypeArgs turns "Foo[int]" into "Foo".
func stripTypeArgs(name string) string {
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		return name[:idx]
	}

	return name
}
