// Package privtest provides two test helpers: Throws, which checks that an
// action fails with an expected kind of error, and a method binder, which finds
// a (possibly unexported) method by the signature of a func type and returns a
// function of that type bound to it.
//
// Go reflection only reports exported methods, so unexported members are made
// visible through registration. Run bindgen from a //go:generate comment to
// write the registration for a type:
//
//	//go:generate bindgen widget
//
// and then, in a test:
//
//	type resize func(w, h int) error
//	fn := privtest.MustBind[resize](t, privtest.Request{Instance: w})
//
// This is the public API entry point. Implementation lives in internal/core.
package privtest

import (
	"reflect"

	"github.com/toejough/privtest/internal/core"
)

// AssertionError reports that an expectation checked by Throws did not hold.
type AssertionError = core.AssertionError

// KindMismatchError reports a by-reference position bound to an output
// parameter, or the reverse. It matches ErrNotFound.
type KindMismatchError = core.KindMismatchError

// Member is a method or static function found by Resolve.
type Member = core.Member

// NotFoundError reports that no member matched the shape and name.
type NotFoundError = core.NotFoundError

// Out marks an output-only parameter.
type Out[T any] = core.Out[T]

// PanicError wraps a non-error value a Throws action panicked with.
type PanicError = core.PanicError

// Param is one classified parameter of a shape or member.
type Param = core.Param

// ParamKind is how a parameter passes its value.
type ParamKind = core.ParamKind

// Ref marks a by-reference parameter.
type Ref[T any] = core.Ref[T]

// Registration describes one member to register.
type Registration = core.Registration

// Request is a method lookup.
type Request = core.Request

// Shape is the signature described by a func type.
type Shape = core.Shape

// Table maps target types to registered members.
type Table = core.Table

// TestReporter is the minimal interface privtest needs from test frameworks.
type TestReporter = core.TestReporter

// UsageError reports invalid arguments to privtest itself.
type UsageError = core.UsageError

// Visibility is whether a member's Go identifier is exported.
type Visibility = core.Visibility

// Parameter kinds and visibilities.
const (
	ByValue   = core.ByValue
	ByRef     = core.ByRef
	Output    = core.Output
	NonPublic = core.NonPublic
	Public    = core.Public
)

// Sentinels for errors.Is.
var (
	ErrAssertion = core.ErrAssertion //nolint:gochecknoglobals // re-exported sentinel
	ErrNotFound  = core.ErrNotFound  //nolint:gochecknoglobals // re-exported sentinel
	ErrUsage     = core.ErrUsage     //nolint:gochecknoglobals // re-exported sentinel
)

// Bind resolves req against F and returns a function of type F calling the member.
func Bind[F any](req Request) (F, error) {
	return core.Bind[F](req)
}

// DefaultTable returns the table used when a Request has no Table.
func DefaultTable() *Table {
	return core.DefaultTable()
}

// FindMethod resolves the method of T named like F.
func FindMethod[T, F any](static bool) (*Member, error) {
	return core.Resolve[F](Request{Target: reflect.TypeFor[T](), Static: static})
}

// FindMethodNamed resolves the method of target called name with the signature F.
func FindMethodNamed[F any](target reflect.Type, name string, static, ignoreCase bool) (*Member, error) {
	return core.Resolve[F](Request{Target: target, Name: name, Static: static, IgnoreCase: ignoreCase})
}

// FindMethodOn resolves the method of target named like F.
func FindMethodOn[F any](target reflect.Type, static bool) (*Member, error) {
	return core.Resolve[F](Request{Target: target, Static: static})
}

// Instance registers a method expression, such as (*T).name, under name.
func Instance(name string, fn any) Registration {
	return core.Instance(name, fn)
}

// MethodFunc binds the instance method of instance's type named like F.
func MethodFunc[F any](instance any) (F, error) {
	return core.Bind[F](Request{Instance: instance})
}

// MethodFuncNamed binds the instance method of target called name.
func MethodFuncNamed[F any](instance any, target reflect.Type, name string, ignoreCase bool) (F, error) {
	return core.Bind[F](Request{Instance: instance, Target: target, Name: name, IgnoreCase: ignoreCase})
}

// MethodFuncOn binds the instance method of target named like F to instance.
func MethodFuncOn[F any](instance any, target reflect.Type) (F, error) {
	return core.Bind[F](Request{Instance: instance, Target: target})
}

// MustBind is Bind that fails the test on error.
func MustBind[F any](t TestReporter, req Request) F {
	t.Helper()

	return core.MustBind[F](t, req)
}

// NewTable creates an empty registration table.
func NewTable() *Table {
	return core.NewTable()
}

// Register adds regs for T to the default table. It is meant for init functions
// and panics if a registration is invalid.
func Register[T any](regs ...Registration) {
	err := core.DefaultTable().Register(reflect.TypeFor[T](), regs...)
	if err != nil {
		panic(err)
	}
}

// RequireThrows is ThrowsMatching that fails the test instead of returning an error.
func RequireThrows[E error](t TestReporter, action func() error, pattern string, check func(E) error) {
	t.Helper()

	core.RequireThrows(t, action, pattern, check)
}

// Resolve finds the member described by req whose signature is exactly F.
func Resolve[F any](req Request) (*Member, error) {
	return core.Resolve[F](req)
}

// ShapeOf describes a func type.
func ShapeOf(fnType reflect.Type) (Shape, error) {
	return core.ShapeOf(fnType)
}

// Static registers a package-level function under name as a static member.
func Static(name string, fn any) Registration {
	return core.Static(name, fn)
}

// StaticFunc binds the static member of T named like F.
func StaticFunc[T, F any]() (F, error) {
	return core.Bind[F](Request{Target: reflect.TypeFor[T](), Static: true})
}

// StaticFuncNamed binds the static member of target called name.
func StaticFuncNamed[F any](target reflect.Type, name string, ignoreCase bool) (F, error) {
	return core.Bind[F](Request{Target: target, Name: name, Static: true, IgnoreCase: ignoreCase})
}

// StaticFuncOn binds the static member of target named like F.
func StaticFuncOn[F any](target reflect.Type) (F, error) {
	return core.Bind[F](Request{Target: target, Static: true})
}

// Throws checks that action fails with an E whose message matches pattern.
// An empty pattern accepts any message.
func Throws[E error](action func() error, pattern string) error {
	return core.Throws[E](action, pattern, nil)
}

// ThrowsMatching checks that action fails with an E whose message matches
// pattern, then returns whatever check returns for that E.
func ThrowsMatching[E error](action func() error, pattern string, check func(E) error) error {
	return core.Throws(action, pattern, check)
}

// ThrowsWith checks that action fails with an E, then returns whatever check
// returns for that E.
func ThrowsWith[E error](action func() error, check func(E) error) error {
	return core.Throws(action, "", check)
}
