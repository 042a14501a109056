package core_test

import (
	"errors"
	"reflect"
	"strings"

	"github.com/toejough/privtest/internal/core"
)

const stringConstant = "String constant"

// Shapes named after the members they target; the suffix tells overloads apart
// when the name is passed explicitly.
//
//nolint:revive,staticcheck // underscores separate the member name from the overload suffix
type (
	ProtectedStatic          func()
	ProtectedStatic_string   func(stringArg string)
	ProtectedStatic_int      func(intArg int)
	ProtectedStatic_refint   func(intArg core.Ref[int])
	ProtectedStatic_outint   func(intArg core.Out[int])
	ProtectedStatic_inoutint func(in int, out core.Out[int])
	ProtectedStatic_inrefint func(in int, out core.Ref[int])
	ProtectedStatic_params   func(intArg int, paramArgs ...any)

	PrivateStatic     func() string
	PrivateStatic_int func(count int) string

	Swap_ref func(v core.Ref[int])
	Swap_out func(v core.Out[int])
	Swap_val func(v int)

	privateInstance       func()
	privateInstance_int   func(intArg int)
	protectedInstance     func() string
	protectedInstance_int func(count int) string

	Name     func() string
	explode  func()
	failWith func(msg string) error

	Count func() int
	bump  func()
	peek  func() int
	zero  func() counter
)

// counter mixes value and pointer receivers.
type counter struct {
	n int
}

// Count is exported with a value receiver, so both counter and *counter have it.
func (c counter) Count() int { return c.n }

func (c *counter) bump() { c.n++ }

func (c counter) peek() int { return c.n }

// testClass mirrors a type with unexported statics and methods, some sharing a
// registered name.
type testClass struct {
	name string
}

// Name is exported, so reflection finds it without registration.
func (c *testClass) Name() string { return c.name }

func (c *testClass) explode() { panic(c.name + " exploded") }

func (c *testClass) failWith(msg string) error { return errors.New(c.name + ": " + msg) }

func (c *testClass) privateInstance() {}

func (c *testClass) privateInstanceInt(int) {}

func (c *testClass) protectedInstance() string { return c.name }

func (c *testClass) protectedInstanceCount(count int) string {
	return c.name + privateStaticCount(count)
}

// fixtureTable registers testClass the way bindgen's generated init would.
func fixtureTable() *core.Table {
	table := core.NewTable()

	err := table.Register(testClassType,
		core.Static("ProtectedStatic", protectedStatic),
		core.Static("ProtectedStatic", protectedStaticString),
		core.Static("ProtectedStatic", protectedStaticRef),
		core.Static("ProtectedStatic", protectedStaticOut),
		core.Static("ProtectedStatic", protectedStaticParams),
		core.Static("PrivateStatic", privateStatic),
		core.Static("PrivateStatic", privateStaticCount),
		core.Static("Swap", swapRef),
		core.Static("Swap", swapOut),
		core.Instance("privateInstance", (*testClass).privateInstance),
		core.Instance("privateInstance", (*testClass).privateInstanceInt),
		core.Instance("protectedInstance", (*testClass).protectedInstance),
		core.Instance("protectedInstance", (*testClass).protectedInstanceCount),
		core.Instance("explode", (*testClass).explode),
		core.Instance("failWith", (*testClass).failWith),
	)
	if err != nil {
		panic(err)
	}

	return table
}

// counterTable registers counter under its value type, as bindgen does.
func counterTable() *core.Table {
	table := core.NewTable()

	err := table.Register(counterType,
		core.Instance("Count", counter.Count),
		core.Instance("bump", (*counter).bump),
		core.Instance("peek", counter.peek),
		core.Static("zero", newCounter),
	)
	if err != nil {
		panic(err)
	}

	return table
}

// unexported variables.
var (
	//nolint:gochecknoglobals // fixture type identity
	testClassType = reflect.TypeFor[*testClass]()
	//nolint:gochecknoglobals // fixture type identity
	counterType = reflect.TypeFor[counter]()
)

func newCounter() counter { return counter{} }

func privateStatic() string { return stringConstant }

func privateStaticCount(count int) string {
	if count <= 0 {
		return ""
	}

	return strings.Repeat(stringConstant, count)
}

func protectedStatic() {}

func protectedStaticOut(in int, out core.Out[int]) { *out = 2 * in }

func protectedStaticParams(int, ...any) {}

func protectedStaticRef(intArg core.Ref[int]) { *intArg = 42 }

func protectedStaticString(string) {}

func swapOut(v core.Out[int]) { *v = 7 }

func swapRef(v core.Ref[int]) { *v = -*v }
