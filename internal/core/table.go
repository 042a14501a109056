package core

import (
	"reflect"
	"sync"
)

// DefaultTable returns the package-wide table that generated init functions
// register into. Requests with a nil Table use it.
func DefaultTable() *Table {
	return defaultTable
}

// Registration describes one member to add to a Table.
type Registration struct {
	name   string
	static bool
	fn     any
}

// Instance registers a method under name. fn is a method expression such as
// (*T).name, so its first parameter is the receiver.
func Instance(name string, fn any) Registration {
	return Registration{name: name, fn: fn}
}

// Static registers a package-level function under name as a static member.
func Static(name string, fn any) Registration {
	return Registration{name: name, static: true, fn: fn}
}

// Table maps target types to the members registered for them. Go reflection only
// sees exported methods, so non-public members reach the binder through here.
//
// Registration normally happens from init functions; lookups take a read lock
// and copy what they need, so a Table is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	entries map[reflect.Type][]entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[reflect.Type][]entry)}
}

// Members enumerates the members of target that are static (static == true) or
// instance members (static == false), in registration order. T and *T share
// one set of registrations; an instance member is listed only when its receiver
// is in target's method set, as Go defines it (T sees value receivers, *T sees
// both). Instance lookups also include target's exported method set, skipping
// methods already registered under the same name and signature.
func (t *Table) Members(target reflect.Type, static bool) []*Member {
	t.mu.RLock()
	registered := t.entries[baseType(target)]
	t.mu.RUnlock()

	members := make([]*Member, 0, len(registered))

	for _, e := range registered {
		if e.static != static {
			continue
		}

		if !static && !inMethodSet(target, e.fn.Type().In(0)) {
			continue
		}

		members = append(members, newMember(target, e.name, e.static, e.fn))
	}

	if static || target.Kind() == reflect.Interface {
		return members
	}

	for i := range target.NumMethod() {
		method := target.Method(i)
		if isRegistered(registered, method.Name, method.Type) {
			continue
		}

		members = append(members, newMember(target, method.Name, false, method.Func))
	}

	return members
}

// Register adds regs for target, which may be T or *T; both name the same
// registrations. Instance registrations may take T or *T as receiver. Either every registration is added or, if any
// is invalid, none is and a *UsageError is returned.
func (t *Table) Register(target reflect.Type, regs ...Registration) error {
	if target == nil {
		return usageErrorf("registration target cannot be nil")
	}

	entries := make([]entry, 0, len(regs))

	for _, reg := range regs {
		e, err := reg.validate(target)
		if err != nil {
			return err
		}

		entries = append(entries, e)
	}

	key := baseType(target)

	t.mu.Lock()
	t.entries[key] = append(t.entries[key], entries...)
	t.mu.Unlock()

	return nil
}

type entry struct {
	name   string
	static bool
	fn     reflect.Value
}

// unexported variables.
var (
	//nolint:gochecknoglobals // populated by generated init functions
	defaultTable = NewTable()
)

func (r Registration) validate(target reflect.Type) (entry, error) {
	if r.name == "" {
		return entry{}, usageErrorf("registration for %v has an empty name", target)
	}

	fn := reflect.ValueOf(r.fn)
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return entry{}, usageErrorf("registration %q for %v is not a function", r.name, target)
	}

	if !r.static {
		fnType := fn.Type()
		if fnType.NumIn() == 0 {
			return entry{}, usageErrorf("instance registration %q for %v has no receiver parameter", r.name, target)
		}

		base := baseType(target)
		if !base.AssignableTo(fnType.In(0)) && !reflect.PointerTo(base).AssignableTo(fnType.In(0)) {
			return entry{}, usageErrorf(
				"instance registration %q for %v takes receiver %v", r.name, target, fnType.In(0),
			)
		}
	}

	return entry{name: r.name, static: r.static, fn: fn}, nil
}

// baseType maps a pointer to a named type onto the named type, so T and *T
// share a key.
func baseType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer && t.Name() == "" && t.Elem().Name() != "" {
		return t.Elem()
	}

	return t
}

// inMethodSet reports whether a method with receiver type recv belongs to the
// method set of target. A *T target also reaches value-receiver methods.
func inMethodSet(target, recv reflect.Type) bool {
	if target.AssignableTo(recv) {
		return true
	}

	return target.Kind() == reflect.Pointer && target.Elem().AssignableTo(recv)
}

// isRegistered reports whether an instance entry already covers the method
// name with fnType's signature. Receivers are not compared: *T's method set
// repeats T's value methods with a pointer receiver.
func isRegistered(entries []entry, name string, fnType reflect.Type) bool {
	for _, e := range entries {
		if !e.static && e.name == name && sameSignature(e.fn.Type(), fnType) {
			return true
		}
	}

	return false
}

// sameSignature compares two method expressions' types, skipping the receiver.
func sameSignature(a, b reflect.Type) bool {
	if a.NumIn() != b.NumIn() || a.NumOut() != b.NumOut() || a.IsVariadic() != b.IsVariadic() {
		return false
	}

	for i := 1; i < a.NumIn(); i++ {
		if a.In(i) != b.In(i) {
			return false
		}
	}

	for i := range a.NumOut() {
		if a.Out(i) != b.Out(i) {
			return false
		}
	}

	return true
}
