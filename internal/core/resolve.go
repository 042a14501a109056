package core

import (
	"reflect"
	"strings"
)

// Request is a method lookup.
type Request struct {
	// Target is the type whose members are searched. It defaults to the dynamic
	// type of Instance.
	Target reflect.Type
	// Instance is the receiver to bind. A non-nil Instance selects instance
	// members regardless of Static.
	Instance any
	// Name is the member name. Empty means the name of the shape type.
	Name string
	// IgnoreCase retries the name comparison case-insensitively when the exact
	// comparison finds nothing.
	IgnoreCase bool
	// Static selects static members instead of instance members.
	Static bool
	// Table holds the registered members. Nil means DefaultTable().
	Table *Table
}

// Resolve finds the member of req.Target whose signature is exactly F and whose
// name is the effective name of req.
func Resolve[F any](req Request) (*Member, error) {
	return resolve(reflect.TypeFor[F](), req)
}

func (req Request) scope() (reflect.Type, bool, error) {
	if req.Instance != nil {
		if req.Target != nil {
			return req.Target, false, nil
		}

		return reflect.TypeOf(req.Instance), false, nil
	}

	if req.Target == nil {
		return nil, false, usageErrorf("a target type or an instance is required")
	}

	return req.Target, req.Static, nil
}

func (req Request) table() *Table {
	if req.Table != nil {
		return req.Table
	}

	return defaultTable
}

func firstNamed(members []*Member, name string, equal func(a, b string) bool) *Member {
	for _, m := range members {
		if equal(m.Name, name) {
			return m
		}
	}

	return nil
}

func resolve(shapeType reflect.Type, req Request) (*Member, error) {
	shape, err := ShapeOf(shapeType)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = shape.Name
	}

	if name == "" {
		return nil, usageErrorf("%v has no type name to infer a method name from", shapeType)
	}

	target, static, err := req.scope()
	if err != nil {
		return nil, err
	}

	var candidates []*Member

	for _, m := range req.table().Members(target, static) {
		if shape.accepts(m) {
			candidates = append(candidates, m)
		}
	}

	member := firstNamed(candidates, name, func(a, b string) bool { return a == b })
	if member == nil && req.IgnoreCase {
		member = firstNamed(candidates, name, strings.EqualFold)
	}

	if member == nil {
		return nil, &NotFoundError{Target: target, Name: name, Shape: shapeType, Static: static}
	}

	err = verifyIndirectKinds(shape, member)
	if err != nil {
		return nil, err
	}

	return member, nil
}

// verifyIndirectKinds checks every by-reference and output position of shape
// against member, so a ref never lands on an out parameter or the reverse.
func verifyIndirectKinds(shape Shape, member *Member) error {
	for i, want := range shape.Params {
		if want.Kind == ByValue {
			continue
		}

		if i >= len(member.Params) {
			return &KindMismatchError{Member: member.Name, Position: i, Got: ByValue, Want: want.Kind}
		}

		if got := member.Params[i].Kind; got != want.Kind {
			return &KindMismatchError{Member: member.Name, Position: i, Got: got, Want: want.Kind}
		}
	}

	return nil
}
