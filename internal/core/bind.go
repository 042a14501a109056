package core

import (
	"reflect"
)

// Bind resolves req against F and returns a function of type F that calls the
// member. Static members need no instance; instance members are bound to
// req.Instance. Results, panics and writes through Ref and Out parameters pass
// through unchanged.
func Bind[F any](req Request) (F, error) {
	var zero F

	shapeType := reflect.TypeFor[F]()

	member, err := resolve(shapeType, req)
	if err != nil {
		return zero, err
	}

	bound, err := member.bind(shapeType, req.Instance)
	if err != nil {
		return zero, err
	}

	//nolint:forcetypeassert // bound was built from F's own type
	return bound.Interface().(F), nil
}

func (m *Member) bind(shapeType reflect.Type, instance any) (reflect.Value, error) {
	if m.Static {
		// Signatures are identical after resolution, so the underlying func types are too.
		return m.fn.Convert(shapeType), nil
	}

	if instance == nil {
		return reflect.Value{}, usageErrorf("binding %v requires an instance", m)
	}

	recv := reflect.ValueOf(instance)
	if !recv.Type().AssignableTo(m.Receiver) && recv.Kind() == reflect.Pointer &&
		recv.Type().Elem().AssignableTo(m.Receiver) {
		if recv.IsNil() {
			return reflect.Value{}, usageErrorf("binding %v to a nil %v", m, recv.Type())
		}

		// Value receivers see a copy, as calling the method on the pointer would.
		recv = recv.Elem()
	}

	if !recv.Type().AssignableTo(m.Receiver) {
		return reflect.Value{}, usageErrorf(
			"instance of type %v cannot be bound to %v with receiver %v", recv.Type(), m, m.Receiver,
		)
	}

	return reflect.MakeFunc(shapeType, func(args []reflect.Value) []reflect.Value {
		return m.call(recv, args)
	}), nil
}
