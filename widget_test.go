package privtest_test

import (
	"fmt"
	"reflect"

	"github.com/toejough/privtest"
)

//go:generate bindgen widget

// Shapes for widget's members. Suffixes tell apart overloads registered under
// one name.
//
//nolint:revive,staticcheck // underscores separate the member name from the overload suffix
type (
	Name         func() string
	New          func(name string) *widget
	Scale_ref    func(v privtest.Ref[int])
	Scale_out    func(in int, out privtest.Out[int])
	area         func() int
	dims         func() (width, height int)
	label        func() string
	label_prefix func(prefix string) string
	mustResize   func(width, height int)
	resize       func(width, height int) error
)

type sizeError struct {
	width, height int
}

func (e *sizeError) Error() string {
	return fmt.Sprintf("invalid size %dx%d", e.width, e.height)
}

// widget keeps everything but Name unexported.
type widget struct {
	name          string
	width, height int
}

// Name is exported, so reflection finds it even without registration.
func (w *widget) Name() string { return w.name }

func (w *widget) area() int { return w.width * w.height }

func (w *widget) label() string { return fmt.Sprintf("%s %dx%d", w.name, w.width, w.height) }

//privtest:name label
func (w *widget) labelWith(prefix string) string { return prefix + w.label() }

func (w *widget) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return &sizeError{width: width, height: height}
	}

	w.width, w.height = width, height

	return nil
}

func (w *widget) mustResize(width, height int) {
	err := w.resize(width, height)
	if err != nil {
		panic(err)
	}
}

// dims has a value receiver, so it is in both widget's and *widget's method sets.
func (w widget) dims() (width, height int) { return w.width, w.height }

// unexported variables.
var (
	//nolint:gochecknoglobals // fixture type identity
	widgetType = reflect.TypeFor[*widget]()
)

//privtest:static widget
//privtest:name New
func newWidget(name string) *widget {
	return &widget{name: name, width: 1, height: 1}
}

//privtest:static widget
//privtest:name Scale
func scaleInPlace(v privtest.Ref[int]) { *v *= 2 }

//privtest:static widget
//privtest:name Scale
func scaleInto(in int, out privtest.Out[int]) { *out = 2 * in }
