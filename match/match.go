// Package match provides a gomega matcher for privtest's Throws.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/privtest/match"
//	)
//
//	g.Expect(func() error { return parse("") }).To(ThrowMatching[*SyntaxError]("empty input"))
package match

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/onsi/gomega/types"
	"github.com/toejough/privtest/internal/core"
)

// ThrowMatcher runs its actual value as an action and succeeds when the action
// fails with an E as described by privtest.Throws.
type ThrowMatcher[E error] struct {
	pattern string
	check   func(E) error
	lastErr error
}

// Throw returns a matcher that succeeds when the action fails with an E.
// The action may be a func() error or a func().
func Throw[E error]() *ThrowMatcher[E] {
	return &ThrowMatcher[E]{}
}

// ThrowMatching returns a matcher that succeeds when the action fails with an E
// whose message matches pattern.
func ThrowMatching[E error](pattern string) *ThrowMatcher[E] {
	return &ThrowMatcher[E]{pattern: pattern}
}

// FailureMessage describes why the last Match failed.
func (m *ThrowMatcher[E]) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected %T to throw as described:\n\t%v", actual, m.lastErr)
}

// Match runs actual and reports whether it failed as expected. Usage errors
// (such as an invalid pattern) and errors returned by the Satisfying check are
// returned as errors rather than as a mismatch.
func (m *ThrowMatcher[E]) Match(actual any) (bool, error) {
	action, err := asAction(actual)
	if err != nil {
		return false, err
	}

	m.lastErr = core.Throws(action, m.pattern, m.check)

	switch {
	case m.lastErr == nil:
		return true, nil
	case errors.Is(m.lastErr, core.ErrAssertion):
		return false, nil
	default:
		return false, m.lastErr
	}
}

// NegatedFailureMessage is reported when the action threw but should not have.
func (m *ThrowMatcher[E]) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected %T not to throw %v", actual, reflect.TypeFor[E]())
}

// Satisfying adds a check run on the captured E after the kind and pattern
// matched. A non-nil result fails the assertion with that error.
func (m *ThrowMatcher[E]) Satisfying(check func(E) error) *ThrowMatcher[E] {
	m.check = check

	return m
}

// unexported variables.
var (
	errNotAnAction = errors.New("not an action")

	_ types.GomegaMatcher = (*ThrowMatcher[error])(nil)
)

func asAction(actual any) (func() error, error) {
	switch action := actual.(type) {
	case func() error:
		return action, nil
	case func():
		if action == nil {
			return nil, nil //nolint:nilnil // Throws reports the nil action as a usage error
		}

		return func() error {
			action()

			return nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: expected func() error or func(), got %T", errNotAnAction, actual)
	}
}
