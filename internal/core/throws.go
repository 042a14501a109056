package core

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
)

// Throws verifies that action fails with an error of kind E.
//
// A failure is either the error the action returns or a value it panics with;
// non-error panic values are captured as *PanicError. The failure is of kind E
// when errors.As finds an E in its chain.
//
// If pattern is non-empty it must match somewhere in the failure's full message,
// wrapping context included. If check is non-nil it is then called with the E
// that errors.As found and whatever it returns is returned unchanged; a panic
// inside check is not recovered.
//
// Returns nil when the expectation holds, *AssertionError when it does not, and
// *UsageError when action is nil or pattern does not compile.
func Throws[E error](action func() error, pattern string, check func(E) error) error {
	if action == nil {
		return usageErrorf("action cannot be nil")
	}

	var messageRx *regexp.Regexp

	if pattern != "" {
		rx, err := regexp.Compile(pattern)
		if err != nil {
			return &UsageError{
				Msg:   fmt.Sprintf("Error pattern '%s' is not valid regular expressions pattern", pattern),
				Cause: err,
			}
		}

		messageRx = rx
	}

	failure := capture(action)
	if failure == nil {
		return &AssertionError{Msg: "Action did not throw an exception"}
	}

	var expected E
	if !errors.As(failure, &expected) {
		return &AssertionError{
			Msg: fmt.Sprintf(
				"Action threw exception of type %s, which does not inherit from expected exception type %s",
				kindName(reflect.TypeOf(failure)), kindName(reflect.TypeFor[E]()),
			),
			Cause: failure,
		}
	}

	if messageRx != nil && !messageRx.MatchString(failure.Error()) {
		return &AssertionError{
			Msg: fmt.Sprintf(
				"Exception message '%s' did not match expected pattern '%s'",
				failure.Error(), pattern,
			),
			Cause: failure,
		}
	}

	if check != nil {
		return check(expected)
	}

	return nil
}

// capture runs action and returns the error it returned or the value it
// panicked with.
func capture(action func() error) (failure error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		if err, ok := recovered.(error); ok {
			failure = err

			return
		}

		failure = &PanicError{Value: recovered}
	}()

	return action()
}
