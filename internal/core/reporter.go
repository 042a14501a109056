package core

// TestReporter is the minimal interface privtest needs from test frameworks.
// *testing.T and *testing.B satisfy it.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// MustBind is Bind that fails the test instead of returning an error.
func MustBind[F any](t TestReporter, req Request) F {
	t.Helper()

	bound, err := Bind[F](req)
	if err != nil {
		t.Fatalf("%v", err)
	}

	return bound
}

// RequireThrows is Throws that fails the test instead of returning an error.
func RequireThrows[E error](t TestReporter, action func() error, pattern string, check func(E) error) {
	t.Helper()

	err := Throws(action, pattern, check)
	if err != nil {
		t.Fatalf("%v", err)
	}
}
