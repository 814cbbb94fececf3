// Package try folds (value, error) pairs for call sites where the
// error could only be fatal anyway.
package try

// Fataler is anything with a Fatal method: log.Logger, *testing.T.
type Fataler interface {
	Fatal(...any)
}

// Either holds a (value, error) pair as one unit.
type Either[T any] struct {
	value T
	err   error
}

// To wraps the return of a (T, error) call into an Either.
func To[T any](value T, err error) Either[T] {
	return Either[T]{value: value, err: err}
}

// Get unwraps the pair.
func (e Either[T]) Get() (T, error) {
	return e.value, e.err
}

// OrFatal returns the value, or hands the error to ftl.Fatal.
//
// When ftl also has a Helper method, like *testing.T, it is called
// first so the failure is charged to the caller's line.
func (e Either[T]) OrFatal(ftl Fataler) T {
	if e.err == nil {
		return e.value
	}
	if h, ok := ftl.(interface{ Helper() }); ok {
		h.Helper()
	}
	ftl.Fatal(e.err)
	return *new(T)
}

// OrDefault returns the value, or d when the pair holds an error.
func (e Either[T]) OrDefault(d T) T {
	if e.err != nil {
		return d
	}
	return e.value
}
