package cmp

// BiPredicator relates an element of one collection to an element
// of another.
type BiPredicator[A any, B any] func(a A, b B) bool

// EqEq is == as a BiPredicator.
func EqEq[T comparable](a, b T) bool {
	return a == b
}
