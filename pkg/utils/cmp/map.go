package cmp

// MapEq holds when a and b have the same keys with equal values.
func MapEq[K comparable, V comparable](a map[K]V, b map[K]V) bool {
	return MapEqWith(a, b, EqEq[V])
}

// MapEqWith holds when a and b have the same keys and equiv relates
// their values key by key.
func MapEqWith[K comparable, V any, U any](a map[K]V, b map[K]U, equiv BiPredicator[V, U]) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !equiv(va, vb) {
			return false
		}
	}
	return true
}
