package cmp

// SliceEq holds when a and b are elementwise equal.
func SliceEq[T comparable](a []T, b []T) bool {
	return SliceEqWith(a, b, EqEq[T])
}

// SliceEqWith holds when equiv relates a and b elementwise.
func SliceEqWith[T any, U any](a []T, b []U, equiv BiPredicator[T, U]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equiv(a[i], b[i]) {
			return false
		}
	}
	return true
}

// SliceContentEq holds when a and b are the same bag: each value
// occurs in both the same number of times, in any order.
func SliceContentEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	count := map[T]int{}
	for _, v := range a {
		count[v] += 1
	}
	for _, v := range b {
		count[v] -= 1
		if count[v] < 0 {
			return false
		}
	}
	return true
}
