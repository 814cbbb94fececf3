// Package slices has the generic slice and map plumbing the rest of
// the module leans on.
package slices

import (
	"sort"
)

// Map applies mapper to each element, keeping order.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for i := range sli {
		ret[i] = mapper(sli[i])
	}
	return ret
}

// MapUntilError applies mapper to each element, stopping at the
// first error. On error the partial result is dropped.
func MapUntilError[T any, R any](sli []T, mapper func(v T) (R, error)) ([]R, error) {
	ret := make([]R, len(sli))
	for i := range sli {
		r, err := mapper(sli[i])
		if err != nil {
			return nil, err
		}
		ret[i] = r
	}
	return ret, nil
}

// KeysOf lists the keys of m, in no particular order.
func KeysOf[T any, K comparable](m map[K]T) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// Filter keeps the elements p holds for. It always returns a
// non-nil slice.
func Filter[T any](sli []T, p func(T) bool) []T {
	ret := []T{}
	for _, v := range sli {
		if p(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// First finds the first element p holds for, or (zero, false).
func First[T any](sli []T, p func(T) bool) (T, bool) {
	for _, v := range sli {
		if p(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// ApplyAll threads value through each modifier in order.
func ApplyAll[T any](value *T, modifier ...func(*T) *T) *T {
	for _, mod := range modifier {
		value = mod(value)
	}
	return value
}

// Sorted returns a copy of sli ordered by less. The sort is not
// stable.
func Sorted[T any](sli []T, less func(a, b T) bool) []T {
	sorted := make([]T, len(sli))
	copy(sorted, sli)
	sort.Slice(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// Concat joins slices into one, in the order given.
func Concat[T any](sli ...[]T) []T {
	size := 0
	for _, s := range sli {
		size += len(s)
	}
	ret := make([]T, 0, size)
	for _, s := range sli {
		ret = append(ret, s...)
	}
	return ret
}

// Group splits s into the elements p holds for and the rest,
// keeping order within each part.
func Group[T any](s []T, p func(T) bool) (match []T, rest []T) {
	for _, v := range s {
		if p(v) {
			match = append(match, v)
		} else {
			rest = append(rest, v)
		}
	}
	return match, rest
}
