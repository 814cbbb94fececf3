package slices_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/akshay120860/tensor2tensor/pkg/utils/cmp"
	"github.com/akshay120860/tensor2tensor/pkg/utils/slices"
)

func TestSliceUtils(t *testing.T) {
	t.Run("Map maps slice to another", func(t *testing.T) {
		input := []int{3, 5, 7, 11}
		called := 0
		mapper := func(v int) int {
			called += 1
			return v * 2
		}
		output := slices.Map(input, mapper)

		if called != len(input) {
			t.Errorf("mapper has not been called enough. (actual, expected) = (%d, %d)", called, len(input))
		}

		expected := []int{6, 10, 14, 22}
		if !cmp.SliceEq(output, expected) {
			t.Errorf("mapped result is wrong. (actual, expected) = (%v, %v)", output, expected)
		}
	})

	t.Run("MapUntilError maps whole slice when no error caused", func(t *testing.T) {
		input := []string{"1", "2", "3"}
		output, err := slices.MapUntilError(input, func(v string) (string, error) {
			return v + v, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := []string{"11", "22", "33"}
		if !cmp.SliceEq(output, expected) {
			t.Errorf("mapped result is wrong. (actual, expected) = (%v, %v)", output, expected)
		}
	})

	t.Run("MapUntilError stops at first error", func(t *testing.T) {
		expectedErr := errors.New("boom")
		input := []int{1, 2, 3, 4}
		called := 0
		_, err := slices.MapUntilError(input, func(v int) (int, error) {
			called += 1
			if v == 3 {
				return 0, expectedErr
			}
			return v, nil
		})
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
		if called != 3 {
			t.Errorf("mapper should be called until first error. (actual, expected) = (%d, %d)", called, 3)
		}
	})

	t.Run("KeysOf makes slice from keys of map", func(t *testing.T) {
		input := map[string]int{"a": 1, "b": 2, "c": 3}
		keys := slices.KeysOf(input)

		expected := []string{"a", "b", "c"}
		if !cmp.SliceContentEq(keys, expected) {
			t.Errorf("KeysOf is wrong. (actual, expected) = (%v, %v)", keys, expected)
		}
	})

	t.Run("Filter filters by predicator", func(t *testing.T) {
		input := []int{1, 2, 3, 4, 5, 6}
		output := slices.Filter(input, func(v int) bool { return v%2 == 0 })

		expected := []int{2, 4, 6}
		if !cmp.SliceEq(output, expected) {
			t.Errorf("filtered result is wrong. (actual, expected) = (%v, %v)", output, expected)
		}
	})

	t.Run("First finds first matching element", func(t *testing.T) {
		input := []string{"alpha", "beta", "gamma"}
		found, ok := slices.First(input, func(v string) bool { return len(v) == 4 })
		if !ok {
			t.Fatal("First should find an element")
		}
		if found != "beta" {
			t.Errorf("First found wrong element. (actual, expected) = (%s, %s)", found, "beta")
		}

		_, ok = slices.First(input, func(v string) bool { return v == "delta" })
		if ok {
			t.Error("First should not find any element")
		}
	})

	t.Run("Sorted sorts a copy of slice", func(t *testing.T) {
		input := []int{5, 3, 1, 4, 2}
		output := slices.Sorted(input, func(a, b int) bool { return a < b })

		if !cmp.SliceEq(output, []int{1, 2, 3, 4, 5}) {
			t.Errorf("sorted result is wrong: %v", output)
		}
		if !cmp.SliceEq(input, []int{5, 3, 1, 4, 2}) {
			t.Errorf("input should not be changed: %v", input)
		}
	})

	t.Run("Concat concatenates slices in order", func(t *testing.T) {
		output := slices.Concat([]int{1, 2}, []int{}, []int{3}, []int{4, 5})
		expected := []int{1, 2, 3, 4, 5}
		if !cmp.SliceEq(output, expected) {
			t.Errorf("concatenated result is wrong. (actual, expected) = (%v, %v)", output, expected)
		}
	})

	t.Run("Group groups elements by predicator", func(t *testing.T) {
		input := []int{1, 2, 3, 4, 5}
		match, notmatch := slices.Group(input, func(v int) bool { return v <= 2 })

		if !cmp.SliceEq(match, []int{1, 2}) {
			t.Errorf("match part is wrong: %v", match)
		}
		if !cmp.SliceEq(notmatch, []int{3, 4, 5}) {
			t.Errorf("notmatch part is wrong: %v", notmatch)
		}
	})

	t.Run("ApplyAll applies modifiers left to right", func(t *testing.T) {
		type conf struct{ trace []string }
		mod := func(name string) func(*conf) *conf {
			return func(c *conf) *conf {
				c.trace = append(c.trace, name)
				return c
			}
		}
		c := slices.ApplyAll(&conf{}, mod("a"), mod("b"), mod("c"))
		if !cmp.SliceEq(c.trace, []string{"a", "b", "c"}) {
			t.Errorf("modifiers are applied in wrong order: %v", c.trace)
		}
	})
}

func ExampleMap() {
	fmt.Println(slices.Map([]int{1, 2, 3}, func(v int) int { return v * v }))
	// Output: [1 4 9]
}
