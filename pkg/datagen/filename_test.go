package datagen_test

import (
	"path/filepath"
	"testing"

	"github.com/akshay120860/tensor2tensor/pkg/datagen"
	"github.com/akshay120860/tensor2tensor/pkg/utils/cmp"
)

func TestShardedName(t *testing.T) {
	t.Run("it pads shard numbers to 5 digits", func(t *testing.T) {
		actual := datagen.ShardedName("problem-train", 3, 10)
		expected := "problem-train-00003-of-00010"
		if actual != expected {
			t.Errorf("unmatch: (actual, expected) = (%s, %s)", actual, expected)
		}
	})

	t.Run("it keeps wide shard counts readable", func(t *testing.T) {
		actual := datagen.ShardedName("corpus", 99999, 100000)
		expected := "corpus-99999-of-100000"
		if actual != expected {
			t.Errorf("unmatch: (actual, expected) = (%s, %s)", actual, expected)
		}
	})
}

func TestFilenames(t *testing.T) {
	t.Run("train filenames enumerate every shard under the data dir", func(t *testing.T) {
		actual := datagen.TrainFiles("algo", "/data", 3)
		expected := []string{
			filepath.Join("/data", "algo-train-00000-of-00003"),
			filepath.Join("/data", "algo-train-00001-of-00003"),
			filepath.Join("/data", "algo-train-00002-of-00003"),
		}
		if !cmp.SliceEq(actual, expected) {
			t.Errorf("unmatch: (actual, expected) = (%v, %v)", actual, expected)
		}
	})

	t.Run("dev filenames are named dev", func(t *testing.T) {
		actual := datagen.DevFiles("algo", "/data", 1)
		expected := []string{filepath.Join("/data", "algo-dev-00000-of-00001")}
		if !cmp.SliceEq(actual, expected) {
			t.Errorf("unmatch: (actual, expected) = (%v, %v)", actual, expected)
		}
	})

	t.Run("combined filenames are n-2 train, 1 dev and 1 test", func(t *testing.T) {
		actual := datagen.CombinedFiles("corpus", "/data", 5)
		expected := []string{
			filepath.Join("/data", "corpus-train-00000-of-00003"),
			filepath.Join("/data", "corpus-train-00001-of-00003"),
			filepath.Join("/data", "corpus-train-00002-of-00003"),
			filepath.Join("/data", "corpus-dev-00000-of-00001"),
			filepath.Join("/data", "corpus-test-00000-of-00001"),
		}
		if !cmp.SliceEq(actual, expected) {
			t.Errorf("unmatch: (actual, expected) = (%v, %v)", actual, expected)
		}
	})

	t.Run("combined filenames always count n paths", func(t *testing.T) {
		for _, n := range []int{3, 10, 1000} {
			actual := datagen.CombinedFiles("corpus", "/data", n)
			if len(actual) != n {
				t.Errorf("unmatch (n = %d): (actual, expected) = (%d, %d)", n, len(actual), n)
			}
		}
	})
}

func TestFinalName(t *testing.T) {
	t.Run("it strips the unshuffled mark", func(t *testing.T) {
		unshuffled := filepath.Join("/data", "algo"+datagen.UnshuffledSuffix+"-train-00000-of-00003")
		actual := datagen.FinalName(unshuffled)
		expected := filepath.Join("/data", "algo-train-00000-of-00003")
		if actual != expected {
			t.Errorf("unmatch: (actual, expected) = (%s, %s)", actual, expected)
		}
	})

	t.Run("it leaves names without the mark as they are", func(t *testing.T) {
		name := filepath.Join("/data", "algo-train-00000-of-00003")
		if actual := datagen.FinalName(name); actual != name {
			t.Errorf("unmatch: (actual, expected) = (%s, %s)", actual, name)
		}
	})

	t.Run("it does not touch directory names", func(t *testing.T) {
		unshuffled := filepath.Join("/data"+datagen.UnshuffledSuffix, "algo"+datagen.UnshuffledSuffix+"-dev-00000-of-00001")
		actual := datagen.FinalName(unshuffled)
		expected := filepath.Join("/data"+datagen.UnshuffledSuffix, "algo-dev-00000-of-00001")
		if actual != expected {
			t.Errorf("unmatch: (actual, expected) = (%s, %s)", actual, expected)
		}
	})
}
