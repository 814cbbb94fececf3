package datagen

import (
	"fmt"
	"path/filepath"
	"strings"
)

// UnshuffledSuffix marks shard files holding records in generation
// order. ShuffleDataset strips it when writing the final files.
const UnshuffledSuffix = "-unshuffled"

// ShardedName formats the name of a single shard file.
//
// shard is zero-based and total is the number of shards in the set,
// so names read "base-00003-of-00010".
func ShardedName(base string, shard int, total int) string {
	return fmt.Sprintf("%s-%05d-of-%05d", base, shard, total)
}

func shardedFiles(base string, dir string, n int) []string {
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, ShardedName(base, i, n))
	}
	return paths
}

// TrainFiles names n training shard files for the problem base under dir.
func TrainFiles(base string, dir string, n int) []string {
	return shardedFiles(base+"-train", dir, n)
}

// DevFiles names n dev shard files for the problem base under dir.
func DevFiles(base string, dir string, n int) []string {
	return shardedFiles(base+"-dev", dir, n)
}

// TestFiles names n test shard files for the problem base under dir.
func TestFiles(base string, dir string, n int) []string {
	return shardedFiles(base+"-test", dir, n)
}

// CombinedFiles names n shard files for a problem generated as one
// corpus: n-2 training shards, then 1 dev shard, then 1 test shard.
//
// n must be at least 3.
func CombinedFiles(base string, dir string, n int) []string {
	paths := TrainFiles(base, dir, n-2)
	paths = append(paths, DevFiles(base, dir, 1)...)
	paths = append(paths, TestFiles(base, dir, 1)...)
	return paths
}

// FinalName converts the name of an unshuffled shard file into the
// name ShuffleDataset writes the shuffled records to.
func FinalName(unshuffled string) string {
	dir, base := filepath.Split(unshuffled)
	return dir + strings.Replace(base, UnshuffledSuffix, "", 1)
}
