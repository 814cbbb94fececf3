package path_test

import (
	"os"
	"path/filepath"
	"testing"

	kpath "github.com/akshay120860/tensor2tensor/pkg/utils/path"
)

func TestResolve(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal("can not get home dir:", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal("can not get workdir:", err)
	}

	theory := func(input string, expected string) func(*testing.T) {
		return func(t *testing.T) {
			actual, err := kpath.Resolve(input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if actual != expected {
				t.Errorf("resolved wrong: (actual, expected) = (%s, %s)", actual, expected)
			}
		}
	}

	t.Run(
		"an absolute path is kept as it is",
		theory("/a/b/c", "/a/b/c"),
	)
	t.Run(
		"a leading ~/ becomes the user home",
		theory("~/a/b/c", filepath.Join(home, "a", "b", "c")),
	)
	t.Run(
		"a relative path is anchored at the working directory",
		theory("./a/b/c", filepath.Join(wd, "a", "b", "c")),
	)
	t.Run(
		"dot-dots are cleaned away",
		theory("/a/x/../y/z/../../b/c/d/..", "/a/b/c"),
	)
	t.Run(
		"a relative path is cleaned too",
		theory("../a/x/../y/z/../../b/c/d/..", filepath.Join(filepath.Dir(wd), "a", "b", "c")),
	)
	t.Run(
		"dot-dots beyond the root stop at the root",
		theory("/a/b/c/../../../../", "/"),
	)
}
