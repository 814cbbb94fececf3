package utils_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akshay120860/tensor2tensor/pkg/utils"
)

func TestFindUpward(t *testing.T) {
	t.Run("it finds a file in the start directory", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, "datagenenv")
		if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
			t.Fatal(err)
		}

		found, err := utils.FindUpward(tmp, "datagenenv")
		if err != nil {
			t.Fatal(err)
		}
		if found != path {
			t.Errorf("unmatch file path: (actual, expected) = (%s, %s)", found, path)
		}
	})

	t.Run("it finds a file some levels up", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, "datagenenv")
		if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
			t.Fatal(err)
		}
		nested := filepath.Join(tmp, "data", "wmt")
		if err := os.MkdirAll(nested, 0o755); err != nil {
			t.Fatal(err)
		}

		found, err := utils.FindUpward(nested, "datagenenv")
		if err != nil {
			t.Fatal(err)
		}
		if found != path {
			t.Errorf("unmatch file path: (actual, expected) = (%s, %s)", found, path)
		}
	})

	t.Run("it reports when no ancestor holds the file", func(t *testing.T) {
		tmp := t.TempDir()

		_, err := utils.FindUpward(tmp, "surely-no-such-file-anywhere")
		if !errors.Is(err, utils.ErrNotFoundUpward) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
