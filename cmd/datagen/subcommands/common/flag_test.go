package common_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/common"
	"github.com/akshay120860/tensor2tensor/pkg/utils/try"
)

func TestFlags(t *testing.T) {
	t.Run("it finds a datagenenv file in an ancestor directory", func(t *testing.T) {
		root := t.TempDir()
		envfile := filepath.Join(root, "datagenenv")
		if err := os.WriteFile(envfile, []byte("source: {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		nested := filepath.Join(root, "a", "b")
		if err := os.MkdirAll(nested, 0o755); err != nil {
			t.Fatal(err)
		}

		cf := try.To(common.Flags(nested)).OrFatal(t)

		if cf.Env != envfile {
			t.Errorf(
				"detected env file: (actual, expected) = (%s, %s)",
				cf.Env, envfile,
			)
		}
	})

	t.Run("it defaults into the start directory when nothing is found", func(t *testing.T) {
		root := t.TempDir()

		cf := try.To(common.Flags(root)).OrFatal(t)

		if cf.Env != filepath.Join(root, "datagenenv") {
			t.Errorf("unexpected default env path: %s", cf.Env)
		}
	})
}
