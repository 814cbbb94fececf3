package os_test

import (
	"os"
	"testing"

	kos "github.com/akshay120860/tensor2tensor/pkg/utils/os"
)

func TestGetEnvOr(t *testing.T) {
	const key = "T2T_TEST_ENVVAR"

	t.Run("it reads the variable when set", func(t *testing.T) {
		t.Setenv(key, "from env")

		if actual := kos.GetEnvOr(key, "fallback"); actual != "from env" {
			t.Errorf("wrong value: (actual, expected) = (%s, %s)", actual, "from env")
		}
	})

	t.Run("it falls back when the variable is set but empty", func(t *testing.T) {
		t.Setenv(key, "")

		if actual := kos.GetEnvOr(key, "fallback"); actual != "fallback" {
			t.Errorf("wrong value: (actual, expected) = (%s, %s)", actual, "fallback")
		}
	})

	t.Run("it falls back when the variable is not set", func(t *testing.T) {
		t.Setenv(key, "to be unset")
		os.Unsetenv(key)

		if actual := kos.GetEnvOr(key, "fallback"); actual != "fallback" {
			t.Errorf("wrong value: (actual, expected) = (%s, %s)", actual, "fallback")
		}
	})
}
