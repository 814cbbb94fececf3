package path

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve makes path absolute, expanding a leading "~/" to the
// user's home directory first.
func Resolve(path string) (string, error) {
	tilde := "~" + string(filepath.Separator)
	if rest, found := strings.CutPrefix(path, tilde); found {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
