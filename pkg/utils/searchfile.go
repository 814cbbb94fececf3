// Package utils has small filesystem helpers shared by the commands.
package utils

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFoundUpward means no ancestor directory holds the wanted file.
var ErrNotFoundUpward = errors.New("file not found in any ancestor")

// FindUpward looks for fileName in dir and then in each ancestor of
// dir, returning the path of the nearest hit.
func FindUpward(dir string, fileName string) (string, error) {
	for {
		p := filepath.Join(dir, fileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFoundUpward
		}
		dir = parent
	}
}
