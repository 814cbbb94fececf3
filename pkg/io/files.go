package io

import (
	"os"
	"path/filepath"
)

// CreateAll creates the file at name, making missing parent
// directories on the way.
//
// fmod is the mode of the file, dmod the mode of each directory
// created here. Directories which already exist keep their mode.
// A file which already exists at name is truncated.
func CreateAll(name string, fmod os.FileMode, dmod os.FileMode) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(name), dmod); err != nil {
		return nil, err
	}
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, fmod)
}
