// Package archive reads the tarballs corpora are distributed as.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"io"
)

// ErrStopWalk ends a walk early, without error.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc handles one entry of a tar archive. payload reads the
// entry's content and is valid until the next entry is visited.
type WalkFunc func(header *tar.Header, payload io.Reader) error

// TarGzWalk calls walk for each entry of the gzipped tar stream
// from, in archive order. A walk returning ErrStopWalk ends the
// traversal as a success. from is not closed.
func TarGzWalk(from io.Reader, walk WalkFunc) error {
	gz, err := gzip.NewReader(from)
	if err != nil {
		return err
	}
	defer gz.Close()

	in := tar.NewReader(gz)
	for {
		header, err := in.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := walk(header, in); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
}
