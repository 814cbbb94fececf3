// Package langmodel generates language-modeling examples from text
// corpora: one example per corpus line, holding the token (or byte)
// ids of the line ending with EOS, under the feature "targets".
//
// Corpora are downloaded into the scratch directory on first use and
// reused afterwards, vocabularies likewise.
package langmodel

import (
	"archive/tar"
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"
	"time"

	"github.com/akshay120860/tensor2tensor/pkg/features"
	"github.com/akshay120860/tensor2tensor/pkg/fetch"
	kio "github.com/akshay120860/tensor2tensor/pkg/io"
	"github.com/akshay120860/tensor2tensor/pkg/utils/archive"
	"github.com/akshay120860/tensor2tensor/pkg/utils/retry"
	"github.com/akshay120860/tensor2tensor/pkg/vocab"
)

// downloadOptions is how every corpus download here runs: a progress
// bar where the logger writes, and retries on transient failures until
// the context is canceled.
func downloadOptions(l *log.Logger) []fetch.Option {
	return []fetch.Option{
		fetch.WithProgressOut(l.Writer()),
		fetch.WithBackoff(retry.ExponentialBackoff(time.Second, 2)),
	}
}

// lineExamples streams one example per non-blank line of the file at
// path. The file opens on the first pull, so building the iterator
// costs nothing.
func lineExamples(path string, build func(line string) features.Example) features.Iterator {
	var f *os.File
	var scanner *bufio.Scanner
	return features.FromFunc(
		func(ctx context.Context) (features.Example, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if f == nil {
				opened, err := os.Open(path)
				if err != nil {
					return nil, err
				}
				f = opened
				scanner = bufio.NewScanner(f)
				scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
			}
			for scanner.Scan() {
				line := scanner.Text()
				if strings.TrimSpace(line) == "" {
					continue
				}
				return build(line), nil
			}
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		},
		func() error {
			if f == nil {
				return nil
			}
			return f.Close()
		},
	)
}

// tokenExample encodes one corpus line with v, appending EOS.
func tokenExample(v *vocab.Vocabulary, line string) features.Example {
	return features.Example{"targets": features.Ints(append(v.Encode(line), vocab.EOS))}
}

// byteExample encodes one corpus line byte by byte, shifting each past
// the reserved ids, and appends EOS.
func byteExample(line string) features.Example {
	ids := make(features.Ints, 0, len(line)+1)
	for _, b := range []byte(line) {
		ids = append(ids, int64(b)+vocab.UNK+1)
	}
	ids = append(ids, vocab.EOS)
	return features.Example{"targets": ids}
}

// extractFiles pulls the wanted entries out of a .tar.gz archive.
//
// wanted maps entry base names to destination paths. Entries already
// extracted are not written again. The walk stops as soon as every
// wanted file is there.
func extractFiles(archivePath string, wanted map[string]string) error {
	missing := map[string]string{}
	for name, dest := range wanted {
		if _, err := os.Stat(dest); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}
		missing[name] = dest
	}
	if len(missing) == 0 {
		return nil
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	err = archive.TarGzWalk(f, func(header *tar.Header, payload io.Reader) error {
		if header.Typeflag != tar.TypeReg {
			return nil
		}
		dest, ok := missing[path.Base(header.Name)]
		if !ok {
			return nil
		}

		out, err := kio.CreateAll(dest, 0644, 0755)
		if err != nil {
			return err
		}
		_, err = io.Copy(out, payload)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("extracting %s from %s: %w", header.Name, archivePath, err)
		}

		delete(missing, path.Base(header.Name))
		if len(missing) == 0 {
			return archive.ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return err
	}

	if 0 < len(missing) {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		return fmt.Errorf("%s does not contain: %s", archivePath, strings.Join(names, ", "))
	}
	return nil
}

// chainFiles builds one iterator over many corpus files, in order.
func chainFiles(paths []string, build func(line string) features.Example) features.Iterator {
	iterators := make([]features.Iterator, len(paths))
	for i, p := range paths {
		iterators[i] = lineExamples(p, build)
	}
	return features.Chain(iterators...)
}
