package datagen

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/akshay120860/tensor2tensor/pkg/features"
	kio "github.com/akshay120860/tensor2tensor/pkg/io"
	"github.com/akshay120860/tensor2tensor/pkg/tfrecord"
)

// logged every progressInterval generated cases.
const progressInterval = 100000

// shardSet is a set of shard files written round-robin.
type shardSet struct {
	files   []*os.File
	buffers []*bufio.Writer
	writers []*tfrecord.Writer
}

// openShards creates (or truncates) every path, with parent directories.
//
// When any of them fails to open, already opened files are closed and
// the error of the failed one is returned.
func openShards(paths []string) (*shardSet, error) {
	s := &shardSet{
		files:   make([]*os.File, 0, len(paths)),
		buffers: make([]*bufio.Writer, 0, len(paths)),
		writers: make([]*tfrecord.Writer, 0, len(paths)),
	}
	for _, p := range paths {
		f, err := kio.CreateAll(p, 0644, 0755)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("creating shard file %s: %w", p, err)
		}
		buf := bufio.NewWriter(f)
		s.files = append(s.files, f)
		s.buffers = append(s.buffers, buf)
		s.writers = append(s.writers, tfrecord.NewWriter(buf))
	}
	return s, nil
}

// write puts a record into the shard for sequence number seq.
func (s *shardSet) write(seq int, record []byte) error {
	return s.writers[seq%len(s.writers)].WriteRecord(record)
}

// close flushes and closes every shard file, and returns the first
// error it met. All files are closed even when some of them fail.
func (s *shardSet) close() error {
	var firstErr error
	for i, f := range s.files {
		if err := s.buffers[i].Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// GenerateFiles drains gen and writes each example into the files at
// paths, cycling through them so records spread evenly.
//
// Every path is created even when gen yields fewer examples than
// shards (such files hold zero records but are valid record files).
//
// maxCases caps the number of examples taken from gen; zero or
// negative means no cap. When gen fails mid-sequence, files written
// so far are flushed and closed, and the error of gen is returned.
//
// GenerateFiles closes gen.
func GenerateFiles(ctx context.Context, l *log.Logger, gen features.Iterator, paths []string, maxCases int) error {
	if len(paths) == 0 {
		return fmt.Errorf("no shard files to generate")
	}

	shards, err := openShards(paths)
	if err != nil {
		gen.Close()
		return err
	}

	count := 0
	var genErr error
	for maxCases <= 0 || count < maxCases {
		ex, err := gen.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			genErr = err
			break
		}
		record, err := features.Marshal(ex)
		if err != nil {
			genErr = err
			break
		}
		if err := shards.write(count, record); err != nil {
			genErr = err
			break
		}
		count += 1
		if count%progressInterval == 0 {
			l.Printf("generating case %d", count)
		}
	}

	closeErr := shards.close()
	if err := gen.Close(); err != nil && closeErr == nil {
		closeErr = err
	}

	if genErr != nil {
		return genErr
	}
	if closeErr != nil {
		return closeErr
	}

	l.Printf("generated %d cases into %d files", count, len(paths))
	return nil
}
