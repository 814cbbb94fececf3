package datagen

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	pb "github.com/cheggaaa/pb/v3"

	"github.com/akshay120860/tensor2tensor/pkg/rng"
	"github.com/akshay120860/tensor2tensor/pkg/tfrecord"
)

type shuffleConfig struct {
	progressOut io.Writer
}

type ShuffleOption func(*shuffleConfig) *shuffleConfig

// WithShuffleProgress draws a progress bar on out while rewriting records.
func WithShuffleProgress(out io.Writer) ShuffleOption {
	return func(c *shuffleConfig) *shuffleConfig {
		c.progressOut = out
		return c
	}
}

// readRecords slurps every record in the file at path, in order.
func readRecords(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := tfrecord.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading records from %s: %w", path, err)
	}
	return records, nil
}

// ShuffleDataset rewrites the record files at paths so that records
// are shuffled across the whole set, not merely within each file.
//
// All records are read into memory, permuted with the package rng and
// redistributed round-robin over the final files (FinalName of each
// path). Input files whose name carries UnshuffledSuffix are removed
// afterwards.
//
// Record payloads are moved as they are. They are not parsed.
func ShuffleDataset(ctx context.Context, l *log.Logger, paths []string, opts ...ShuffleOption) error {
	conf := &shuffleConfig{}
	for _, opt := range opts {
		conf = opt(conf)
	}

	records := [][]byte{}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rs, err := readRecords(p)
		if err != nil {
			return err
		}
		records = append(records, rs...)
	}
	l.Printf("shuffling %d records in %d files", len(records), len(paths))

	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})

	var bar *pb.ProgressBar
	if conf.progressOut != nil {
		bar = pb.New64(int64(len(records)))
		bar.SetWriter(conf.progressOut)
		if err := bar.Err(); err != nil {
			return err
		}
		bar.Start()
	}

	finals := make([]string, len(paths))
	for i, p := range paths {
		finals[i] = FinalName(p)
	}
	shards, err := openShards(finals)
	if err != nil {
		return err
	}
	var writeErr error
	for i, record := range records {
		if writeErr = ctx.Err(); writeErr != nil {
			break
		}
		if writeErr = shards.write(i, record); writeErr != nil {
			break
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if err := shards.close(); err != nil && writeErr == nil {
		writeErr = err
	}
	if bar != nil {
		bar.Finish()
	}
	if writeErr != nil {
		return writeErr
	}

	for i, p := range paths {
		if p == finals[i] {
			continue
		}
		if err := os.Remove(p); err != nil {
			return err
		}
	}
	return nil
}
