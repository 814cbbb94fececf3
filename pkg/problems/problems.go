// Package problems is the registry of data-generation problems.
//
// A problem is a named dataset/task definition. Most problems are
// registered statically in the builtin table (see table.go) as a
// Descriptor; problems bringing their own generation pipeline implement
// the Problem interface and are registered on a Registry instead.
package problems

import (
	"context"

	"github.com/akshay120860/tensor2tensor/pkg/features"
)

// Factory starts one run of an example sequence.
//
// A Factory takes no problem-specific parameters. Sequences are
// restartable: calling the Factory again starts an independent run.
type Factory func(ctx context.Context) (features.Iterator, error)

// Descriptor is a statically registered problem.
//
// Exactly two cases exist: SplitGenerators and SingleCorpusGenerators.
type Descriptor interface {
	isDescriptor()
}

// SplitGenerators describes a problem with independent train and dev
// example sequences.
type SplitGenerators struct {
	Train Factory
	Dev   Factory

	// DevShards is the number of dev shard files. Zero means 1.
	// Large multi-shard corpora set more.
	DevShards int
}

// SingleCorpusGenerators describes a problem whose train, dev and test
// data are all slices of one oversized training run.
//
// ShardCount is the total number of shard files to write.
// The configured shard count of a run is ignored for such problems.
type SingleCorpusGenerators struct {
	Train      Factory
	ShardCount int
}

func (SplitGenerators) isDescriptor()        {}
func (SingleCorpusGenerators) isDescriptor() {}
