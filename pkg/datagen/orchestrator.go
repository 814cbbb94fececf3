// Package datagen drives data generation for registered problems:
// naming shard files, draining example sequences into them, and
// shuffling the result.
package datagen

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/akshay120860/tensor2tensor/pkg/problems"
	"github.com/akshay120860/tensor2tensor/pkg/rng"
	"github.com/akshay120860/tensor2tensor/pkg/utils/slices"
)

// Catalog is everything an Orchestrator can generate.
type Catalog struct {
	// Static maps problem names to their Descriptors.
	Static map[string]problems.Descriptor

	// External holds problems generating their datasets by themselves.
	// It may be nil.
	External *problems.Registry
}

// Names lists every problem name in the catalog, sorted.
func (c Catalog) Names() []string {
	names := slices.KeysOf(c.Static)
	if c.External != nil {
		names = append(names, c.External.Names()...)
	}
	sort.Strings(names)
	return names
}

// RunConfig parametrizes one Orchestrator.Run.
type RunConfig struct {
	// Problem is the requested problem name. A trailing "*" selects
	// every problem starting with the rest of it. Empty selects nothing.
	Problem string

	// DataDir is the directory final shard files are written into.
	DataDir string

	// TmpDir is scratch space for downloads and intermediate files.
	TmpDir string

	// NumShards is the number of training shard files per problem.
	NumShards int

	// MaxCases caps training examples taken per problem.
	// Zero or negative means no cap. Dev data is never capped.
	MaxCases int

	// Seed is fed to the random sources before each problem.
	Seed int64

	// TimitDir, ParsingDir and EndeBPEDir point at prerequisite data
	// which cannot be downloaded. When such a directory is empty,
	// problems requiring it are skipped without error.
	TimitDir   string
	ParsingDir string
	EndeBPEDir string
}

// Phase is how far generation of one problem has progressed.
type Phase int

const (
	Pending Phase = iota
	GeneratingTrain
	GeneratingDev
	Shuffling
	Done
	Skipped
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case GeneratingTrain:
		return "generating train"
	case GeneratingDev:
		return "generating dev"
	case Shuffling:
		return "shuffling"
	case Done:
		return "done"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("unknown phase %d", int(p))
	}
}

// Result is the final phase one problem reached during a Run.
type Result struct {
	Problem string
	Phase   Phase
}

type Orchestrator struct {
	l           *log.Logger
	catalog     Catalog
	shuffleOpts []ShuffleOption
}

type Option func(*Orchestrator) *Orchestrator

// WithProgressOut draws progress bars on out during shuffling.
func WithProgressOut(out io.Writer) Option {
	return func(o *Orchestrator) *Orchestrator {
		o.shuffleOpts = append(o.shuffleOpts, WithShuffleProgress(out))
		return o
	}
}

func NewOrchestrator(l *log.Logger, catalog Catalog, opts ...Option) *Orchestrator {
	o := &Orchestrator{l: l, catalog: catalog}
	for _, opt := range opts {
		o = opt(o)
	}
	return o
}

// gates bind problem-name substrings to the RunConfig directory their
// corpora must be prepared in.
var gates = []struct {
	substr string
	dir    func(RunConfig) string
	flag   string
}{
	{substr: "timit", dir: func(c RunConfig) string { return c.TimitDir }, flag: "--timit-dir"},
	{substr: "parsing", dir: func(c RunConfig) string { return c.ParsingDir }, flag: "--parsing-dir"},
	{substr: "ende_bpe", dir: func(c RunConfig) string { return c.EndeBPEDir }, flag: "--ende-bpe-dir"},
}

// MissingPrerequisite names the flag of the corpus directory that the
// problem name needs but conf leaves empty. Empty means the problem is
// not barred from generating.
func MissingPrerequisite(name string, conf RunConfig) string {
	for _, gate := range gates {
		if strings.Contains(name, gate.substr) && gate.dir(conf) == "" {
			return gate.flag
		}
	}
	return ""
}

// Resolve expands conf.Problem against the catalog and drops problems
// whose prerequisite directory is not given.
//
// selected keeps catalog order (sorted by name). skipped holds
// problems which matched conf.Problem but lack prerequisites.
// These filters apply even when conf.Problem names one problem
// exactly, so asking for a gated problem without its directory
// selects nothing.
func (o *Orchestrator) Resolve(conf RunConfig) (selected []string, skipped []string) {
	candidates := o.catalog.Names()

	matched := []string{}
	switch {
	case conf.Problem == "":
		// nothing matches
	case strings.HasSuffix(conf.Problem, "*"):
		prefix := strings.TrimSuffix(conf.Problem, "*")
		matched = slices.Filter(candidates, func(name string) bool {
			return strings.HasPrefix(name, prefix)
		})
	default:
		matched = slices.Filter(candidates, func(name string) bool {
			return name == conf.Problem
		})
	}

	return slices.Group(matched, func(name string) bool {
		return MissingPrerequisite(name, conf) == ""
	})
}

// Run generates datasets for every problem conf selects, one by one,
// in name order.
//
// Before each problem the random sources are reseeded with conf.Seed,
// so generating a single problem out of a batch rewrites the same
// bytes the batch run would.
//
// The returned Results cover skipped problems and every problem
// attempted so far. When generation of a problem fails, its Result
// records the phase it failed in and Run stops there: remaining
// problems are not attempted and the error is returned as is.
//
// Selecting no problem at all is an error listing the catalog.
func (o *Orchestrator) Run(ctx context.Context, conf RunConfig) ([]Result, error) {
	selected, skipped := o.Resolve(conf)

	results := slices.Map(skipped, func(name string) Result {
		return Result{Problem: name, Phase: Skipped}
	})
	for _, name := range skipped {
		o.l.Printf("skipping %s: its data directory is not given", name)
	}

	if len(selected) == 0 {
		return results, fmt.Errorf(
			"no problem to generate. specify one of:\n\t%s",
			strings.Join(o.catalog.Names(), "\n\t"),
		)
	}

	o.l.Printf("generating problems:\n\t%s", strings.Join(selected, "\n\t"))

	for _, name := range selected {
		result := Result{Problem: name, Phase: Pending}

		rng.SeedAll(conf.Seed)

		var err error
		if desc, ok := o.catalog.Static[name]; ok {
			err = o.generate(ctx, name, desc, conf, &result.Phase)
		} else if p, ok := o.lookupExternal(name); ok {
			o.l.Printf("generating data for %s (self-managed)", name)
			result.Phase = GeneratingTrain
			if err = p.GenerateData(ctx, conf.DataDir, conf.TmpDir, conf.NumShards); err == nil {
				result.Phase = Done
			}
		} else {
			err = fmt.Errorf("problem %s vanished from the catalog", name)
		}

		results = append(results, result)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (o *Orchestrator) lookupExternal(name string) (problems.Problem, bool) {
	if o.catalog.External == nil {
		return nil, false
	}
	return o.catalog.External.Lookup(name)
}

// generate runs the shared pipeline for one statically registered
// problem: generate unshuffled shards, then shuffle them globally.
//
// phase is updated as the pipeline proceeds so that callers know how
// far it went when an error comes back.
func (o *Orchestrator) generate(
	ctx context.Context,
	name string,
	desc problems.Descriptor,
	conf RunConfig,
	phase *Phase,
) error {
	base := name + UnshuffledSuffix

	var written []string
	switch d := desc.(type) {
	case problems.SplitGenerators:
		devShards := d.DevShards
		if devShards == 0 {
			devShards = 1
		}
		trainPaths := TrainFiles(base, conf.DataDir, conf.NumShards)
		devPaths := DevFiles(base, conf.DataDir, devShards)

		*phase = GeneratingTrain
		o.l.Printf("generating training data for %s", name)
		train, err := d.Train(ctx)
		if err != nil {
			return err
		}
		if err := GenerateFiles(ctx, o.l, train, trainPaths, conf.MaxCases); err != nil {
			return err
		}

		*phase = GeneratingDev
		o.l.Printf("generating development data for %s", name)
		dev, err := d.Dev(ctx)
		if err != nil {
			return err
		}
		if err := GenerateFiles(ctx, o.l, dev, devPaths, 0); err != nil {
			return err
		}

		written = slices.Concat(trainPaths, devPaths)

	case problems.SingleCorpusGenerators:
		if d.ShardCount < 3 {
			return fmt.Errorf(
				"problem %s is misconfigured: a single-corpus problem needs at least 3 shards, but has %d",
				name, d.ShardCount,
			)
		}
		paths := CombinedFiles(base, conf.DataDir, d.ShardCount)

		*phase = GeneratingTrain
		o.l.Printf("generating combined data for %s", name)
		gen, err := d.Train(ctx)
		if err != nil {
			return err
		}
		if err := GenerateFiles(ctx, o.l, gen, paths, conf.MaxCases); err != nil {
			return err
		}

		written = paths

	default:
		return fmt.Errorf("problem %s has unknown descriptor type %T", name, desc)
	}

	*phase = Shuffling
	o.l.Printf("shuffling data for %s", name)
	if err := ShuffleDataset(ctx, o.l, written, o.shuffleOpts...); err != nil {
		return err
	}

	*phase = Done
	return nil
}
