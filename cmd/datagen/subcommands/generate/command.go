package generate

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/akshay120860/tensor2tensor/cmd/datagen/env"
	"github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/common"
	"github.com/akshay120860/tensor2tensor/pkg/datagen"
	"github.com/akshay120860/tensor2tensor/pkg/problems"
	"github.com/akshay120860/tensor2tensor/pkg/problems/image"
	kos "github.com/akshay120860/tensor2tensor/pkg/utils/os"
	kpath "github.com/akshay120860/tensor2tensor/pkg/utils/path"
	"github.com/youta-t/flarc"
)

type Flag struct {
	DataDir    string `flag:"data-dir" alias:"d" metavar:"DIR" help:"Directory to write generated data files into."`
	TmpDir     string `flag:"tmp-dir" metavar:"DIR" help:"Scratch directory for downloads and intermediate files."`
	Problem    string `flag:"problem" alias:"p" metavar:"NAME" help:"Problem to generate data for. A trailing * selects every problem with that prefix."`
	NumShards  string `flag:"num-shards" metavar:"N" help:"Number of training shard files per problem."`
	MaxCases   string `flag:"max-cases" metavar:"N" help:"Maximum number of training cases per problem. 0 means no limit."`
	RandomSeed string `flag:"random-seed" metavar:"SEED" help:"Seed for the random sources, applied before each problem."`
	TimitDir   string `flag:"timit-dir" metavar:"DIR" help:"Directory holding the TIMIT corpus. Unset skips TIMIT problems."`
	ParsingDir string `flag:"parsing-dir" metavar:"DIR" help:"Directory holding parse tree files. Unset skips parsing problems."`
	EndeBPEDir string `flag:"ende-bpe-dir" metavar:"DIR" help:"Directory holding the BPE-tokenized WMT En-De corpus. Unset skips it."`
}

// Runner runs generation for everything conf selects.
type Runner func(
	ctx context.Context,
	o *datagen.Orchestrator,
	conf datagen.RunConfig,
) ([]datagen.Result, error)

type Option struct {
	Runner Runner
}

func WithRunner(r Runner) func(*Option) *Option {
	return func(opt *Option) *Option {
		opt.Runner = r
		return opt
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	opt := &Option{
		Runner: func(
			ctx context.Context, o *datagen.Orchestrator, conf datagen.RunConfig,
		) ([]datagen.Result, error) {
			return o.Run(ctx, conf)
		},
	}
	for _, o := range options {
		opt = o(opt)
	}

	return flarc.NewCommand(
		"Generate training and development data for a problem.",
		Flag{
			DataDir:    "",
			TmpDir:     "/tmp/t2t_datagen",
			Problem:    "",
			NumShards:  "10",
			MaxCases:   "0",
			RandomSeed: "429459",
			TimitDir:   kos.GetEnvOr("T2T_TIMIT_DIR", ""),
			ParsingDir: kos.GetEnvOr("T2T_PARSING_DIR", ""),
			EndeBPEDir: kos.GetEnvOr("T2T_ENDE_BPE_DIR", ""),
		},
		flarc.Args{},
		common.NewTask(Task(opt.Runner)),
		flarc.WithDescription(`
Generate data for the problem named by --problem: training shards
first, then development data, then a global shuffle of every record
written. Generated files land in --data-dir as

	<problem>-train-00000-of-00010 (and so on)

Problems needing corpora which cannot be downloaded (TIMIT, parse
trees, the tokenized WMT En-De corpus) are skipped unless their
directory flag points at the prepared data.

Example
-------

- Generate one problem:

	{{ .Command }} -p algorithmic_reverse_decimal40 -d ./data

- Generate every algorithmic problem:

	{{ .Command }} -p 'algorithmic_*' -d ./data

- Cap the training set while trying a problem out:

	{{ .Command }} -p languagemodel_ptb_10k -d ./data --max-cases 1000

- List what can be generated:

	{{ .Command }} -p ''

	(an empty name selects nothing and the error names every problem)
`),
	)
}

func Task(runner Runner) common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		e env.Env,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		flags := cl.Flags()

		numShards, err := strconv.Atoi(flags.NumShards)
		if err != nil || numShards <= 0 {
			return fmt.Errorf("%w: --num-shards should be a positive number: %s", flarc.ErrUsage, flags.NumShards)
		}
		maxCases, err := strconv.Atoi(flags.MaxCases)
		if err != nil || maxCases < 0 {
			return fmt.Errorf("%w: --max-cases should be a number: %s", flarc.ErrUsage, flags.MaxCases)
		}
		seed, err := strconv.ParseInt(flags.RandomSeed, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: --random-seed should be a number: %s", flarc.ErrUsage, flags.RandomSeed)
		}

		dataDir := flags.DataDir
		if dataDir == "" {
			dataDir = os.TempDir()
			logger.Printf(
				"it is strongly recommended to specify --data-dir. data will be written to %s",
				dataDir,
			)
		}
		dataDir, err = kpath.Resolve(dataDir)
		if err != nil {
			return fmt.Errorf("%w: cannot resolve --data-dir (%s)", err, flags.DataDir)
		}
		tmpDir, err := kpath.Resolve(flags.TmpDir)
		if err != nil {
			return fmt.Errorf("%w: cannot resolve --tmp-dir (%s)", err, flags.TmpDir)
		}

		catalog := datagen.Catalog{
			Static: problems.Builtin(logger, problems.Config{
				TmpDir:     tmpDir,
				TimitDir:   flags.TimitDir,
				ParsingDir: flags.ParsingDir,
				EndeBPEDir: flags.EndeBPEDir,
				Sources:    e.Source,
				Checksums:  e.Checksum,
			}),
			External: problems.NewRegistry(),
		}
		err = catalog.External.Register("image_mnist", image.MNIST{
			L:         logger,
			BaseURL:   e.Source["mnist"],
			Checksums: e.Checksum,
		})
		if err != nil {
			return err
		}

		o := datagen.NewOrchestrator(
			logger, catalog, datagen.WithProgressOut(cl.Stderr()),
		)

		conf := datagen.RunConfig{
			Problem:    flags.Problem,
			DataDir:    dataDir,
			TmpDir:     tmpDir,
			NumShards:  numShards,
			MaxCases:   maxCases,
			Seed:       seed,
			TimitDir:   flags.TimitDir,
			ParsingDir: flags.ParsingDir,
			EndeBPEDir: flags.EndeBPEDir,
		}

		if selected, _ := o.Resolve(conf); len(selected) == 0 {
			return fmt.Errorf(
				"%w: no problem selected with --problem=%q. candidates:\n\t%s",
				flarc.ErrUsage, flags.Problem,
				strings.Join(catalog.Names(), "\n\t"),
			)
		}

		results, runErr := runner(ctx, o, conf)
		for _, r := range results {
			fmt.Fprintf(cl.Stdout(), "%s\t%s\n", r.Problem, r.Phase)
		}
		return runErr
	}
}
