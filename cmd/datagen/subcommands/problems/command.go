package problems

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/common"
	"github.com/akshay120860/tensor2tensor/pkg/datagen"
	kprob "github.com/akshay120860/tensor2tensor/pkg/problems"
	"github.com/akshay120860/tensor2tensor/pkg/problems/image"
	kos "github.com/akshay120860/tensor2tensor/pkg/utils/os"
	"github.com/youta-t/flarc"
)

type Flag struct {
	TimitDir   string `flag:"timit-dir" metavar:"DIR" help:"Directory holding the TIMIT corpus."`
	ParsingDir string `flag:"parsing-dir" metavar:"DIR" help:"Directory holding parse tree files."`
	EndeBPEDir string `flag:"ende-bpe-dir" metavar:"DIR" help:"Directory holding the BPE-tokenized WMT En-De corpus."`
}

const ARG_PATTERN = "PATTERN"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List the problems data can be generated for.",
		Flag{
			TimitDir:   kos.GetEnvOr("T2T_TIMIT_DIR", ""),
			ParsingDir: kos.GetEnvOr("T2T_PARSING_DIR", ""),
			EndeBPEDir: kos.GetEnvOr("T2T_ENDE_BPE_DIR", ""),
		},
		flarc.Args{
			{
				Name: ARG_PATTERN, Required: false, Repeatable: true,
				Help: "Show only problems with these names. A trailing * matches every problem with that prefix.",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
List every problem 'generate' accepts, one per line. Problems whose
corpus cannot be downloaded are marked with the flag that would make
them available.

Example
-------

- List everything:

	{{ .Command }}

- List the algorithmic and audio problems:

	{{ .Command }} 'algorithmic_*' 'audio_*'
`),
	)
}

func Task() common.TaskWithCommonFlag[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		flags := cl.Flags()

		catalog := datagen.Catalog{
			Static: kprob.Builtin(logger, kprob.Config{
				TimitDir:   flags.TimitDir,
				ParsingDir: flags.ParsingDir,
				EndeBPEDir: flags.EndeBPEDir,
			}),
			External: kprob.NewRegistry(),
		}
		err := catalog.External.Register("image_mnist", image.MNIST{L: logger})
		if err != nil {
			return err
		}

		o := datagen.NewOrchestrator(logger, catalog)

		patterns := cl.Args()[ARG_PATTERN]
		if len(patterns) == 0 {
			patterns = []string{"*"}
		}

		conf := datagen.RunConfig{
			TimitDir:   flags.TimitDir,
			ParsingDir: flags.ParsingDir,
			EndeBPEDir: flags.EndeBPEDir,
		}

		listed := map[string]bool{}
		names := []string{}
		for _, pattern := range patterns {
			conf.Problem = pattern
			selected, skipped := o.Resolve(conf)
			for _, name := range append(selected, skipped...) {
				if listed[name] {
					continue
				}
				listed[name] = true
				names = append(names, name)
			}
		}
		sort.Strings(names)

		for _, name := range names {
			if flag := datagen.MissingPrerequisite(name, conf); flag != "" {
				fmt.Fprintf(cl.Stdout(), "%s\t(needs %s)\n", name, flag)
				continue
			}
			fmt.Fprintln(cl.Stdout(), name)
		}
		return nil
	}
}
