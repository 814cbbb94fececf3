package generate_test

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/akshay120860/tensor2tensor/cmd/datagen/env"
	"github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/generate"
	"github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/internal/commandline"
	"github.com/akshay120860/tensor2tensor/internal/testutils/logger"
	"github.com/akshay120860/tensor2tensor/pkg/datagen"
	"github.com/youta-t/flarc"
)

func baseFlags() generate.Flag {
	return generate.Flag{
		DataDir:    "/data",
		TmpDir:     "/tmp/t2t_datagen",
		Problem:    "algorithmic_reverse_decimal40",
		NumShards:  "10",
		MaxCases:   "0",
		RandomSeed: "429459",
	}
}

func TestGenerateCommand(t *testing.T) {
	t.Run("it threads flags into the run config", func(t *testing.T) {
		var gotConf datagen.RunConfig
		runner := func(
			ctx context.Context, o *datagen.Orchestrator, conf datagen.RunConfig,
		) ([]datagen.Result, error) {
			gotConf = conf
			return []datagen.Result{
				{Problem: "algorithmic_reverse_decimal40", Phase: datagen.Done},
			}, nil
		}

		flags := baseFlags()
		flags.Problem = "algorithmic_*"
		flags.NumShards = "4"
		flags.MaxCases = "100"
		flags.RandomSeed = "7"

		stdout := new(strings.Builder)
		testee := generate.Task(runner)
		err := testee(
			context.Background(), logger.Null(), env.Env{},
			commandline.Mock[generate.Flag]{
				Stdout_: stdout,
				Stderr_: new(strings.Builder),
				Flags_:  flags,
			},
			[]any{},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := datagen.RunConfig{
			Problem:   "algorithmic_*",
			DataDir:   "/data",
			TmpDir:    "/tmp/t2t_datagen",
			NumShards: 4,
			MaxCases:  100,
			Seed:      7,
		}
		if gotConf != expected {
			t.Errorf(
				"run config: (actual, expected) = (%+v, %+v)",
				gotConf, expected,
			)
		}

		if !strings.Contains(stdout.String(), "algorithmic_reverse_decimal40\tdone") {
			t.Errorf("results are not reported on stdout: %s", stdout.String())
		}
	})

	t.Run("it passes the gate directories along", func(t *testing.T) {
		var gotConf datagen.RunConfig
		runner := func(
			ctx context.Context, o *datagen.Orchestrator, conf datagen.RunConfig,
		) ([]datagen.Result, error) {
			gotConf = conf
			return nil, nil
		}

		flags := baseFlags()
		flags.Problem = "audio_timit_characters"
		flags.TimitDir = "/corpora/timit"
		flags.ParsingDir = "/corpora/wsj"
		flags.EndeBPEDir = "/corpora/ende"

		testee := generate.Task(runner)
		err := testee(
			context.Background(), logger.Null(), env.Env{},
			commandline.Mock[generate.Flag]{
				Stdout_: new(strings.Builder),
				Stderr_: new(strings.Builder),
				Flags_:  flags,
			},
			[]any{},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotConf.TimitDir != "/corpora/timit" ||
			gotConf.ParsingDir != "/corpora/wsj" ||
			gotConf.EndeBPEDir != "/corpora/ende" {
			t.Errorf("gate directories are not passed: %+v", gotConf)
		}
	})

	t.Run("an empty --data-dir falls back to the system temp directory with a warning", func(t *testing.T) {
		var gotConf datagen.RunConfig
		runner := func(
			ctx context.Context, o *datagen.Orchestrator, conf datagen.RunConfig,
		) ([]datagen.Result, error) {
			gotConf = conf
			return nil, nil
		}

		flags := baseFlags()
		flags.DataDir = ""

		stderr := new(strings.Builder)
		testee := generate.Task(runner)
		err := testee(
			context.Background(), log.New(stderr, "", 0), env.Env{},
			commandline.Mock[generate.Flag]{
				Stdout_: new(strings.Builder),
				Stderr_: stderr,
				Flags_:  flags,
			},
			[]any{},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotConf.DataDir != os.TempDir() {
			t.Errorf(
				"data dir: (actual, expected) = (%s, %s)",
				gotConf.DataDir, os.TempDir(),
			)
		}
		if !strings.Contains(stderr.String(), "--data-dir") {
			t.Errorf("no warning about the default data dir: %s", stderr.String())
		}
	})

	t.Run("generation failures propagate after reporting progress", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		runner := func(
			ctx context.Context, o *datagen.Orchestrator, conf datagen.RunConfig,
		) ([]datagen.Result, error) {
			return []datagen.Result{
				{Problem: "algorithmic_reverse_decimal40", Phase: datagen.GeneratingDev},
			}, expectedErr
		}

		stdout := new(strings.Builder)
		testee := generate.Task(runner)
		err := testee(
			context.Background(), logger.Null(), env.Env{},
			commandline.Mock[generate.Flag]{
				Stdout_: stdout,
				Stderr_: new(strings.Builder),
				Flags_:  baseFlags(),
			},
			[]any{},
		)
		if !errors.Is(err, expectedErr) {
			t.Errorf("the runner error should come back as is: %v", err)
		}

		if !strings.Contains(stdout.String(), "algorithmic_reverse_decimal40\tgenerating dev") {
			t.Errorf("partial results are not reported: %s", stdout.String())
		}
	})
}

func TestGenerateCommand_usageErrors(t *testing.T) {
	theory := func(tweak func(*generate.Flag), fragment string) func(*testing.T) {
		return func(t *testing.T) {
			runner := func(
				ctx context.Context, o *datagen.Orchestrator, conf datagen.RunConfig,
			) ([]datagen.Result, error) {
				t.Error("the runner should not run")
				return nil, nil
			}

			flags := baseFlags()
			tweak(&flags)

			testee := generate.Task(runner)
			err := testee(
				context.Background(), logger.Null(), env.Env{},
				commandline.Mock[generate.Flag]{
					Stdout_: new(strings.Builder),
					Stderr_: new(strings.Builder),
					Flags_:  flags,
				},
				[]any{},
			)
			if !errors.Is(err, flarc.ErrUsage) {
				t.Errorf("expected a usage error, got: %v", err)
			}
			if !strings.Contains(err.Error(), fragment) {
				t.Errorf("error should mention %q: %v", fragment, err)
			}
		}
	}

	t.Run("--num-shards rejects non-numbers", theory(
		func(f *generate.Flag) { f.NumShards = "ten" }, "--num-shards",
	))
	t.Run("--num-shards rejects zero", theory(
		func(f *generate.Flag) { f.NumShards = "0" }, "--num-shards",
	))
	t.Run("--max-cases rejects non-numbers", theory(
		func(f *generate.Flag) { f.MaxCases = "a few" }, "--max-cases",
	))
	t.Run("--random-seed rejects non-numbers", theory(
		func(f *generate.Flag) { f.RandomSeed = "lucky" }, "--random-seed",
	))
	t.Run("an empty --problem selects nothing and names every candidate", theory(
		func(f *generate.Flag) { f.Problem = "" }, "languagemodel_ptb_10k",
	))
	t.Run("the candidate list covers dynamically registered problems", theory(
		func(f *generate.Flag) { f.Problem = "" }, "image_mnist",
	))
	t.Run("a problem whose corpus directory is not given selects nothing", theory(
		func(f *generate.Flag) { f.Problem = "audio_timit_characters" }, "no problem selected",
	))
	t.Run("an unknown problem name selects nothing", theory(
		func(f *generate.Flag) { f.Problem = "no_such_problem" }, "no problem selected",
	))
}
