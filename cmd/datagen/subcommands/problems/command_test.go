package problems_test

import (
	"context"
	"strings"
	"testing"

	"github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/common"
	"github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/internal/commandline"
	"github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/problems"
	"github.com/akshay120860/tensor2tensor/internal/testutils/logger"
)

func list(t *testing.T, flags problems.Flag, patterns ...string) []string {
	t.Helper()

	stdout := new(strings.Builder)
	testee := problems.Task()
	err := testee(
		context.Background(), logger.Null(), common.CommonFlags{},
		commandline.Mock[problems.Flag]{
			Stdout_: stdout,
			Stderr_: new(strings.Builder),
			Flags_:  flags,
			Args_:   map[string][]string{problems.ARG_PATTERN: patterns},
		},
		[]any{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return []string{}
	}
	return lines
}

func TestProblemsCommand(t *testing.T) {
	t.Run("without a pattern it lists every problem", func(t *testing.T) {
		lines := list(t, problems.Flag{})

		joined := strings.Join(lines, "\n")
		for _, name := range []string{
			"algorithmic_identity_binary40",
			"languagemodel_ptb_10k",
			"image_mnist",
		} {
			if !strings.Contains(joined, name) {
				t.Errorf("%s is not listed:\n%s", name, joined)
			}
		}

		for i := 1; i < len(lines); i += 1 {
			if lines[i-1] >= lines[i] {
				t.Errorf("the listing is not sorted: %q >= %q", lines[i-1], lines[i])
			}
		}
	})

	t.Run("problems lacking their corpus directory are marked", func(t *testing.T) {
		lines := list(t, problems.Flag{})

		joined := strings.Join(lines, "\n")
		if !strings.Contains(joined, "audio_timit_characters\t(needs --timit-dir)") {
			t.Errorf("timit problems should be marked unavailable:\n%s", joined)
		}
		if !strings.Contains(joined, "parsing_english_ptb8k\t(needs --parsing-dir)") {
			t.Errorf("parsing problems should be marked unavailable:\n%s", joined)
		}
		if !strings.Contains(joined, "translate_ende_bpe32k\t(needs --ende-bpe-dir)") {
			t.Errorf("the translation problem should be marked unavailable:\n%s", joined)
		}
	})

	t.Run("a given corpus directory clears the mark", func(t *testing.T) {
		lines := list(t, problems.Flag{TimitDir: "/corpora/timit"})

		joined := strings.Join(lines, "\n")
		if !strings.Contains(joined+"\n", "audio_timit_characters\n") {
			t.Errorf("timit problems should be listed plain:\n%s", joined)
		}
	})

	t.Run("patterns narrow the listing", func(t *testing.T) {
		lines := list(t, problems.Flag{}, "algorithmic_*")

		if len(lines) == 0 {
			t.Fatal("nothing is listed")
		}
		for _, line := range lines {
			if !strings.HasPrefix(line, "algorithmic_") {
				t.Errorf("unexpected problem in the listing: %s", line)
			}
		}
	})

	t.Run("overlapping patterns list a problem once", func(t *testing.T) {
		lines := list(t, problems.Flag{}, "algorithmic_identity_*", "algorithmic_*")

		count := 0
		for _, line := range lines {
			if line == "algorithmic_identity_binary40" {
				count += 1
			}
		}
		if count != 1 {
			t.Errorf("algorithmic_identity_binary40 is listed %d times", count)
		}
	})

	t.Run("a pattern matching nothing lists nothing", func(t *testing.T) {
		lines := list(t, problems.Flag{}, "no_such_problem_*")

		if len(lines) != 0 {
			t.Errorf("unexpected listing: %v", lines)
		}
	})
}
