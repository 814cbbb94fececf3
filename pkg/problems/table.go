package problems

import (
	"log"

	"github.com/akshay120860/tensor2tensor/pkg/problems/algorithmic"
	"github.com/akshay120860/tensor2tensor/pkg/problems/audio"
	"github.com/akshay120860/tensor2tensor/pkg/problems/langmodel"
	"github.com/akshay120860/tensor2tensor/pkg/problems/parsing"
	"github.com/akshay120860/tensor2tensor/pkg/problems/translate"
)

// Config carries what the builtin problems need from the outside:
// scratch space, the gated corpus directories and overrides for the
// downloadable corpora.
type Config struct {
	// TmpDir holds downloaded corpora, extracted text and cached
	// vocabularies.
	TmpDir string

	// TimitDir, ParsingDir and EndeBPEDir point at local copies of
	// licensed corpora that cannot be downloaded. Problems needing one
	// are skipped while the matching directory is not given.
	TimitDir   string
	ParsingDir string
	EndeBPEDir string

	// Sources maps archive file names (langmodel.PTBArchive and
	// friends) to replacement download URLs, for mirrors.
	Sources map[string]string

	// Checksums maps archive file names to expected MD5 sums. An empty
	// sum skips verification of that archive.
	Checksums map[string]string
}

// Builtin is the static problem table.
//
// Factories capture conf but touch nothing before they run, so building
// the table is cheap and side-effect free.
func Builtin(l *log.Logger, conf Config) map[string]Descriptor {
	ptb := langmodel.PTB{
		TmpDir:   conf.TmpDir,
		URL:      conf.Sources[langmodel.PTBArchive],
		Checksum: conf.Checksums[langmodel.PTBArchive],
	}
	lm1b := langmodel.LM1B{
		TmpDir:   conf.TmpDir,
		URL:      conf.Sources[langmodel.LM1BArchive],
		Checksum: conf.Checksums[langmodel.LM1BArchive],
	}
	wiki := langmodel.Wiki{
		TmpDir:   conf.TmpDir,
		URL:      conf.Sources[langmodel.WikiArchive],
		Checksum: conf.Checksums[langmodel.WikiArchive],
	}
	ende := translate.EnDeBPE{Dir: conf.EndeBPEDir}
	wsj := parsing.WSJ{Dir: conf.ParsingDir, TmpDir: conf.TmpDir}
	timit := audio.TIMIT{Dir: conf.TimitDir, TmpDir: conf.TmpDir}

	return map[string]Descriptor{
		"algorithmic_identity_binary40": SplitGenerators{
			Train: algorithmic.Identity(2, 40, 100000),
			Dev:   algorithmic.Identity(2, 400, 10000),
		},
		"algorithmic_identity_decimal40": SplitGenerators{
			Train: algorithmic.Identity(10, 40, 100000),
			Dev:   algorithmic.Identity(10, 400, 10000),
		},
		"algorithmic_shift_decimal40": SplitGenerators{
			Train: algorithmic.Shift(20, 10, 40, 100000),
			Dev:   algorithmic.Shift(20, 10, 80, 10000),
		},
		"algorithmic_reverse_binary40": SplitGenerators{
			Train: algorithmic.Reverse(2, 40, 100000),
			Dev:   algorithmic.Reverse(2, 400, 10000),
		},
		"algorithmic_reverse_decimal40": SplitGenerators{
			Train: algorithmic.Reverse(10, 40, 100000),
			Dev:   algorithmic.Reverse(10, 400, 10000),
		},
		"algorithmic_reverse_nlplike_decimal8k": SplitGenerators{
			Train: algorithmic.ReverseNLPLike(8000, 70, 100000, 10, 1.300),
			Dev:   algorithmic.ReverseNLPLike(8000, 700, 10000, 10, 1.300),
		},
		"algorithmic_reverse_nlplike_decimal32k": SplitGenerators{
			Train: algorithmic.ReverseNLPLike(32000, 70, 100000, 10, 1.050),
			Dev:   algorithmic.ReverseNLPLike(32000, 700, 10000, 10, 1.050),
		},
		"algorithmic_addition_binary40": SplitGenerators{
			Train: algorithmic.Addition(2, 40, 100000),
			Dev:   algorithmic.Addition(2, 400, 10000),
		},
		"algorithmic_addition_decimal40": SplitGenerators{
			Train: algorithmic.Addition(10, 40, 100000),
			Dev:   algorithmic.Addition(10, 400, 10000),
		},
		"algorithmic_multiplication_binary40": SplitGenerators{
			Train: algorithmic.Multiplication(2, 40, 100000),
			Dev:   algorithmic.Multiplication(2, 400, 10000),
		},
		"algorithmic_multiplication_decimal40": SplitGenerators{
			Train: algorithmic.Multiplication(10, 40, 100000),
			Dev:   algorithmic.Multiplication(10, 400, 10000),
		},
		"languagemodel_ptb_10k": SplitGenerators{
			Train: ptb.Tokens(l, true, 10000),
			Dev:   ptb.Tokens(l, false, 10000),
		},
		"languagemodel_ptb_characters": SplitGenerators{
			Train: ptb.Characters(l, true),
			Dev:   ptb.Characters(l, false),
		},
		"languagemodel_lm1b32k": SplitGenerators{
			Train:     lm1b.Tokens(l, true, 1<<15),
			Dev:       lm1b.Tokens(l, false, 1<<15),
			DevShards: 10,
		},
		"languagemodel_wiki_full32k": SingleCorpusGenerators{
			Train:      wiki.Tokens(l, 1<<15),
			ShardCount: 1000,
		},
		"translate_ende_bpe32k": SplitGenerators{
			Train: ende.Tokens(l, true),
			Dev:   ende.Tokens(l, false),
		},
		"parsing_english_ptb8k": SplitGenerators{
			Train: wsj.Trees(l, true, 1<<13, 1<<9),
			Dev:   wsj.Trees(l, false, 1<<13, 1<<9),
		},
		"parsing_english_ptb16k": SplitGenerators{
			Train: wsj.Trees(l, true, 1<<14, 1<<9),
			Dev:   wsj.Trees(l, false, 1<<14, 1<<9),
		},
		"audio_timit_characters": SplitGenerators{
			Train: timit.Characters(l, true),
			Dev:   timit.Characters(l, false),
		},
		"audio_timit_tokens_8k": SplitGenerators{
			Train: timit.Tokens(l, true, 1<<13),
			Dev:   timit.Tokens(l, false, 1<<13),
		},
	}
}
