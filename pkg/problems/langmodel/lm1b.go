package langmodel

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/akshay120860/tensor2tensor/pkg/features"
	"github.com/akshay120860/tensor2tensor/pkg/fetch"
	"github.com/akshay120860/tensor2tensor/pkg/vocab"
)

// LM1BArchive is the local file name of the downloaded billion-word
// benchmark corpus.
const LM1BArchive = "1-billion-word-language-modeling-benchmark-r13output.tar.gz"

const (
	lm1bDefaultURL = "http://www.statmt.org/lm-benchmark/" + LM1BArchive

	lm1bTrainShards = 99
	lm1bHeldoutFile = "news.en.heldout-00000-of-00050"
)

func lm1bTrainShard(i int) string {
	return fmt.Sprintf("news.en-%05d-of-00100", i)
}

// LM1B is the One Billion Word language-modeling benchmark corpus.
type LM1B struct {
	TmpDir   string
	URL      string
	Checksum string
}

func (b LM1B) download(ctx context.Context, l *log.Logger) (string, error) {
	url := b.URL
	if url == "" {
		url = lm1bDefaultURL
	}
	opts := downloadOptions(l)
	if b.Checksum != "" {
		opts = append(opts, fetch.WithChecksum(b.Checksum))
	}
	return fetch.MaybeDownload(ctx, l, b.TmpDir, LM1BArchive, url, opts...)
}

// Tokens yields token-level examples over the corpus split selected by
// train: the 99 tokenized training shards chained in order, or the
// first heldout shard.
//
// The vocabulary is built from the first training shard only. One
// shard holds amply more text than any vocabulary size ever needs,
// and counting the whole corpus would read 1B words.
func (b LM1B) Tokens(l *log.Logger, train bool, vocabSize int) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		archivePath, err := b.download(ctx, l)
		if err != nil {
			return nil, err
		}

		vocabShard := filepath.Join(b.TmpDir, "lm1b", lm1bTrainShard(1))
		if err := extractFiles(archivePath, map[string]string{lm1bTrainShard(1): vocabShard}); err != nil {
			return nil, err
		}
		v, err := vocab.GetOrGenerate(
			ctx, l, b.TmpDir,
			fmt.Sprintf("vocab.lm1b.en.%d", vocabSize),
			vocabSize,
			vocab.FromFile(vocabShard),
		)
		if err != nil {
			return nil, err
		}

		var paths []string
		if train {
			wanted := map[string]string{}
			for i := 1; i <= lm1bTrainShards; i++ {
				name := lm1bTrainShard(i)
				wanted[name] = filepath.Join(b.TmpDir, "lm1b", name)
				paths = append(paths, wanted[name])
			}
			if err := extractFiles(archivePath, wanted); err != nil {
				return nil, err
			}
		} else {
			heldout := filepath.Join(b.TmpDir, "lm1b", lm1bHeldoutFile)
			if err := extractFiles(archivePath, map[string]string{lm1bHeldoutFile: heldout}); err != nil {
				return nil, err
			}
			paths = []string{heldout}
		}

		return chainFiles(paths, func(line string) features.Example {
			return tokenExample(v, line)
		}), nil
	}
}
