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

// WikiArchive is the local file name of the downloaded Wikipedia dump.
const WikiArchive = "enwiki-latest-pages.txt.gz"

const (
	wikiDefaultURL = "https://storage.googleapis.com/tensorflow-data/wiki/" + WikiArchive
	wikiCorpusFile = "enwiki-latest-pages.txt"
)

// Wiki is a plain-text English Wikipedia dump, one document per line.
//
// It powers a single-corpus problem: train, dev and test data are all
// slices of the one generation run.
type Wiki struct {
	TmpDir   string
	URL      string
	Checksum string
}

// Tokens yields token-level examples over the whole dump.
//
// The corpus is one gzipped text file; the vocabulary is built from
// the unpacked text on first use.
func (w Wiki) Tokens(l *log.Logger, vocabSize int) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		url := w.URL
		if url == "" {
			url = wikiDefaultURL
		}
		opts := downloadOptions(l)
		if w.Checksum != "" {
			opts = append(opts, fetch.WithChecksum(w.Checksum))
		}
		archivePath, err := fetch.MaybeDownload(ctx, l, w.TmpDir, WikiArchive, url, opts...)
		if err != nil {
			return nil, err
		}

		corpus := filepath.Join(w.TmpDir, wikiCorpusFile)
		if err := fetch.Gunzip(l, archivePath, corpus); err != nil {
			return nil, err
		}

		v, err := vocab.GetOrGenerate(
			ctx, l, w.TmpDir,
			fmt.Sprintf("vocab.wiki.%d", vocabSize),
			vocabSize,
			vocab.FromFile(corpus),
		)
		if err != nil {
			return nil, err
		}

		return lineExamples(corpus, func(line string) features.Example {
			return tokenExample(v, line)
		}), nil
	}
}
