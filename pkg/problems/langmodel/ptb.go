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

// PTBArchive is the local file name of the downloaded PTB corpus.
const PTBArchive = "simple-examples.tgz"

const ptbDefaultURL = "http://www.fit.vutbr.cz/~imikolov/rnnlm/" + PTBArchive

const (
	ptbTrainFile = "ptb.train.txt"
	ptbValidFile = "ptb.valid.txt"
)

// PTB is the Penn Treebank language-modeling corpus.
type PTB struct {
	// TmpDir is where the corpus archive, its text files and the
	// vocabulary live.
	TmpDir string

	// URL overrides where the corpus archive is downloaded from.
	// Empty means the upstream location.
	URL string

	// Checksum is the MD5 of the archive, in hex. Empty skips
	// verification.
	Checksum string
}

// prepare downloads and unpacks the corpus, idempotently, and returns
// the paths of the train and valid text files.
func (p PTB) prepare(ctx context.Context, l *log.Logger) (string, string, error) {
	url := p.URL
	if url == "" {
		url = ptbDefaultURL
	}
	opts := downloadOptions(l)
	if p.Checksum != "" {
		opts = append(opts, fetch.WithChecksum(p.Checksum))
	}
	archivePath, err := fetch.MaybeDownload(ctx, l, p.TmpDir, PTBArchive, url, opts...)
	if err != nil {
		return "", "", err
	}

	trainPath := filepath.Join(p.TmpDir, ptbTrainFile)
	validPath := filepath.Join(p.TmpDir, ptbValidFile)
	err = extractFiles(archivePath, map[string]string{
		ptbTrainFile: trainPath,
		ptbValidFile: validPath,
	})
	if err != nil {
		return "", "", err
	}
	return trainPath, validPath, nil
}

// Tokens yields token-level examples from the corpus split selected by
// train. The vocabulary of vocabSize tokens is built from the training
// split on first use and cached in TmpDir.
func (p PTB) Tokens(l *log.Logger, train bool, vocabSize int) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		trainPath, validPath, err := p.prepare(ctx, l)
		if err != nil {
			return nil, err
		}

		v, err := vocab.GetOrGenerate(
			ctx, l, p.TmpDir,
			fmt.Sprintf("vocab.lmptb.%d", vocabSize),
			vocabSize,
			vocab.FromFile(trainPath),
		)
		if err != nil {
			return nil, err
		}

		corpus := trainPath
		if !train {
			corpus = validPath
		}
		return lineExamples(corpus, func(line string) features.Example {
			return tokenExample(v, line)
		}), nil
	}
}

// Characters yields byte-level examples from the corpus split selected
// by train. No vocabulary is involved.
func (p PTB) Characters(l *log.Logger, train bool) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		trainPath, validPath, err := p.prepare(ctx, l)
		if err != nil {
			return nil, err
		}

		corpus := trainPath
		if !train {
			corpus = validPath
		}
		return lineExamples(corpus, byteExample), nil
	}
}
