// Package translate generates translation examples from parallel
// corpora: aligned source and target text files, one sentence per line.
package translate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/akshay120860/tensor2tensor/pkg/features"
	"github.com/akshay120860/tensor2tensor/pkg/vocab"
)

const (
	endeTrainSource = "train.tok.clean.bpe.32000.en"
	endeTrainTarget = "train.tok.clean.bpe.32000.de"
	endeDevSource   = "newstest2013.tok.bpe.32000.en"
	endeDevTarget   = "newstest2013.tok.bpe.32000.de"
	endeVocabFile   = "vocab.bpe.32000"
)

// EnDeBPE reads a pre-tokenized, byte-pair-encoded WMT English-German
// corpus from a local directory.
//
// The corpus is not downloadable; the shared vocabulary file and the
// four text files must already be in Dir. Problems backed by this
// corpus are skipped when no directory is configured.
type EnDeBPE struct {
	Dir string
}

// Tokens yields one example per aligned sentence pair of the split
// selected by train: "inputs" holds the source ids, "targets" the
// target ids, both ending with EOS. Ids come from the corpus's own
// vocabulary file, not from a generated vocabulary.
func (e EnDeBPE) Tokens(l *log.Logger, train bool) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		v, err := vocab.Load(filepath.Join(e.Dir, endeVocabFile))
		if err != nil {
			return nil, err
		}
		l.Printf("loaded vocabulary %s (%d tokens)", endeVocabFile, v.Size())

		source, target := endeTrainSource, endeTrainTarget
		if !train {
			source, target = endeDevSource, endeDevTarget
		}
		return parallelExamples(
			filepath.Join(e.Dir, source),
			filepath.Join(e.Dir, target),
			v,
		), nil
	}
}

// parallelExamples streams examples over two aligned line files.
//
// Blank lines are kept: dropping them on one side only would shift the
// alignment of everything after. Files of unequal length are an error
// at the point the shorter one ends.
func parallelExamples(sourcePath string, targetPath string, v *vocab.Vocabulary) features.Iterator {
	var source, target *os.File
	var sourceLines, targetLines *bufio.Scanner

	open := func() error {
		s, err := os.Open(sourcePath)
		if err != nil {
			return err
		}
		t, err := os.Open(targetPath)
		if err != nil {
			s.Close()
			return err
		}
		source, target = s, t
		sourceLines = bufio.NewScanner(s)
		sourceLines.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
		targetLines = bufio.NewScanner(t)
		targetLines.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
		return nil
	}

	return features.FromFunc(
		func(ctx context.Context) (features.Example, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if source == nil {
				if err := open(); err != nil {
					return nil, err
				}
			}

			sourceOk := sourceLines.Scan()
			targetOk := targetLines.Scan()
			if !sourceOk || !targetOk {
				if err := sourceLines.Err(); err != nil {
					return nil, err
				}
				if err := targetLines.Err(); err != nil {
					return nil, err
				}
				if sourceOk != targetOk {
					return nil, fmt.Errorf(
						"parallel corpus out of sync: %s and %s differ in line count",
						sourcePath, targetPath,
					)
				}
				return nil, io.EOF
			}

			return features.Example{
				"inputs":  features.Ints(append(v.Encode(sourceLines.Text()), vocab.EOS)),
				"targets": features.Ints(append(v.Encode(targetLines.Text()), vocab.EOS)),
			}, nil
		},
		func() error {
			var firstErr error
			for _, f := range []*os.File{source, target} {
				if f == nil {
					continue
				}
				if err := f.Close(); err != nil && firstErr == nil {
					firstErr = err
				}
			}
			return firstErr
		},
	)
}
