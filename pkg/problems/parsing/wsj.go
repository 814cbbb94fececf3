// Package parsing generates parse-tree prediction examples from a
// corpus of linearized constituency trees, one tree per line, in the
// Penn Treebank bracket format.
package parsing

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/akshay120860/tensor2tensor/pkg/features"
	"github.com/akshay120860/tensor2tensor/pkg/vocab"
)

const (
	wsjTrainFile = "wsj_train.trees"
	wsjDevFile   = "wsj_dev.trees"
)

// WSJ reads a Wall Street Journal style treebank from a local
// directory holding wsj_train.trees and wsj_dev.trees.
//
// The corpus is licensed and not downloadable; problems backed by it
// are skipped when no directory is configured. Vocabularies are built
// from the training trees and cached under TmpDir.
type WSJ struct {
	Dir    string
	TmpDir string
}

// wordsAndTags splits one linearized tree into the sentence and its
// tag sequence. An opening tag is emitted as met; a tag whose subtree
// ends is emitted again as "/TAG". The part-of-speech tag wrapping
// each word closes silently with the word.
//
// "(S (NP (DT the) (NN cat)) (VP (VBD sat)))" comes out as
// words "the cat sat" and tags "S NP DT NN /NP VP VBD /VP /S".
func wordsAndTags(tree string) ([]string, []string, error) {
	words, tags, stack := []string{}, []string{}, []string{}
	for _, tok := range strings.Fields(tree) {
		if strings.HasPrefix(tok, "(") {
			tag := tok[1:]
			tags = append(tags, tag)
			stack = append(stack, tag)
			continue
		}
		if !strings.HasSuffix(tok, ")") {
			return nil, nil, fmt.Errorf("malformed tree %q: token %s closes no tag", tree, tok)
		}
		if len(stack) == 0 {
			return nil, nil, fmt.Errorf("malformed tree %q: too many closing brackets", tree)
		}
		stack = stack[:len(stack)-1]
		tok = strings.TrimSuffix(tok, ")")
		for strings.HasSuffix(tok, ")") {
			if len(stack) == 0 {
				return nil, nil, fmt.Errorf("malformed tree %q: too many closing brackets", tree)
			}
			tags = append(tags, "/"+stack[len(stack)-1])
			stack = stack[:len(stack)-1]
			tok = strings.TrimSuffix(tok, ")")
		}
		words = append(words, tok)
	}
	if len(stack) != 0 {
		return nil, nil, fmt.Errorf("malformed tree %q: %d tags are left open", tree, len(stack))
	}
	return words, tags, nil
}

// treeSource feeds either the words or the tags of each training tree
// into a vocabulary builder.
func treeSource(path string, pick func(words []string, tags []string) []string) vocab.CorpusSource {
	return func(ctx context.Context, consume func(line string) error) error {
		return vocab.FromFile(path)(ctx, func(line string) error {
			if strings.TrimSpace(line) == "" {
				return nil
			}
			words, tags, err := wordsAndTags(line)
			if err != nil {
				return err
			}
			return consume(strings.Join(pick(words, tags), " "))
		})
	}
}

// Trees yields one example per tree of the split selected by train:
// "inputs" holds the sentence's word ids, "targets" the linearized tag
// ids, both ending with EOS.
//
// Word and tag vocabularies of the given sizes are built from the
// training split on first use, whichever split is requested.
func (w WSJ) Trees(l *log.Logger, train bool, sourceVocabSize int, targetVocabSize int) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		trainPath := filepath.Join(w.Dir, wsjTrainFile)

		sourceVocab, err := vocab.GetOrGenerate(
			ctx, l, w.TmpDir,
			fmt.Sprintf("vocab.wsj_source.%d", sourceVocabSize), sourceVocabSize,
			treeSource(trainPath, func(words, _ []string) []string { return words }),
		)
		if err != nil {
			return nil, err
		}
		targetVocab, err := vocab.GetOrGenerate(
			ctx, l, w.TmpDir,
			fmt.Sprintf("vocab.wsj_target.%d", targetVocabSize), targetVocabSize,
			treeSource(trainPath, func(_, tags []string) []string { return tags }),
		)
		if err != nil {
			return nil, err
		}

		path := trainPath
		if !train {
			path = filepath.Join(w.Dir, wsjDevFile)
		}
		return treeExamples(path, sourceVocab, targetVocab), nil
	}
}

// treeExamples streams examples over a tree file, skipping blank
// lines. A malformed tree stops the stream with its error.
func treeExamples(path string, sourceVocab *vocab.Vocabulary, targetVocab *vocab.Vocabulary) features.Iterator {
	var f *os.File
	var lines *bufio.Scanner

	return features.FromFunc(
		func(ctx context.Context) (features.Example, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if f == nil {
				opened, err := os.Open(path)
				if err != nil {
					return nil, err
				}
				f = opened
				lines = bufio.NewScanner(f)
				lines.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
			}

			for lines.Scan() {
				line := lines.Text()
				if strings.TrimSpace(line) == "" {
					continue
				}
				words, tags, err := wordsAndTags(line)
				if err != nil {
					return nil, err
				}
				return features.Example{
					"inputs":  features.Ints(append(sourceVocab.Encode(strings.Join(words, " ")), vocab.EOS)),
					"targets": features.Ints(append(targetVocab.Encode(strings.Join(tags, " ")), vocab.EOS)),
				}, nil
			}
			if err := lines.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		},
		func() error {
			if f == nil {
				return nil
			}
			return f.Close()
		},
	)
}
