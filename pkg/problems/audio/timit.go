// Package audio generates speech recognition examples from a local
// TIMIT-style corpus: utterance waveforms paired with transcript files.
package audio

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-audio/wav"

	"github.com/akshay120860/tensor2tensor/pkg/features"
	"github.com/akshay120860/tensor2tensor/pkg/vocab"
)

// TIMIT reads utterances from a local corpus directory laid out the
// TIMIT way: a TRAIN and a TEST tree, each holding WAV recordings next
// to same-named .txt transcripts.
//
// The corpus is licensed and not downloadable; problems backed by it
// are skipped when no directory is configured. Vocabularies are built
// from the training transcripts and cached under TmpDir.
type TIMIT struct {
	Dir    string
	TmpDir string
}

type utterance struct {
	wav        string
	transcript string
}

// utterances pairs each recording of the split with its transcript,
// sorted by path. Recordings without a transcript (and transcripts
// without a recording) are left out.
func (c TIMIT) utterances(train bool) ([]utterance, error) {
	root := filepath.Join(c.Dir, "TEST")
	if train {
		root = filepath.Join(c.Dir, "TRAIN")
	}

	wavs := map[string]string{}
	texts := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := strings.TrimSuffix(path, filepath.Ext(path))
		switch strings.ToLower(filepath.Ext(path)) {
		case ".wav":
			wavs[base] = path
		case ".txt":
			texts[base] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	found := []utterance{}
	for base, w := range wavs {
		if t, ok := texts[base]; ok {
			found = append(found, utterance{wav: w, transcript: t})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].wav < found[j].wav })
	return found, nil
}

// readSamples decodes a PCM WAV file into its samples, interleaved
// when the recording has more than one channel.
func readSamples(path string) (samples features.Ints, frames, width, channels int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	defer f.Close()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	channels = int64(buf.Format.NumChannels)
	if channels <= 0 {
		return nil, 0, 0, 0, fmt.Errorf("decoding %s: no channels", path)
	}
	width = int64(buf.SourceBitDepth / 8)
	frames = int64(len(buf.Data)) / channels

	samples = make(features.Ints, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int64(s)
	}
	return samples, frames, width, channels, nil
}

// transcriptText reads one transcript. TIMIT transcripts lead with the
// sample range of the utterance ("0 46797 She had your dark suit..."),
// so when the first two fields are integers they are dropped.
func transcriptText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(content))
	if 3 <= len(fields) {
		_, err1 := strconv.Atoi(fields[0])
		_, err2 := strconv.Atoi(fields[1])
		if err1 == nil && err2 == nil {
			fields = fields[2:]
		}
	}
	return strings.Join(fields, " "), nil
}

// characterIds encodes text one byte per id, shifted past the reserved
// ids, ending with EOS.
func characterIds(text string) features.Ints {
	ids := make(features.Ints, 0, len(text)+1)
	for _, b := range []byte(text) {
		ids = append(ids, int64(b)+vocab.UNK+1)
	}
	return append(ids, vocab.EOS)
}

// utteranceExamples streams one example per utterance: the decoded
// samples under "inputs", the recording's shape under the audio/*
// features, and the encoded transcript under "targets".
func utteranceExamples(utterances []utterance, encode func(text string) features.Ints) features.Iterator {
	i := 0
	return features.FromFunc(
		func(ctx context.Context) (features.Example, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if len(utterances) <= i {
				return nil, io.EOF
			}
			u := utterances[i]
			i += 1

			samples, frames, width, channels, err := readSamples(u.wav)
			if err != nil {
				return nil, err
			}
			text, err := transcriptText(u.transcript)
			if err != nil {
				return nil, err
			}
			return features.Example{
				"inputs":              samples,
				"audio/channel_count": features.Ints{channels},
				"audio/sample_count":  features.Ints{frames},
				"audio/sample_width":  features.Ints{width},
				"targets":             encode(text),
			}, nil
		},
		func() error { return nil },
	)
}

// Characters yields utterances of the split selected by train with
// byte-level transcript targets.
func (c TIMIT) Characters(l *log.Logger, train bool) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		utterances, err := c.utterances(train)
		if err != nil {
			return nil, err
		}
		l.Printf("found %d utterances", len(utterances))
		return utteranceExamples(utterances, characterIds), nil
	}
}

// Tokens yields utterances of the split selected by train with
// transcript targets encoded by a vocabulary of at most vocabSize
// tokens, built from the training transcripts.
func (c TIMIT) Tokens(l *log.Logger, train bool, vocabSize int) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		trainUtterances, err := c.utterances(true)
		if err != nil {
			return nil, err
		}

		v, err := vocab.GetOrGenerate(
			ctx, l, c.TmpDir,
			fmt.Sprintf("vocab.timit.%d", vocabSize), vocabSize,
			func(ctx context.Context, consume func(line string) error) error {
				for _, u := range trainUtterances {
					if err := ctx.Err(); err != nil {
						return err
					}
					text, err := transcriptText(u.transcript)
					if err != nil {
						return err
					}
					if err := consume(text); err != nil {
						return err
					}
				}
				return nil
			},
		)
		if err != nil {
			return nil, err
		}

		utterances := trainUtterances
		if !train {
			utterances, err = c.utterances(false)
			if err != nil {
				return nil, err
			}
		}
		l.Printf("found %d utterances", len(utterances))
		return utteranceExamples(utterances, func(text string) features.Ints {
			return append(v.Encode(text), vocab.EOS)
		}), nil
	}
}
