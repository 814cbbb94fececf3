// Package vocab builds, stores and applies token vocabularies for text
// problems.
//
// A vocabulary maps whitespace-separated tokens to dense int ids. The
// first three ids are reserved: PAD, EOS and UNK. Vocabulary files hold
// one token per line; the line number is the token's id.
package vocab

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kio "github.com/akshay120860/tensor2tensor/pkg/io"
)

const (
	PAD int64 = 0
	EOS int64 = 1
	UNK int64 = 2
)

var reservedTokens = []string{"<pad>", "<EOS>", "<UNK>"}

type Vocabulary struct {
	tokens  []string
	byToken map[string]int64
}

// New builds a Vocabulary from tokens, id by position.
//
// return:
//
// - error: when a token appears twice.
func New(tokens []string) (*Vocabulary, error) {
	byToken := make(map[string]int64, len(tokens))
	for i, tok := range tokens {
		if _, ok := byToken[tok]; ok {
			return nil, fmt.Errorf("token %s is duplicated (ids %d and %d)", tok, byToken[tok], i)
		}
		byToken[tok] = int64(i)
	}
	return &Vocabulary{tokens: tokens, byToken: byToken}, nil
}

// Build makes a Vocabulary of at most size tokens: the reserved ones,
// then corpus tokens by count, most frequent first.
//
// Ties break on the token text, so the same counts always build the
// same vocabulary.
func Build(tokenCounts map[string]int, size int) *Vocabulary {
	counted := make([]string, 0, len(tokenCounts))
	for tok := range tokenCounts {
		counted = append(counted, tok)
	}
	sort.Slice(counted, func(i, j int) bool {
		if tokenCounts[counted[i]] != tokenCounts[counted[j]] {
			return tokenCounts[counted[j]] < tokenCounts[counted[i]]
		}
		return counted[i] < counted[j]
	})

	tokens := make([]string, 0, size)
	tokens = append(tokens, reservedTokens...)
	for _, tok := range counted {
		if size <= len(tokens) {
			break
		}
		if _, reserved := indexOfReserved(tok); reserved {
			continue
		}
		tokens = append(tokens, tok)
	}

	v, _ := New(tokens)
	return v
}

func indexOfReserved(tok string) (int, bool) {
	for i, r := range reservedTokens {
		if r == tok {
			return i, true
		}
	}
	return 0, false
}

// Load reads a vocabulary file written by Save.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tokens := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}
	v, err := New(tokens)
	if err != nil {
		return nil, fmt.Errorf("vocabulary %s is broken: %w", path, err)
	}
	return v, nil
}

// Save writes the vocabulary, one token per line, creating parent
// directories as needed.
func (v *Vocabulary) Save(path string) error {
	f, err := kio.CreateAll(path, 0644, 0755)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, tok := range v.tokens {
		if _, err := fmt.Fprintln(w, tok); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// Id finds the id of token. Unknown tokens map to UNK.
func (v *Vocabulary) Id(token string) int64 {
	if id, ok := v.byToken[token]; ok {
		return id
	}
	return UNK
}

// Token finds the token of id. Ids outside the vocabulary map to the
// UNK token.
func (v *Vocabulary) Token(id int64) string {
	if id < 0 || int64(len(v.tokens)) <= id {
		return v.tokens[UNK]
	}
	return v.tokens[id]
}

// Encode converts text into ids, token by whitespace-separated token.
func (v *Vocabulary) Encode(text string) []int64 {
	fields := strings.Fields(text)
	ids := make([]int64, len(fields))
	for i, tok := range fields {
		ids[i] = v.Id(tok)
	}
	return ids
}

// Decode converts ids back into space-joined tokens.
func (v *Vocabulary) Decode(ids []int64) string {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = v.Token(id)
	}
	return strings.Join(tokens, " ")
}

// CorpusSource feeds corpus text, line by line, into consume. Returning
// the error of consume unmodified stops the walk.
type CorpusSource func(ctx context.Context, consume func(line string) error) error

// FromFile is a CorpusSource reading lines of the file at path.
func FromFile(path string) CorpusSource {
	return func(ctx context.Context, consume func(line string) error) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := consume(scanner.Text()); err != nil {
				return err
			}
		}
		return scanner.Err()
	}
}

// GetOrGenerate loads the vocabulary dir/name when the file is there,
// and otherwise builds one of at most size tokens by counting the
// corpus from source, saving it for later runs.
func GetOrGenerate(ctx context.Context, l *log.Logger, dir string, name string, size int, source CorpusSource) (*Vocabulary, error) {
	path := filepath.Join(dir, name)
	if v, err := Load(path); err == nil {
		l.Printf("found vocabulary %s (%d tokens). reusing it", path, v.Size())
		return v, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	l.Printf("building vocabulary %s", path)
	counts := map[string]int{}
	err := source(ctx, func(line string) error {
		for _, tok := range strings.Fields(line) {
			counts[tok] += 1
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	v := Build(counts, size)
	if err := v.Save(path); err != nil {
		return nil, err
	}
	l.Printf("built vocabulary %s (%d tokens)", path, v.Size())
	return v, nil
}
