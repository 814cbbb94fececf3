package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordsAndTags(t *testing.T) {
	t.Run("it splits a tree into words and a tag sequence with closings", func(t *testing.T) {
		words, tags, err := wordsAndTags("(S (NP (DT the) (NN cat)) (VP (VBD sat)))")
		require.NoError(t, err)
		assert.Equal(t, []string{"the", "cat", "sat"}, words)
		assert.Equal(
			t,
			[]string{"S", "NP", "DT", "NN", "/NP", "VP", "VBD", "/VP", "/S"},
			tags,
		)
	})

	t.Run("it closes a part-of-speech tag silently with its word", func(t *testing.T) {
		words, tags, err := wordsAndTags("(S (VB go))")
		require.NoError(t, err)
		assert.Equal(t, []string{"go"}, words)
		assert.Equal(t, []string{"S", "VB", "/S"}, tags)
	})

	t.Run("it unwinds deeply nested closings in one token", func(t *testing.T) {
		words, tags, err := wordsAndTags("(A (B (C (D x))))")
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, words)
		assert.Equal(t, []string{"A", "B", "C", "D", "/C", "/B", "/A"}, tags)
	})

	t.Run("it rejects a tree with too many closing brackets", func(t *testing.T) {
		_, _, err := wordsAndTags("(S (VB go)))")
		assert.Error(t, err)
	})

	t.Run("it rejects a tree left open", func(t *testing.T) {
		_, _, err := wordsAndTags("(S (NP (VB go)")
		assert.Error(t, err)
	})

	t.Run("it rejects a bare word outside any tag", func(t *testing.T) {
		_, _, err := wordsAndTags("(S (VB go)) stray")
		assert.Error(t, err)
	})
}
