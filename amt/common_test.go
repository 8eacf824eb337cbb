package amt

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/aglyzov/go-amt/alphabet"
	"github.com/aglyzov/go-amt/bitmap"
	"github.com/aglyzov/go-amt/trie"
)

var sample = []string{
	"arrow", "base", "bat", "case", "castle", "car", "card", "care", "cat",
	"cats", "can", "cape", "deer", "dear", "deep", "art", "article", "bar",
}

func compress(t testing.TB, words ...string) *bitmap.Trie {
	t.Helper()

	src, err := trie.New(words...)
	require.NoError(t, err)

	return bitmap.Compress(src)
}

func encode(t testing.TB, words ...string) (*bitmap.Trie, *Flat, *Split) {
	t.Helper()

	bt := compress(t, words...)

	flat, err := EncodeFlat(bt)
	require.NoError(t, err)

	split, err := EncodeSplit(bt)
	require.NoError(t, err)

	return bt, flat, split
}

func fakeWords(seed int64, total int) []string {
	var (
		fake  = gofakeit.New(seed)
		words = make([]string, 0, total)
	)

	for len(words) < total {
		word := strings.ToLower(fake.Word())
		if word == "" || alphabet.Valid(word) != nil {
			continue
		}
		words = append(words, word)
	}

	return words
}

// probes returns the words plus near misses: prefixes, extensions and
// single-symbol substitutions
func probes(words []string) []string {
	out := make([]string, 0, 4*len(words))

	for _, word := range words {
		out = append(out,
			word,
			word[:len(word)-1],
			word+"s",
			word[:len(word)-1]+string(alphabet.Symbol(alphabet.Size-1)),
		)
	}

	return out
}
