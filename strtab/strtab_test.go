package strtab

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aglyzov/go-amt/alphabet"
	"github.com/aglyzov/go-amt/amt"
	"github.com/aglyzov/go-amt/trie"
)

var scenario = []string{"cat", "cats", "car", "card", "care", "can", "cape"}

func TestBuild_Scenario(t *testing.T) {
	t.Parallel()

	tables, err := Build(scenario)
	require.NoError(t, err)

	for _, tcase := range []*struct {
		Word  string
		ExpOK bool
	}{
		{"car", true},
		{"ca", false},
		{"cap", false},
		{"cats", true},
		{"cape", true},
		{"can", true},
		{"c", false},
		{"", false},
		{"cards", false},
	} {
		tcase := tcase

		for _, m := range tables.Matchers() {
			m := m

			t.Run(fmt.Sprintf("%s/%#v", m.Name, tcase.Word), func(t *testing.T) {
				assert.Equal(t, tcase.ExpOK, m.Contains(tcase.Word))
			})
		}
	}

	want := []string{"can", "cape", "car", "card", "care", "cat", "cats"}

	for _, keys := range [][]string{
		tables.Pointer.Keys(),
		tables.Bitmap.Keys(),
		tables.Flat.Keys(),
		tables.Split.Keys(),
	} {
		if diff := cmp.Diff(want, keys); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	}

	assert.Equal(t, "can'pe'r'd'e't's'", tables.Split.Outline())
	require.NoError(t, tables.Verify([]string{"ca", "cap", "dog", "CAT"}))
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	_, err := Build([]string{"fine", "Not fine"})
	assert.ErrorIs(t, err, alphabet.ErrInvalidSymbol)

	_, err = Build([]string{"fine", ""})
	assert.ErrorIs(t, err, trie.ErrEmptyWord)
}

func TestBuild_CapacityExceeded(t *testing.T) {
	t.Parallel()

	words := []string{"b"}

	for i := 0; i < 40_000; i++ {
		var (
			word = []byte{'a', 0, 0, 0, 0}
			num  = i
		)

		for pos := len(word) - 1; pos > 0; pos-- {
			word[pos] = alphabet.Symbol(num % alphabet.Size)
			num /= alphabet.Size
		}

		words = append(words, string(word))
	}

	tables, err := Build(words)
	require.ErrorIs(t, err, amt.ErrCapacityExceeded)
	assert.Nil(t, tables)
	assert.Contains(t, err.Error(), "split")
}

func TestVerify_FakeData(t *testing.T) {
	t.Parallel()

	const (
		total = 5_000
		seed  = 1234567890
	)

	var (
		fake   = gofakeit.New(seed)
		words  []string
		probes []string
	)

	for i := 0; i < total; i++ {
		word := strings.ToLower(fake.Word())
		if word != "" && alphabet.Valid(word) == nil {
			words = append(words, word)
		}

		probes = append(probes, strings.ToLower(fake.Word()), fake.Letter(), fake.Lexify("????"))
	}

	tables, err := Build(words)
	require.NoError(t, err)

	require.NoError(t, tables.Verify(probes))

	for _, word := range words {
		for _, m := range tables.Matchers() {
			assert.True(t, m.Contains(word), "%s: %q", m.Name, word)
		}
	}
}

func TestVerify_Mismatch(t *testing.T) {
	t.Parallel()

	tables, err := Build(scenario)
	require.NoError(t, err)

	other, err := Build(append([]string{"dog"}, scenario...))
	require.NoError(t, err)

	// same outline but different answers can't happen for real tables, so
	// swap in a whole image from another dictionary
	tables.Split = other.Split

	err = tables.Verify(nil)

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "pointer", mismatch.Reference)
	assert.Equal(t, "split", mismatch.Other)
	assert.Equal(t, "", mismatch.Word)
}

func TestStats(t *testing.T) {
	t.Parallel()

	tables, err := Build([]string{"ab", "b", "b"})
	require.NoError(t, err)

	assert.Equal(t, Stats{
		Words:        2,
		PointerNodes: 4,
		BitmapNodes:  4,
		FlatBytes:    28,
		SplitBytes:   24,
		Masks:        3,
		Edges:        3,
	}, tables.Stats())
}

func TestReadDictionary(t *testing.T) {
	t.Parallel()

	words, err := ReadDictionary(strings.NewReader("# words\ncat\n\n  cats \n#car\ncard\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "cats", "card"}, words)
}
