// Package strtab builds every trie representation of a fixed dictionary in
// one go and checks that they agree.
//
// The pipeline is:
//
//	words -> trie.Trie -> bitmap.Trie -> amt.Flat
//	                                  `-> amt.Split
//
// The two AMT images are encoded independently from the same bitmap trie.
package strtab

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aglyzov/go-amt/amt"
	"github.com/aglyzov/go-amt/bitmap"
	"github.com/aglyzov/go-amt/trie"
)

// Matcher decides dictionary membership.
type Matcher interface {
	Contains(word string) bool
}

// NamedMatcher is a Matcher labelled with its representation.
type NamedMatcher struct {
	Name string
	Matcher
}

// Tables holds all representations of one dictionary.
type Tables struct {
	Pointer *trie.Trie
	Bitmap  *bitmap.Trie
	Flat    *amt.Flat
	Split   *amt.Split
}

// Build runs the whole pipeline over a dictionary.
func Build(words []string) (*Tables, error) {
	ptr, err := trie.New(words...)
	if err != nil {
		return nil, fmt.Errorf("strtab: build pointer trie: %w", err)
	}

	bmp := bitmap.Compress(ptr)

	flat, err := amt.EncodeFlat(bmp)
	if err != nil {
		return nil, fmt.Errorf("strtab: encode flat image: %w", err)
	}

	split, err := amt.EncodeSplit(bmp)
	if err != nil {
		return nil, fmt.Errorf("strtab: encode split image: %w", err)
	}

	return &Tables{
		Pointer: ptr,
		Bitmap:  bmp,
		Flat:    flat,
		Split:   split,
	}, nil
}

// Matchers returns the matchers in pipeline order.
func (t *Tables) Matchers() []NamedMatcher {
	return []NamedMatcher{
		{"pointer", t.Pointer},
		{"bitmap", t.Bitmap},
		{"flat", t.Flat},
		{"split", t.Split},
	}
}

// MismatchError reports a disagreement between two representations.
type MismatchError struct {
	Word      string // empty for an outline mismatch
	Reference string
	Other     string
}

func (e *MismatchError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("strtab: %s and %s outlines differ", e.Reference, e.Other)
	}

	return fmt.Sprintf("strtab: %s and %s disagree on %q", e.Reference, e.Other, e.Word)
}

// Verify checks that every representation has the same outline and gives the
// same answer for every probe. The dictionary words are always probed.
func (t *Tables) Verify(probes []string) error {
	var (
		matchers = t.Matchers()
		ref      = matchers[0]
		outlines = []string{t.Pointer.Outline(), t.Bitmap.Outline(), t.Flat.Outline(), t.Split.Outline()}
	)

	for i := 1; i < len(outlines); i++ {
		if outlines[i] != outlines[0] {
			return &MismatchError{Reference: ref.Name, Other: matchers[i].Name}
		}
	}

	check := func(word string) error {
		exp := ref.Contains(word)

		for _, m := range matchers[1:] {
			if m.Contains(word) != exp {
				return &MismatchError{Word: word, Reference: ref.Name, Other: m.Name}
			}
		}

		return nil
	}

	var err error

	t.Pointer.Iter(func(word string) bool {
		err = check(word)
		return err == nil
	})

	if err != nil {
		return err
	}

	for _, word := range probes {
		if err := check(word); err != nil {
			return err
		}
	}

	return nil
}

// Stats summarizes the representations of a dictionary.
type Stats struct {
	Words        int
	PointerNodes int
	BitmapNodes  int
	FlatBytes    int
	SplitBytes   int
	Masks        int
	Edges        int
}

// Stats returns the dictionary statistics.
func (t *Tables) Stats() Stats {
	split := t.Split.Stats()

	return Stats{
		Words:        t.Pointer.Len(),
		PointerNodes: t.Pointer.Nodes(),
		BitmapNodes:  t.Bitmap.Nodes(),
		FlatBytes:    t.Flat.Size(),
		SplitBytes:   split.Size,
		Masks:        split.Masks,
		Edges:        split.Edges,
	}
}

// ReadDictionary reads one word per line. Surrounding blanks are trimmed,
// empty lines and lines starting with '#' are skipped.
func ReadDictionary(r io.Reader) ([]string, error) {
	var (
		words   []string
		scanner = bufio.NewScanner(r)
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		words = append(words, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("strtab: read dictionary: %w", err)
	}

	return words, nil
}
