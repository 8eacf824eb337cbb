// Package alphabet defines the fixed symbol set shared by every trie
// representation and the bitmap helpers used to index it.
//
// A symbol is a byte in the range [First, First+Size). Its index is the bit
// position used in node bitmaps:
//
//	byte:   'a'  'b'  'c'  ...  'z'  '{'  '|'  '}'  '~'  0x7f
//	index:   0    1    2   ...   25   26   27   28   29   30
//
// Bitmaps are 32-bit words. Bit 31 is never a symbol so that a flat image
// can reuse it as the terminal flag.
package alphabet

import (
	"errors"
	"fmt"

	"github.com/hideo55/go-popcount"
)

const (
	First byte = 'a' // first symbol of the alphabet
	Size       = 31  // number of symbols

	bitmapWidth = 32
)

// compile-time check: symbols must leave the top bitmap bit free
var _ [bitmapWidth - 1 - Size]struct{}

var ErrInvalidSymbol = errors.New("alphabet: invalid symbol")

// Index returns the bit index of a symbol.
func Index(c byte) (int, bool) {
	idx := int(c) - int(First)
	if idx < 0 || idx >= Size {
		return 0, false
	}

	return idx, true
}

// Symbol is the inverse of Index.
func Symbol(idx int) byte {
	return First + byte(idx)
}

// Valid reports the first byte of word that is not in the alphabet.
func Valid(word string) error {
	for i := 0; i < len(word); i++ {
		if _, ok := Index(word[i]); !ok {
			return fmt.Errorf("%w %q at offset %d of %q", ErrInvalidSymbol, word[i], i, word)
		}
	}

	return nil
}

// Bit returns the bitmap bit of a symbol index.
func Bit(idx int) uint32 {
	return uint32(1) << idx
}

// Rank returns the position of the bit among the set bits of a bitmap, i.e.
// the number of set bits below it.
func Rank(bitmap, bit uint32) int {
	return int(popcount.Count(uint64(bitmap & (bit - 1))))
}

// Count returns the number of symbols present in a bitmap.
func Count(bitmap uint32) int {
	return int(popcount.Count(uint64(bitmap)))
}
