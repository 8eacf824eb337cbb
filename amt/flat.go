package amt

import (
	"fmt"
	"strings"

	"github.com/aglyzov/go-amt/alphabet"
	"github.com/aglyzov/go-amt/bitmap"
)

// Flat is a single-array AMT image.
type Flat struct {
	words []uint32
}

// EncodeFlat serializes a bitmap trie into a flat image.
//
// The first pass sizes every subtree, the second one fills the blocks in
// preorder so child block indices are known before they are written.
func EncodeFlat(t *bitmap.Trie) (*Flat, error) {
	// the arena is breadth-first: children always follow their parent, so a
	// reverse scan sees every subtree before its root
	sizes := make([]uint64, t.Nodes())

	for id := len(sizes) - 1; id >= 0; id-- {
		var (
			node = t.Node(bitmap.NodeID(id))
			size = uint64(1 + node.Len())
		)

		for rank := 0; rank < node.Len(); rank++ {
			size += sizes[node.Child(rank)]
		}

		sizes[id] = size
	}

	// the last block starts before the end of the image
	if sizes[bitmap.Root]-1 > MaxBlockIndex {
		return nil, fmt.Errorf("%w: flat image of %d words", ErrCapacityExceeded, sizes[bitmap.Root])
	}

	f := &Flat{
		words: make([]uint32, sizes[bitmap.Root]),
	}

	f.fill(t, bitmap.Root, 0, sizes)

	return f, nil
}

func (f *Flat) fill(t *bitmap.Trie, id bitmap.NodeID, base uint32, sizes []uint64) {
	var (
		node = t.Node(id)
		num  = node.Len()
		next = base + 1 + uint32(num)
	)

	f.words[base] = node.Bitmap()

	for rank := 0; rank < num; rank++ {
		child := node.Child(rank)

		f.words[base+1+uint32(rank)] = uint32(newDescriptor(t.Node(child).Terminal(), next))
		f.fill(t, child, next, sizes)

		next += uint32(sizes[child])
	}
}

// Contains reports whether the word is in the image.
//
// It panics if the image is corrupt.
func (f *Flat) Contains(word string) bool {
	var (
		words = f.words
		block uint32
	)

	for i := 0; i < len(word); i++ {
		idx, ok := alphabet.Index(word[i])
		if !ok {
			return false
		}

		if block >= uint32(len(words)) {
			panic(corrupt("block %d is out of %d words", block, len(words)))
		}

		var (
			bmp = words[block]
			bit = alphabet.Bit(idx)
		)

		if bmp&bit == 0 {
			return false
		}

		pos := block + 1 + uint32(alphabet.Rank(bmp, bit))
		if pos >= uint32(len(words)) {
			panic(corrupt("descriptor %d of block %d is out of %d words", pos, block, len(words)))
		}

		desc := Descriptor(words[pos])

		if i == len(word)-1 {
			return desc.Terminal()
		}

		block = desc.Block()
	}

	return false // empty word
}

// Len returns the number of words in the image.
func (f *Flat) Len() int {
	return len(f.words)
}

// Size returns the image size in bytes.
func (f *Flat) Size() int {
	return len(f.words) * wordWidth / 8
}

// Words returns a copy of the image.
func (f *Flat) Words() []uint32 {
	return append([]uint32(nil), f.words...)
}

// Validate checks the block structure of the image in a single forward pass:
//
//   - blocks tile the whole array starting at index 0;
//   - bitmaps only use alphabet bits;
//   - every descriptor points strictly forward to a block start;
//   - every block but the first is referenced exactly once.
func (f *Flat) Validate() error {
	var (
		words = f.words
		total = uint32(len(words))
		refs  = make(map[uint32]bool)
		pos   uint32
	)

	if total == 0 {
		return fmt.Errorf("%w: empty flat image", ErrCorruptImage)
	}

	for pos < total {
		if pos != 0 && !refs[pos] {
			return fmt.Errorf("%w: block %d is not referenced", ErrCorruptImage, pos)
		}
		delete(refs, pos)

		bmp := words[pos]
		if bmp&^bitmapMask != 0 {
			return fmt.Errorf("%w: block %d has bitmap %#08x", ErrCorruptImage, pos, bmp)
		}

		num := uint32(alphabet.Count(bmp))
		if uint64(pos)+1+uint64(num) > uint64(total) {
			return fmt.Errorf("%w: block %d overruns the image", ErrCorruptImage, pos)
		}

		for i := pos + 1; i <= pos+num; i++ {
			child := Descriptor(words[i]).Block()

			switch {
			case child <= pos+num:
				return fmt.Errorf("%w: descriptor %d points back to %d", ErrCorruptImage, i, child)
			case child >= total:
				return fmt.Errorf("%w: descriptor %d points past the image", ErrCorruptImage, i)
			case refs[child]:
				return fmt.Errorf("%w: block %d is referenced twice", ErrCorruptImage, child)
			}

			refs[child] = true
		}

		pos += 1 + num
	}

	// all remaining references landed inside a block
	for child := range refs {
		return fmt.Errorf("%w: descriptor points inside a block at %d", ErrCorruptImage, child)
	}

	return nil
}

// Iter calls the handler for every word in lexicographic order.
// The handler can continue the process by returning true or abort with false.
// It returns whether all words were visited.
func (f *Flat) Iter(handler func(word string) bool) bool {
	return f.iterate(0, make([]byte, 0, 32), handler)
}

func (f *Flat) iterate(block uint32, buf []byte, h func(string) bool) bool {
	var (
		bmp  = f.words[block]
		rank uint32
	)

	for idx := 0; idx < alphabet.Size; idx++ {
		if bmp&alphabet.Bit(idx) == 0 {
			continue
		}

		var (
			desc = Descriptor(f.words[block+1+rank])
			word = append(buf, alphabet.Symbol(idx))
		)

		rank++

		if desc.Terminal() && !h(string(word)) {
			return false
		}

		if !f.iterate(desc.Block(), word, h) {
			return false
		}
	}

	return true
}

// Keys returns all words in lexicographic order.
func (f *Flat) Keys() []string {
	return keys(f.Iter)
}

// Outline returns a preorder trace of the image, see trie.Trie.Outline.
func (f *Flat) Outline() string {
	var b strings.Builder

	f.outline(0, &b)

	return b.String()
}

func (f *Flat) outline(block uint32, b *strings.Builder) {
	var (
		bmp  = f.words[block]
		rank uint32
	)

	for idx := 0; idx < alphabet.Size; idx++ {
		if bmp&alphabet.Bit(idx) == 0 {
			continue
		}

		desc := Descriptor(f.words[block+1+rank])
		rank++

		b.WriteByte(alphabet.Symbol(idx))
		if desc.Terminal() {
			b.WriteByte('\'')
		}

		f.outline(desc.Block(), b)
	}
}

func keys(iter func(func(string) bool) bool) []string {
	out := []string{}

	iter(func(word string) bool {
		out = append(out, word)
		return true
	})

	return out
}
