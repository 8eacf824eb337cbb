package amt

import (
	"fmt"
	"strings"

	"github.com/aglyzov/go-amt/alphabet"
	"github.com/aglyzov/go-amt/bitmap"
)

// Split is a two-array AMT image: deduplicated node bitmaps and edges.
type Split struct {
	masks []uint32
	edges []uint32
}

type splitEncoder struct {
	trie  *bitmap.Trie
	masks *maskTable
	edges []uint32
}

// EncodeSplit serializes a bitmap trie into a split image.
//
// It fails with ErrCapacityExceeded when an edge offset or the number of
// distinct masks doesn't fit its field; no partial image is returned.
func EncodeSplit(t *bitmap.Trie) (*Split, error) {
	enc := &splitEncoder{
		trie:  t,
		masks: newMaskTable(),
		edges: make([]uint32, 0, t.Nodes()-1), // one edge per non-root node
	}

	// the root is interned first and gets mask index 0
	if _, err := enc.encode(bitmap.Root); err != nil {
		return nil, err
	}

	return &Split{
		masks: enc.masks.masks,
		edges: enc.edges,
	}, nil
}

// encode interns the node bitmap, reserves the node's edge block and fills it
// after encoding every child. It returns the node's mask index.
func (enc *splitEncoder) encode(id bitmap.NodeID) (uint32, error) {
	node := enc.trie.Node(id)

	mask, err := enc.masks.intern(node.Bitmap())
	if err != nil {
		return 0, err
	}

	var (
		num  = node.Len()
		base = len(enc.edges)
	)

	for i := 0; i < num; i++ {
		enc.edges = append(enc.edges, 0)
	}

	for rank := 0; rank < num; rank++ {
		var (
			child = node.Child(rank)
			next  = len(enc.edges) - base // the child edge block starts here
		)

		if next > MaxEdgeOffset {
			return 0, fmt.Errorf("%w: edge offset %d at edge %d", ErrCapacityExceeded, next, base+rank)
		}

		childMask, err := enc.encode(child)
		if err != nil {
			return 0, err
		}

		enc.edges[base+rank] = uint32(newEdge(enc.trie.Node(child).Terminal(), uint32(next), childMask))
	}

	return mask, nil
}

// Contains reports whether the word is in the image.
//
// It panics if the image is corrupt.
func (s *Split) Contains(word string) bool {
	var (
		masks = s.masks
		edges = s.edges
		mask  uint32 // mask table index of the current node
		base  uint32 // edge block of the current node
	)

	for i := 0; i < len(word); i++ {
		idx, ok := alphabet.Index(word[i])
		if !ok {
			return false
		}

		if mask >= uint32(len(masks)) {
			panic(corrupt("mask index %d is out of %d masks", mask, len(masks)))
		}

		var (
			bmp = masks[mask]
			bit = alphabet.Bit(idx)
		)

		if bmp&bit == 0 {
			return false
		}

		pos := base + uint32(alphabet.Rank(bmp, bit))
		if pos >= uint32(len(edges)) {
			panic(corrupt("edge %d is out of %d edges", pos, len(edges)))
		}

		edge := Edge(edges[pos])

		if i == len(word)-1 {
			return edge.Terminal()
		}

		mask, base = edge.MaskIndex(), base+edge.Next()
	}

	return false // empty word
}

// Masks returns a copy of the mask table.
func (s *Split) Masks() []uint32 {
	return append([]uint32(nil), s.masks...)
}

// Edges returns a copy of the edge table.
func (s *Split) Edges() []uint32 {
	return append([]uint32(nil), s.edges...)
}

// Size returns the image size in bytes.
func (s *Split) Size() int {
	return (len(s.masks) + len(s.edges)) * wordWidth / 8
}

// Validate checks the image structure:
//
//   - the mask table is not empty, has no duplicates and only alphabet bits;
//   - walking from (0, 0), every edge block is inside the edge table and
//     owned by one node, every mask index is inside the mask table and every
//     offset moves past the parent block.
func (s *Split) Validate() error {
	if len(s.masks) == 0 {
		return fmt.Errorf("%w: empty mask table", ErrCorruptImage)
	}

	if len(s.masks) > MaxMasks {
		return fmt.Errorf("%w: %d masks", ErrCorruptImage, len(s.masks))
	}

	seen := make(map[uint32]bool, len(s.masks))

	for i, bmp := range s.masks {
		if bmp&^bitmapMask != 0 {
			return fmt.Errorf("%w: mask %d is %#08x", ErrCorruptImage, i, bmp)
		}
		if seen[bmp] {
			return fmt.Errorf("%w: mask %d is a duplicate", ErrCorruptImage, i)
		}
		seen[bmp] = true
	}

	type state struct {
		mask, base uint32
	}

	var (
		total   = uint64(len(s.edges))
		stack   = []state{{0, 0}}
		visited = make(map[uint32]bool)
	)

	// a non-empty edge block belongs to exactly one node, so the walk visits
	// every edge at most once
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		num := uint64(alphabet.Count(s.masks[cur.mask]))
		if num == 0 {
			continue
		}

		if uint64(cur.base)+num > total {
			return fmt.Errorf("%w: edge block %d overruns the edge table", ErrCorruptImage, cur.base)
		}

		if visited[cur.base] {
			return fmt.Errorf("%w: edge block %d is shared", ErrCorruptImage, cur.base)
		}
		visited[cur.base] = true

		for pos := cur.base; pos < cur.base+uint32(num); pos++ {
			edge := Edge(s.edges[pos])

			switch {
			case edge.MaskIndex() >= uint32(len(s.masks)):
				return fmt.Errorf("%w: edge %d has mask index %d", ErrCorruptImage, pos, edge.MaskIndex())
			case edge.Next() < uint32(num):
				return fmt.Errorf("%w: edge %d points back", ErrCorruptImage, pos)
			}

			stack = append(stack, state{edge.MaskIndex(), cur.base + edge.Next()})
		}
	}

	return nil
}

// Iter calls the handler for every word in lexicographic order.
// The handler can continue the process by returning true or abort with false.
// It returns whether all words were visited.
func (s *Split) Iter(handler func(word string) bool) bool {
	return s.iterate(0, 0, make([]byte, 0, 32), handler)
}

func (s *Split) iterate(mask, base uint32, buf []byte, h func(string) bool) bool {
	var (
		bmp  = s.masks[mask]
		rank uint32
	)

	for idx := 0; idx < alphabet.Size; idx++ {
		if bmp&alphabet.Bit(idx) == 0 {
			continue
		}

		var (
			edge = Edge(s.edges[base+rank])
			word = append(buf, alphabet.Symbol(idx))
		)

		rank++

		if edge.Terminal() && !h(string(word)) {
			return false
		}

		if !s.iterate(edge.MaskIndex(), base+edge.Next(), word, h) {
			return false
		}
	}

	return true
}

// Keys returns all words in lexicographic order.
func (s *Split) Keys() []string {
	return keys(s.Iter)
}

// Outline returns a preorder trace of the image, see trie.Trie.Outline.
func (s *Split) Outline() string {
	var b strings.Builder

	s.outline(0, 0, &b)

	return b.String()
}

func (s *Split) outline(mask, base uint32, b *strings.Builder) {
	var (
		bmp  = s.masks[mask]
		rank uint32
	)

	for idx := 0; idx < alphabet.Size; idx++ {
		if bmp&alphabet.Bit(idx) == 0 {
			continue
		}

		edge := Edge(s.edges[base+rank])
		rank++

		b.WriteByte(alphabet.Symbol(idx))
		if edge.Terminal() {
			b.WriteByte('\'')
		}

		s.outline(edge.MaskIndex(), base+edge.Next(), b)
	}
}
