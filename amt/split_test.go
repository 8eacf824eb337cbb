package amt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aglyzov/go-amt/alphabet"
	"github.com/aglyzov/go-amt/bitmap"
)

func TestEncodeSplit_Layout(t *testing.T) {
	t.Parallel()

	_, _, split := encode(t, "ab", "b")

	assert.Equal(t, []uint32{0x00000003, 0x00000002, 0x00000000}, split.Masks())
	assert.Equal(t, []uint32{
		0x00020001, // a: next +2, mask 1
		0x80030002, // b': next +3, mask 2
		0x80010002, // ab': next +1, mask 2
	}, split.Edges())
	assert.Equal(t, 24, split.Size())
	assert.Equal(t, "size is 24 bytes (3 masks, 3 edges)", split.Stats().String())
}

func TestEncodeSplit_Empty(t *testing.T) {
	t.Parallel()

	_, _, split := encode(t)

	assert.Equal(t, []uint32{0}, split.Masks())
	assert.Empty(t, split.Edges())
	assert.False(t, split.Contains("a"))
	assert.Empty(t, split.Keys())
	require.NoError(t, split.Validate())
}

func TestSplit_Contains(t *testing.T) {
	t.Parallel()

	_, _, split := encode(t, sample...)

	for _, tcase := range []*struct {
		Word  string
		ExpOK bool
	}{
		{"", false},
		{"cat", true},
		{"cas", false},
		{"case", true},
		{"xxx", false},
		{"deer", true},
		{"ca", false},
		{"cap", false},
		{"cats", true},
		{"castle", true},
		{"castles", false},
		{"bar", true},
		{"ba", false},
		{"b\x80", false},
	} {
		tcase := tcase

		t.Run(fmt.Sprintf("%#v", tcase.Word), func(t *testing.T) {
			assert.Equal(t, tcase.ExpOK, split.Contains(tcase.Word))
		})
	}
}

func TestSplit_SameAsBitmap(t *testing.T) {
	t.Parallel()

	words := fakeWords(1234567890, 3_000)
	bt, _, split := encode(t, words...)

	for _, word := range probes(words) {
		assert.Equal(t, bt.Contains(word), split.Contains(word), word)
	}

	assert.Equal(t, bt.Keys(), split.Keys())
	assert.Equal(t, bt.Outline(), split.Outline())
	require.NoError(t, split.Validate())
}

// the mask table holds each distinct node bitmap exactly once
func TestEncodeSplit_MaskDedup(t *testing.T) {
	t.Parallel()

	bt, _, split := encode(t, fakeWords(987654321, 3_000)...)

	distinct := make(map[uint32]bool)
	for id := 0; id < bt.Nodes(); id++ {
		distinct[bt.Node(bitmap.NodeID(id)).Bitmap()] = true
	}

	var (
		masks = split.Masks()
		seen  = make(map[uint32]bool)
	)

	for _, mask := range masks {
		assert.False(t, seen[mask], "duplicate mask %#08x", mask)
		seen[mask] = true
	}

	assert.Equal(t, distinct, seen)
	assert.Equal(t, bt.Root().Bitmap(), masks[0])
	assert.Less(t, len(masks), bt.Nodes())
	assert.Equal(t, bt.Nodes()-1, len(split.Edges()))
}

func TestEncodeSplit_OffsetOverflow(t *testing.T) {
	t.Parallel()

	// the subtree under "a" needs more edges than an offset can skip, so the
	// edge for "b" can't reach its block
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

	bt := compress(t, words...)

	split, err := EncodeSplit(bt)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, split)
	assert.Contains(t, err.Error(), "edge offset")

	// the flat image has no such limit
	flat, err := EncodeFlat(bt)
	require.NoError(t, err)
	assert.True(t, flat.Contains("b"))
	assert.True(t, flat.Contains(words[len(words)-1]))
}

func TestMaskTable_Capacity(t *testing.T) {
	t.Parallel()

	mt := newMaskTable()

	for i := 0; i < MaxMasks; i++ {
		idx, err := mt.intern(uint32(i))
		require.NoError(t, err)
		require.Equal(t, uint32(i), idx)
	}

	// known masks are still found
	idx, err := mt.intern(12345)
	require.NoError(t, err)
	assert.Equal(t, uint32(12345), idx)

	_, err = mt.intern(MaxMasks)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, MaxMasks, mt.len())
}

func TestSplit_Validate(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Name  string
		Masks []uint32
		Edges []uint32
	}{
		{"no masks", []uint32{}, []uint32{}},
		{"bad mask", []uint32{0x80000000}, []uint32{}},
		{"duplicate mask", []uint32{0x1, 0x0, 0x1}, []uint32{0x00010001}},
		{"overrun", []uint32{0x3, 0x0}, []uint32{0x00020001}},
		{"bad mask index", []uint32{0x1, 0x0}, []uint32{0x00010002}},
		{"points back", []uint32{0x1}, []uint32{0x00000000}},
		{"shared block", []uint32{0x3, 0x1, 0x0}, []uint32{0x00020001, 0x00020001, 0x00010002}},
	} {
		tcase := tcase

		t.Run(tcase.Name, func(t *testing.T) {
			s := &Split{masks: tcase.Masks, edges: tcase.Edges}

			assert.ErrorIs(t, s.Validate(), ErrCorruptImage)
		})
	}
}

func TestSplit_ContainsPanicsOnCorruptImage(t *testing.T) {
	t.Parallel()

	// 'a' leads to mask 7 which doesn't exist
	s := &Split{masks: []uint32{0x1}, edges: []uint32{0x00010007}}

	assert.False(t, s.Contains("b"))
	assert.False(t, s.Contains("a"))
	assert.Panics(t, func() { s.Contains("aa") })

	// the root claims a child but there are no edges
	s = &Split{masks: []uint32{0x1}, edges: []uint32{}}

	assert.Panics(t, func() { s.Contains("a") })
}

func TestEdge(t *testing.T) {
	t.Parallel()

	e := newEdge(true, MaxEdgeOffset, MaxMasks-1)
	assert.True(t, e.Terminal())
	assert.Equal(t, uint32(MaxEdgeOffset), e.Next())
	assert.Equal(t, uint32(MaxMasks-1), e.MaskIndex())
	assert.Equal(t, Edge(0xffffffff), e)

	e = newEdge(false, 3, 2)
	assert.Equal(t, Edge(0x00030002), e)
	assert.Equal(t, "<edge|term:false|next:3|mask:2>", e.String())
}

func TestSplit_Dump(t *testing.T) {
	t.Parallel()

	_, flat, split := encode(t, "ab", "b")

	var b strings.Builder

	require.NoError(t, split.Dump(&b))
	assert.Equal(t, "masks:\n00000003 00000002 00000000\nedges:\n00020001 80030002 80010002\n", b.String())

	b.Reset()

	require.NoError(t, flat.Dump(&b))
	assert.Equal(t, "00000003 00000003 80000006 00000002 80000005 00000000 00000000\n", b.String())
}

func TestDump_Wraps(t *testing.T) {
	t.Parallel()

	var b strings.Builder

	words := make([]uint32, 10)
	for i := range words {
		words[i] = uint32(i)
	}

	require.NoError(t, dumpWords(&b, words))
	assert.Equal(t,
		"00000000 00000001 00000002 00000003 00000004 00000005 00000006 00000007\n"+
			"00000008 00000009\n",
		b.String())
}
