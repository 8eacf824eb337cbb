package amt

import (
	"errors"
	"fmt"

	"github.com/aglyzov/go-amt/alphabet"
)

const (
	wordWidth = 32

	// bit fields
	termBitOffset   = 31 // 1-bit flag: a word ends at the child
	blockIdxOffset  = 0  // flat descriptor: absolute child block index
	edgeNextOffset  = 16 // split edge: relative offset of the child edge block
	edgeMaskOffset  = 0  // split edge: mask table index of the child
	termBitWidth    = 1
	blockIdxWidth   = 31
	edgeNextWidth   = 15
	edgeMaskWidth   = 16
	bitmapWidthUsed = alphabet.Size

	termBitMask  uint32 = 1 << termBitOffset                       // 0b_1000..0
	blockIdxMask uint32 = (1<<blockIdxWidth - 1) << blockIdxOffset // 0b_0111..1
	edgeNextMask uint32 = (1<<edgeNextWidth - 1) << edgeNextOffset // 0b_0111..10..0
	edgeMaskMask uint32 = (1<<edgeMaskWidth - 1) << edgeMaskOffset // 0b_0..01..1
	bitmapMask   uint32 = 1<<bitmapWidthUsed - 1                   // valid symbol bits

	// MaxBlockIndex is the largest flat block index a descriptor can hold.
	MaxBlockIndex = 1<<blockIdxWidth - 1
	// MaxEdgeOffset is the largest distance between a parent and a child edge block.
	MaxEdgeOffset = 1<<edgeNextWidth - 1
	// MaxMasks is the capacity of the mask table.
	MaxMasks = 1 << edgeMaskWidth
)

// compile-time checks: the fields fill a word exactly and bitmaps leave the
// terminal bit free
var (
	_ [0]struct{} = [termBitWidth + edgeNextWidth + edgeMaskWidth - wordWidth]struct{}{}
	_ [0]struct{} = [termBitWidth + blockIdxWidth - wordWidth]struct{}{}
	_ [termBitOffset - bitmapWidthUsed]struct{}
)

var (
	ErrCapacityExceeded = errors.New("amt: capacity exceeded")
	ErrCorruptImage     = errors.New("amt: corrupt image")
)

// Descriptor is a flat image word describing a child block.
type Descriptor uint32

func newDescriptor(terminal bool, block uint32) Descriptor {
	d := Descriptor(block << blockIdxOffset & blockIdxMask)
	if terminal {
		d |= Descriptor(termBitMask)
	}

	return d
}

// Terminal reports whether a word ends at the child.
func (d Descriptor) Terminal() bool {
	return uint32(d)&termBitMask != 0
}

// Block returns the absolute index of the child block.
func (d Descriptor) Block() uint32 {
	return uint32(d) & blockIdxMask >> blockIdxOffset
}

func (d Descriptor) String() string {
	return fmt.Sprintf("<desc|term:%v|block:%d>", d.Terminal(), d.Block())
}

// Edge is a split image edge table word.
type Edge uint32

func newEdge(terminal bool, next, mask uint32) Edge {
	e := Edge(next<<edgeNextOffset&edgeNextMask | mask<<edgeMaskOffset&edgeMaskMask)
	if terminal {
		e |= Edge(termBitMask)
	}

	return e
}

// Terminal reports whether a word ends at the child.
func (e Edge) Terminal() bool {
	return uint32(e)&termBitMask != 0
}

// Next returns the offset of the child edge block relative to the parent one.
func (e Edge) Next() uint32 {
	return uint32(e) & edgeNextMask >> edgeNextOffset
}

// MaskIndex returns the mask table index of the child bitmap.
func (e Edge) MaskIndex() uint32 {
	return uint32(e) & edgeMaskMask >> edgeMaskOffset
}

func (e Edge) String() string {
	return fmt.Sprintf("<edge|term:%v|next:%d|mask:%d>", e.Terminal(), e.Next(), e.MaskIndex())
}

func corrupt(format string, args ...any) string {
	return ErrCorruptImage.Error() + ": " + fmt.Sprintf(format, args...)
}
