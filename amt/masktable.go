package amt

import "fmt"

// maskTable interns node bitmaps: every distinct bitmap is stored once and
// addressed by the order of its first appearance.
type maskTable struct {
	masks []uint32
	index map[uint32]uint32
}

func newMaskTable() *maskTable {
	return &maskTable{
		index: make(map[uint32]uint32),
	}
}

// intern returns the index of a bitmap, appending it if it is new.
func (mt *maskTable) intern(bitmap uint32) (uint32, error) {
	if idx, ok := mt.index[bitmap]; ok {
		return idx, nil
	}

	if len(mt.masks) >= MaxMasks {
		return 0, fmt.Errorf("%w: more than %d distinct masks", ErrCapacityExceeded, MaxMasks)
	}

	idx := uint32(len(mt.masks))
	mt.masks = append(mt.masks, bitmap)
	mt.index[bitmap] = idx

	return idx, nil
}

func (mt *maskTable) len() int {
	return len(mt.masks)
}
