package amt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Binary images start with a 4-byte magic followed by little-endian uint32
// counts and words:
//
//	flat:   "AMTF" <n> <word 0> ... <word n-1>
//	split:  "AMTS" <m> <e> <mask 0> ... <mask m-1> <edge 0> ... <edge e-1>
const (
	flatMagic  = "AMTF"
	splitMagic = "AMTS"

	// maxImageWords caps allocations while reading an image
	maxImageWords = MaxBlockIndex + 1
)

var ErrBadMagic = errors.New("amt: bad image magic")

// WriteTo writes the binary image.
func (f *Flat) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, 8+4*len(f.words))
	buf = append(buf, flatMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(f.words)))
	buf = appendWords(buf, f.words)

	n, err := w.Write(buf)

	return int64(n), err
}

// ReadFlat reads and validates a binary flat image.
func ReadFlat(r io.Reader) (*Flat, error) {
	counts, err := readHeader(r, flatMagic, 1)
	if err != nil {
		return nil, err
	}

	words, err := readWords(r, counts[0])
	if err != nil {
		return nil, err
	}

	return newFlat(words)
}

// LoadFlat validates a copy of the image words, as produced by
// (*Flat).Words, and returns a matcher over it.
func LoadFlat(words []uint32) (*Flat, error) {
	return newFlat(append([]uint32(nil), words...))
}

func newFlat(words []uint32) (*Flat, error) {
	f := &Flat{words: words}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteTo writes the binary image.
func (s *Split) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, 12+4*(len(s.masks)+len(s.edges)))
	buf = append(buf, splitMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.masks)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.edges)))
	buf = appendWords(buf, s.masks)
	buf = appendWords(buf, s.edges)

	n, err := w.Write(buf)

	return int64(n), err
}

// ReadSplit reads and validates a binary split image.
func ReadSplit(r io.Reader) (*Split, error) {
	counts, err := readHeader(r, splitMagic, 2)
	if err != nil {
		return nil, err
	}

	if counts[0] > MaxMasks {
		return nil, fmt.Errorf("%w: %d masks", ErrCorruptImage, counts[0])
	}

	masks, err := readWords(r, counts[0])
	if err != nil {
		return nil, err
	}

	edges, err := readWords(r, counts[1])
	if err != nil {
		return nil, err
	}

	return newSplit(masks, edges)
}

// LoadSplit validates copies of the mask and edge tables, as produced by
// (*Split).Masks and (*Split).Edges, and returns a matcher over them.
func LoadSplit(masks, edges []uint32) (*Split, error) {
	return newSplit(append([]uint32(nil), masks...), append([]uint32(nil), edges...))
}

func newSplit(masks, edges []uint32) (*Split, error) {
	s := &Split{masks: masks, edges: edges}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func appendWords(buf []byte, words []uint32) []byte {
	for _, word := range words {
		buf = binary.LittleEndian.AppendUint32(buf, word)
	}

	return buf
}

func readHeader(r io.Reader, magic string, num int) ([]uint32, error) {
	head := make([]byte, len(magic)+4*num)

	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("amt: read header: %w", err)
	}

	if string(head[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, head[:len(magic)])
	}

	counts := make([]uint32, num)

	for i := range counts {
		counts[i] = binary.LittleEndian.Uint32(head[len(magic)+4*i:])
		if counts[i] > maxImageWords {
			return nil, fmt.Errorf("%w: %d words", ErrCorruptImage, counts[i])
		}
	}

	return counts, nil
}

func readWords(r io.Reader, num uint32) ([]uint32, error) {
	var (
		words = make([]uint32, 0, min(num, 1<<16))
		chunk [4096]byte
	)

	for left := uint64(num) * 4; left > 0; {
		part := chunk[:min(left, uint64(len(chunk)))]

		if _, err := io.ReadFull(r, part); err != nil {
			return nil, fmt.Errorf("amt: read words: %w", err)
		}

		for i := 0; i < len(part); i += 4 {
			words = append(words, binary.LittleEndian.Uint32(part[i:]))
		}

		left -= uint64(len(part))
	}

	return words, nil
}
