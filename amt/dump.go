package amt

import (
	"fmt"
	"io"
)

// Stats describes an encoded image.
type Stats struct {
	Words int // number of dictionary words
	Masks int // split only
	Edges int // split only
	Size  int // bytes
}

// Stats returns the image statistics.
func (f *Flat) Stats() Stats {
	return Stats{
		Words: countWords(f.Iter),
		Size:  f.Size(),
	}
}

// Stats returns the image statistics.
func (s *Split) Stats() Stats {
	return Stats{
		Words: countWords(s.Iter),
		Masks: len(s.masks),
		Edges: len(s.edges),
		Size:  s.Size(),
	}
}

func (st Stats) String() string {
	if st.Masks == 0 {
		return fmt.Sprintf("size is %d bytes", st.Size)
	}

	return fmt.Sprintf("size is %d bytes (%d masks, %d edges)", st.Size, st.Masks, st.Edges)
}

// Dump writes the image as hex words, eight per line.
func (f *Flat) Dump(w io.Writer) error {
	return dumpWords(w, f.words)
}

// Dump writes the mask table and the edge table as hex words.
func (s *Split) Dump(w io.Writer) error {
	if _, err := io.WriteString(w, "masks:\n"); err != nil {
		return err
	}
	if err := dumpWords(w, s.masks); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "edges:\n"); err != nil {
		return err
	}

	return dumpWords(w, s.edges)
}

func dumpWords(w io.Writer, words []uint32) error {
	const perLine = 8

	for i := 0; i < len(words); i += perLine {
		line := words[i:min(i+perLine, len(words))]

		for j, word := range line {
			sep := " "
			if j == len(line)-1 {
				sep = "\n"
			}

			if _, err := fmt.Fprintf(w, "%08x%s", word, sep); err != nil {
				return err
			}
		}
	}

	return nil
}

func countWords(iter func(func(string) bool) bool) int {
	n := 0

	iter(func(string) bool {
		n++
		return true
	})

	return n
}
