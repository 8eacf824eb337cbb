package amt

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat_WriteRead(t *testing.T) {
	t.Parallel()

	_, flat, _ := encode(t, sample...)

	var buf bytes.Buffer

	n, err := flat.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(8+flat.Size()), n)
	assert.Equal(t, "AMTF", buf.String()[:4])

	loaded, err := ReadFlat(&buf)
	require.NoError(t, err)

	assert.Equal(t, flat.Words(), loaded.Words())
	assert.Equal(t, flat.Keys(), loaded.Keys())
}

func TestSplit_WriteRead(t *testing.T) {
	t.Parallel()

	_, _, split := encode(t, fakeWords(1234567890, 2_000)...)

	var buf bytes.Buffer

	n, err := split.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(12+split.Size()), n)

	loaded, err := ReadSplit(&buf)
	require.NoError(t, err)

	assert.Equal(t, split.Masks(), loaded.Masks())
	assert.Equal(t, split.Edges(), loaded.Edges())
	assert.Equal(t, split.Outline(), loaded.Outline())
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	_, flat, split := encode(t, "ab", "b")

	var flatBuf, splitBuf bytes.Buffer

	_, err := flat.WriteTo(&flatBuf)
	require.NoError(t, err)
	_, err = split.WriteTo(&splitBuf)
	require.NoError(t, err)

	// wrong magic
	_, err = ReadSplit(bytes.NewReader(flatBuf.Bytes()))
	assert.ErrorIs(t, err, ErrBadMagic)
	_, err = ReadFlat(bytes.NewReader(splitBuf.Bytes()))
	assert.ErrorIs(t, err, ErrBadMagic)

	// truncated
	_, err = ReadFlat(bytes.NewReader(flatBuf.Bytes()[:flatBuf.Len()-1]))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	_, err = ReadSplit(bytes.NewReader(splitBuf.Bytes()[:6]))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// corrupt content: the root descriptor of "a" points back at the root
	data := bytes.Clone(flatBuf.Bytes())
	binary.LittleEndian.PutUint32(data[8+4:], 0)

	_, err = ReadFlat(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrCorruptImage)

	// absurd counts
	data = bytes.Clone(splitBuf.Bytes())
	binary.LittleEndian.PutUint32(data[4:], MaxMasks+1)

	_, err = ReadSplit(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrCorruptImage)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	_, flat, split := encode(t, sample...)

	words := flat.Words()

	loadedFlat, err := LoadFlat(words)
	require.NoError(t, err)
	assert.Equal(t, flat.Keys(), loadedFlat.Keys())

	// the loaded image owns its words
	words[0] = 0
	assert.Equal(t, flat.Words(), loadedFlat.Words())

	loadedSplit, err := LoadSplit(split.Masks(), split.Edges())
	require.NoError(t, err)
	assert.Equal(t, split.Keys(), loadedSplit.Keys())

	_, err = LoadFlat(nil)
	assert.ErrorIs(t, err, ErrCorruptImage)

	_, err = LoadSplit([]uint32{3, 3}, nil)
	assert.ErrorIs(t, err, ErrCorruptImage)
}
