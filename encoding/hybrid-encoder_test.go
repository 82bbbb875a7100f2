package encoding

import (
	"bytes"
	"io"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestHybridEncoder(t *testing.T) {
	t.Run("SingleEntryDictionary", TestHybridEncoder_SingleEntryDictionary)
	t.Run("DefinitionLevels", TestHybridEncoder_DefinitionLevels)
	t.Run("LongBitPackedRun", TestHybridEncoder_LongBitPackedRun)
	t.Run("Reset", TestHybridEncoder_Reset)
	t.Run("Write", TestHybridEncoder_Write)
	t.Run("InvalidBitWidth", TestHybridEncoder_InvalidBitWidth)
	t.Run("OutOfRange", TestHybridEncoder_OutOfRange)
}

// A dictionary with one entry stores its indices on 0 bits: the runs carry
// counts only.
func TestHybridEncoder_SingleEntryDictionary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		count    int
		expected []byte
	}{
		{name: "rle run", count: 10, expected: []byte{10 << 1}},
		{name: "short bit-packed run", count: 3, expected: []byte{1<<1 | 1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewHybridEncoder(0)
			require.NoError(t, err)
			require.NoError(t, e.Encode(make([]int32, tt.count)))

			data := e.Bytes()
			assert.Equal(t, tt.expected, data)

			d := NewHybridDecoder(0, false)
			require.NoError(t, d.Init(bytes.NewReader(data)))

			output := make([]int32, tt.count)
			require.NoError(t, DecodeInt32(d, output))
			assert.Equal(t, make([]int32, tt.count), output)
		})
	}
}

func TestHybridEncoder_DefinitionLevels(t *testing.T) {
	t.Parallel()

	levels := []int32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1}

	e, err := NewHybridEncoder(BitWidth(1))
	require.NoError(t, err)
	require.NoError(t, e.Encode(levels))

	buf := &bytes.Buffer{}
	require.NoError(t, e.WriteSize(buf))

	// Length prefix, RLE run of ten 1, then one bit-packed group holding 0, 1.
	assert.Equal(t, []byte{4, 0, 0, 0, 10 << 1, 1, 1<<1 | 1, 0x02}, buf.Bytes())

	// The values section follows the levels in a V1 page.
	buf.Write([]byte{0xca, 0xfe})
	reader := bytes.NewReader(buf.Bytes())

	d := NewHybridDecoder(1, true)
	require.NoError(t, d.InitSize(reader))

	output := make([]int32, len(levels))
	require.NoError(t, DecodeInt32(d, output))
	assert.Equal(t, levels, output)
	assert.Equal(t, 2, reader.Len())
}

func TestHybridEncoder_LongBitPackedRun(t *testing.T) {
	t.Parallel()

	input := make([]int32, 64*8)
	for i := range input {
		input[i] = int32(i % 2)
	}

	e, err := NewHybridEncoder(1)
	require.NoError(t, err)
	require.NoError(t, e.Encode(input))

	data := e.Bytes()

	// A run header holds at most 63 groups, the 64th starts a new run.
	require.Len(t, data, 1+63+1+1)
	assert.Equal(t, byte(63<<1|1), data[0])
	assert.Equal(t, bytes.Repeat([]byte{0xaa}, 63), data[1:64])
	assert.Equal(t, []byte{1<<1 | 1, 0xaa}, data[64:])

	d := NewHybridDecoder(1, false)
	require.NoError(t, d.Init(bytes.NewReader(data)))

	output := make([]int32, len(input))
	require.NoError(t, DecodeInt32(d, output))
	assert.Equal(t, input, output)

	_, err = d.Next()
	assert.Equal(t, io.EOF, errors.Cause(err))
}

func TestHybridEncoder_Reset(t *testing.T) {
	t.Parallel()

	e, err := NewHybridEncoder(2)
	require.NoError(t, err)
	require.NoError(t, e.Encode([]int32{3, 3, 3, 1}))
	_ = e.Bytes()

	e.Reset()
	require.NoError(t, e.Encode([]int32{2, 0, 2}))

	fresh, err := NewHybridEncoder(2)
	require.NoError(t, err)
	require.NoError(t, fresh.Encode([]int32{2, 0, 2}))

	assert.Equal(t, fresh.Bytes(), e.Bytes())
}

func TestHybridEncoder_Write(t *testing.T) {
	t.Parallel()

	values := []int32{5, 5, 5, 5, 5, 5, 5, 5, 5, 2}

	e1, err := NewHybridEncoder(3)
	require.NoError(t, err)
	require.NoError(t, e1.Encode(values))

	e2, err := NewHybridEncoder(3)
	require.NoError(t, err)
	require.NoError(t, e2.Encode(values))

	buf := &bytes.Buffer{}
	require.NoError(t, e1.Write(buf))
	assert.Equal(t, e2.Bytes(), buf.Bytes())
}

func TestHybridEncoder_InvalidBitWidth(t *testing.T) {
	t.Parallel()

	for _, bitWidth := range []int{-1, maxBitWidth + 1} {
		_, err := NewHybridEncoder(bitWidth)
		assert.Equal(t, errInvalidBitWidth, errors.Cause(err), "bit-width %d", bitWidth)
	}

	_, err := NewHybridEncoder(maxBitWidth)
	assert.NoError(t, err)
}

func TestHybridEncoder_OutOfRange(t *testing.T) {
	t.Parallel()

	e, err := NewHybridEncoder(2)
	require.NoError(t, err)

	assert.Equal(t, errOutOfRange, errors.Cause(e.AppendSingle(4)))
	assert.Equal(t, errOutOfRange, errors.Cause(e.Encode([]int32{1, -1})))

	wide, err := NewHybridEncoder(maxBitWidth)
	require.NoError(t, err)
	assert.NoError(t, wide.AppendSingle(-1))
}
