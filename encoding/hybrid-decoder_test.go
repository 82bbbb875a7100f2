package encoding

import (
	"bytes"
	"io"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestHybridDecoder(t *testing.T) {
	t.Run("GroupBoundary", TestHybridDecoder_GroupBoundary)
	t.Run("RLERun", TestHybridDecoder_RLERun)
	t.Run("RoundTrip", TestHybridDecoder_RoundTrip)
	t.Run("InitSize", TestHybridDecoder_InitSize)
	t.Run("ZeroBitWidth", TestHybridDecoder_ZeroBitWidth)
	t.Run("InvalidBitWidth", TestHybridDecoder_InvalidBitWidth)
	t.Run("NilReader", TestHybridDecoder_NilReader)
	t.Run("TruncatedRun", TestHybridDecoder_TruncatedRun)
}

func TestHybridDecoder_GroupBoundary(t *testing.T) {
	t.Parallel()

	b := []byte{
		(1 << 1) | 1,
		(1 << 0) | (2 << 2) | (3 << 4),
		0,
	}

	d := NewHybridDecoder(2, false)

	reader := bytes.NewReader(b)
	require.NoError(t, d.Init(reader))

	v, err := d.Next()
	assert.Equal(t, int32(1), v)
	assert.NoError(t, err)

	v, err = d.Next()
	assert.Equal(t, int32(2), v)
	assert.NoError(t, err)

	v, err = d.Next()
	assert.Equal(t, int32(3), v)
	assert.NoError(t, err)

	assert.Equal(t, 0, reader.Len())
}

func TestHybridDecoder_RLERun(t *testing.T) {
	t.Parallel()

	// 3 times 300, stored on 2 bytes, then EOF.
	b := []byte{3 << 1, 0x2c, 0x01}

	d := NewHybridDecoder(9, false)
	require.NoError(t, d.Init(bytes.NewReader(b)))

	values := make([]int32, 3)
	require.NoError(t, DecodeInt32(d, values))
	assert.Equal(t, []int32{300, 300, 300}, values)

	_, err := d.Next()
	assert.Equal(t, io.EOF, errors.Cause(err))
}

func TestHybridDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, bitWidth := range []int{1, 2, 3, 7, 8, 9, 16, 31, 32} {
		max := int64(1)<<uint(bitWidth) - 1

		input := make([]int32, 0, 1000)
		for i := 0; i < 1000; i++ {
			switch {
			case i%100 < 40:
				input = append(input, int32(max))
			default:
				input = append(input, int32(int64(i*7919)%(max+1)))
			}
		}

		e, err := NewHybridEncoder(bitWidth)
		require.NoError(t, err)
		require.NoError(t, e.Encode(input))

		d := NewHybridDecoder(bitWidth, true)
		require.NoError(t, d.Init(bytes.NewReader(e.Bytes())))

		output := make([]int32, len(input))
		require.NoError(t, DecodeInt32(d, output))
		assert.Equal(t, input, output, "bit-width %d", bitWidth)
	}
}

func TestHybridDecoder_InitSize(t *testing.T) {
	t.Parallel()

	e, err := NewHybridEncoder(1)
	require.NoError(t, err)
	require.NoError(t, e.Encode([]int32{1, 0, 1, 1, 0}))

	buf := &bytes.Buffer{}
	require.NoError(t, e.WriteSize(buf))
	buf.Write([]byte{0xff, 0xff})

	reader := bytes.NewReader(buf.Bytes())

	d := NewHybridDecoder(1, false)
	require.NoError(t, d.InitSize(reader))

	// The last bit-packed group is padded with zeros.
	output := make([]int32, 8)
	require.NoError(t, DecodeInt32(d, output))
	assert.Equal(t, []int32{1, 0, 1, 1, 0, 0, 0, 0}, output)

	// The trailing bytes are not part of the levels.
	_, err = d.Next()
	assert.Equal(t, io.EOF, errors.Cause(err))
	assert.Equal(t, 2, reader.Len())
}

func TestHybridDecoder_ZeroBitWidth(t *testing.T) {
	t.Parallel()

	d := NewHybridDecoder(0, false)
	require.NoError(t, d.InitSize(bytes.NewReader(nil)))

	output := []int32{5, 5, 5}
	require.NoError(t, DecodeInt32(d, output))
	assert.Equal(t, []int32{0, 0, 0}, output)
}

func TestHybridDecoder_InvalidBitWidth(t *testing.T) {
	t.Parallel()

	d := NewHybridDecoder(33, false)
	err := d.Init(bytes.NewReader([]byte{0}))

	assert.Equal(t, errInvalidBitWidth, errors.Cause(err))
}

func TestHybridDecoder_NilReader(t *testing.T) {
	t.Parallel()

	d := NewHybridDecoder(1, false)
	assert.Equal(t, errNilReader, errors.Cause(d.Init(nil)))

	_, err := d.Next()
	assert.Error(t, err)
}

func TestHybridDecoder_TruncatedRun(t *testing.T) {
	t.Parallel()

	// One bit-packed group of width 3 needs 3 bytes.
	d := NewHybridDecoder(3, false)
	require.NoError(t, d.Init(bytes.NewReader([]byte{3, 0xff})))

	_, err := d.Next()
	assert.Equal(t, io.ErrUnexpectedEOF, errors.Cause(err))
}

func TestBitWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, BitWidth(0))
	assert.Equal(t, 1, BitWidth(1))
	assert.Equal(t, 2, BitWidth(2))
	assert.Equal(t, 2, BitWidth(3))
	assert.Equal(t, 3, BitWidth(4))
	assert.Equal(t, 8, BitWidth(255))
}
