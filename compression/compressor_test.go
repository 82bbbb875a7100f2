package compression

import (
	"bytes"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCodecs = []parquet.CompressionCodec{
	parquet.CompressionCodec_UNCOMPRESSED,
	parquet.CompressionCodec_SNAPPY,
	parquet.CompressionCodec_GZIP,
	parquet.CompressionCodec_BROTLI,
	parquet.CompressionCodec_LZ4,
	parquet.CompressionCodec_ZSTD,
}

func TestCodecs(t *testing.T) {
	t.Run("RoundTrip", TestCodecs_RoundTrip)
	t.Run("Levels", TestCodecs_Levels)
	t.Run("Overflow", TestCodecs_Overflow)
	t.Run("ShortOutput", TestCodecs_ShortOutput)
	t.Run("Unsupported", TestCodecs_Unsupported)
}

func TestCodecs_RoundTrip(t *testing.T) {
	t.Parallel()

	block := bytes.Repeat([]byte("column chunk page body "), 64)

	for _, codec := range allCodecs {
		codec := codec
		t.Run(codec.String(), func(t *testing.T) {
			compressed, err := Compress(codec, block)
			require.NoError(t, err)

			out := make([]byte, len(block))
			require.NoError(t, Decompress(codec, compressed, out))
			assert.Equal(t, block, out)
		})
	}
}

func TestCodecs_Levels(t *testing.T) {
	t.Parallel()

	block := bytes.Repeat([]byte("column chunk page body "), 64)

	tests := []struct {
		name  string
		codec BlockCompressor
	}{
		{"GZip", GZip{Level: 9}},
		{"Brotli", Brotli{Quality: 1}},
		{"LZ4", LZ4{Level: 9}},
		{"ZStd", ZStd{Level: zstd.SpeedFastest}},
	}

	for _, tt := range tests {
		compressed, err := tt.codec.CompressBlock(block)
		require.NoError(t, err, tt.name)

		out := make([]byte, len(block))
		n, err := tt.codec.DecompressBlock(out, compressed)
		require.NoError(t, err, tt.name)
		assert.Equal(t, len(block), n, tt.name)
		assert.Equal(t, block, out, tt.name)
	}

	_, err := GZip{Level: 42}.CompressBlock(block)
	assert.Error(t, err)
}

func TestCodecs_Overflow(t *testing.T) {
	t.Parallel()

	block := bytes.Repeat([]byte{0}, 4096)

	for _, codec := range allCodecs {
		codec := codec
		t.Run(codec.String(), func(t *testing.T) {
			compressed, err := Compress(codec, block)
			require.NoError(t, err)

			out := make([]byte, 16)
			err = Decompress(codec, compressed, out)
			assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
		})
	}
}

func TestCodecs_ShortOutput(t *testing.T) {
	t.Parallel()

	block := []byte("short")

	for _, codec := range allCodecs {
		codec := codec
		t.Run(codec.String(), func(t *testing.T) {
			compressed, err := Compress(codec, block)
			require.NoError(t, err)

			out := make([]byte, len(block)+10)
			err = Decompress(codec, compressed, out)
			assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
		})
	}
}

func TestCodecs_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := Compress(parquet.CompressionCodec_LZO, []byte{1})
	assert.Equal(t, ErrUnsupportedCodec, errors.Cause(err))

	err = Decompress(parquet.CompressionCodec_LZO, []byte{1}, make([]byte, 1))
	assert.Equal(t, ErrUnsupportedCodec, errors.Cause(err))

	codecs := Codecs{parquet.CompressionCodec_LZO: Uncompressed{}}
	out := make([]byte, 1)
	require.NoError(t, codecs.Decompress(parquet.CompressionCodec_LZO, []byte{7}, out))
	assert.Equal(t, []byte{7}, out)
}
