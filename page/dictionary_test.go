package page

import (
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/compression"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryPage(t *testing.T) {
	t.Run("RoundTrip", TestDictionaryPage_RoundTrip)
	t.Run("Compressed", TestDictionaryPage_Compressed)
	t.Run("Boolean", TestDictionaryPage_Boolean)
	t.Run("SizeMismatch", TestDictionaryPage_SizeMismatch)
	t.Run("BinaryOverrun", TestDictionaryPage_BinaryOverrun)
	t.Run("BinaryTrailingBytes", TestDictionaryPage_BinaryTrailingBytes)
	t.Run("LookupOutOfRange", TestDictionaryPage_LookupOutOfRange)
	t.Run("DecompressedSizeMismatch", TestDictionaryPage_DecompressedSizeMismatch)
}

func TestDictionaryPage_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		typ    schema.PhysicalType
		values interface{}
		want   []interface{}
	}{
		{name: "int32", typ: schema.Int32, values: []int32{1, -2, 3}, want: []interface{}{int32(1), int32(-2), int32(3)}},
		{name: "int64", typ: schema.Int64, values: []int64{1 << 40, -2}, want: []interface{}{int64(1 << 40), int64(-2)}},
		{name: "int96", typ: schema.Int96Type, values: []schema.Int96{{1, 2, 3}}, want: []interface{}{schema.Int96{1, 2, 3}}},
		{name: "float", typ: schema.Float, values: []float32{0.5, 1.5}, want: []interface{}{float32(0.5), float32(1.5)}},
		{name: "double", typ: schema.Double, values: []float64{0.25}, want: []interface{}{0.25}},
		{name: "byte array", typ: schema.ByteArray, values: [][]byte{[]byte("a"), {}, []byte("ccc")}, want: []interface{}{[]byte("a"), []byte{}, []byte("ccc")}},
		{name: "fixed len byte array", typ: schema.FixedLenByteArray(2), values: [][]byte{[]byte("ab"), []byte("cd")}, want: []interface{}{[]byte("ab"), []byte("cd")}},
		{name: "empty", typ: schema.Int32, values: []int32{}, want: []interface{}{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeDictionary(tt.typ, tt.values)
			require.NoError(t, err)

			dict, err := ReadDictionaryPage(encoded, parquet.CompressionCodec_UNCOMPRESSED, len(encoded.Buffer), true, tt.typ)
			require.NoError(t, err)

			assert.Equal(t, tt.typ, dict.PhysicalType())
			assert.Equal(t, len(tt.want), dict.NumValues())
			assert.True(t, dict.IsSorted())

			got := make([]interface{}, dict.NumValues())
			for i := range got {
				got[i], err = dict.Lookup(i)
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDictionaryPage_Compressed(t *testing.T) {
	t.Parallel()

	values := make([]int64, 100)
	for i := range values {
		values[i] = int64(i % 7)
	}

	encoded, err := EncodeDictionary(schema.Int64, values)
	require.NoError(t, err)

	for _, codec := range []parquet.CompressionCodec{
		parquet.CompressionCodec_SNAPPY,
		parquet.CompressionCodec_GZIP,
		parquet.CompressionCodec_ZSTD,
	} {
		buf, err := compression.Compress(codec, encoded.Buffer)
		require.NoError(t, err)

		p := &CompressedDictionaryPage{
			Buffer:               buf,
			Compression:          codec,
			UncompressedPageSize: len(encoded.Buffer),
			NumValues:            encoded.NumValues,
		}

		header := p.PageHeader()
		assert.Equal(t, parquet.PageType_DICTIONARY_PAGE, header.Type)
		assert.Equal(t, int32(len(buf)), header.CompressedPageSize)

		dict, err := DecodeCompressedDictionaryPage(p, schema.Int64)
		require.NoError(t, err, codec.String())

		prim, ok := dict.(*PrimitiveDictionary[int64])
		require.True(t, ok)
		assert.Equal(t, values, prim.Values())
		assert.False(t, prim.IsSorted())
	}
}

func TestDictionaryPage_Boolean(t *testing.T) {
	t.Parallel()

	_, err := EncodeDictionary(schema.Boolean, []bool{true})
	assert.Equal(t, parquet.ErrOutOfSpec, errors.Cause(err))

	_, err = ReadDictionaryPage(&EncodedDictionaryPage{Buffer: []byte{1}, NumValues: 1}, parquet.CompressionCodec_UNCOMPRESSED, 1, false, schema.Boolean)
	assert.Equal(t, parquet.ErrOutOfSpec, errors.Cause(err))
}

func TestDictionaryPage_SizeMismatch(t *testing.T) {
	t.Parallel()

	p := &EncodedDictionaryPage{Buffer: []byte{1, 0, 0, 0, 2, 0}, NumValues: 2}

	_, err := ReadDictionaryPage(p, parquet.CompressionCodec_UNCOMPRESSED, len(p.Buffer), false, schema.Int32)
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))

	_, err = ReadDictionaryPage(p, parquet.CompressionCodec_UNCOMPRESSED, len(p.Buffer), false, schema.FixedLenByteArray(4))
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))

	p = &EncodedDictionaryPage{Buffer: []byte{}, NumValues: -1}
	_, err = ReadDictionaryPage(p, parquet.CompressionCodec_UNCOMPRESSED, 0, false, schema.Int32)
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
}

func TestDictionaryPage_BinaryOverrun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		buf       []byte
		numValues int
	}{
		{name: "length past the end", buf: []byte{10, 0, 0, 0, 'a'}, numValues: 1},
		{name: "negative length", buf: []byte{0xff, 0xff, 0xff, 0xff, 'a'}, numValues: 1},
		{name: "truncated length", buf: []byte{1, 0, 0, 0, 'a', 1, 0}, numValues: 2},
		{name: "too many values", buf: []byte{0, 0, 0, 0}, numValues: 1 << 30},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := &EncodedDictionaryPage{Buffer: tt.buf, NumValues: tt.numValues}

			_, err := ReadDictionaryPage(p, parquet.CompressionCodec_UNCOMPRESSED, len(tt.buf), false, schema.ByteArray)
			assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
		})
	}
}

func TestDictionaryPage_BinaryTrailingBytes(t *testing.T) {
	t.Parallel()

	p := &EncodedDictionaryPage{Buffer: []byte{1, 0, 0, 0, 'a', 'b'}, NumValues: 1}

	_, err := ReadDictionaryPage(p, parquet.CompressionCodec_UNCOMPRESSED, len(p.Buffer), false, schema.ByteArray)
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
}

func TestDictionaryPage_LookupOutOfRange(t *testing.T) {
	t.Parallel()

	for _, typ := range []schema.PhysicalType{schema.Int32, schema.ByteArray, schema.FixedLenByteArray(4)} {
		var values interface{} = []int32{1}
		if typ.Type != parquet.Type_INT32 {
			values = [][]byte{{1, 2, 3, 4}}
		}

		encoded, err := EncodeDictionary(typ, values)
		require.NoError(t, err)

		dict, err := ReadDictionaryPage(encoded, parquet.CompressionCodec_UNCOMPRESSED, len(encoded.Buffer), false, typ)
		require.NoError(t, err)

		_, err = dict.Lookup(1)
		assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err), typ.String())

		_, err = dict.Lookup(-1)
		assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err), typ.String())
	}
}

func TestDictionaryPage_DecompressedSizeMismatch(t *testing.T) {
	t.Parallel()

	encoded, err := EncodeDictionary(schema.Int32, []int32{1, 2, 3, 4})
	require.NoError(t, err)

	buf, err := compression.Compress(parquet.CompressionCodec_SNAPPY, encoded.Buffer)
	require.NoError(t, err)

	for _, size := range []int{len(encoded.Buffer) - 4, len(encoded.Buffer) + 4} {
		p := &CompressedDictionaryPage{
			Buffer:               buf,
			Compression:          parquet.CompressionCodec_SNAPPY,
			UncompressedPageSize: size,
			NumValues:            encoded.NumValues,
		}

		_, err = DecodeCompressedDictionaryPage(p, schema.Int32)
		assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err), size)
	}
}

func TestEncodeDictionary_InvalidValues(t *testing.T) {
	t.Parallel()

	_, err := EncodeDictionary(schema.Int32, []int64{1})
	assert.Equal(t, parquet.ErrInvalidParameter, errors.Cause(err))

	_, err = EncodeDictionary(schema.FixedLenByteArray(2), [][]byte{{1}})
	assert.Equal(t, parquet.ErrInvalidParameter, errors.Cause(err))

	_, err = EncodeDictionary(schema.ByteArray, nil)
	assert.Equal(t, parquet.ErrInvalidParameter, errors.Cause(err))
}
