package index

import (
	"bytes"
	"math"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnIndex(t *testing.T) {
	t.Run("Int32", TestColumnIndex_Int32)
	t.Run("ByteArray", TestColumnIndex_ByteArray)
	t.Run("FixedLenByteArray", TestColumnIndex_FixedLenByteArray)
	t.Run("Int96", TestColumnIndex_Int96)
	t.Run("MissingNullCounts", TestColumnIndex_MissingNullCounts)
	t.Run("AtOffset", TestColumnIndex_AtOffset)
	t.Run("MismatchedLists", TestColumnIndex_MismatchedLists)
	t.Run("BadStatisticWidth", TestColumnIndex_BadStatisticWidth)
}

func roundTrip(t *testing.T, idx Index, typ *schema.PrimitiveType) Index {
	t.Helper()

	buf := &bytes.Buffer{}
	require.NoError(t, WriteColumnIndex(buf, idx))

	out, err := ReadColumnIndex(bytes.NewReader(buf.Bytes()), 0, int32(buf.Len()), typ)
	require.NoError(t, err)

	return out
}

func TestColumnIndex_Int32(t *testing.T) {
	t.Parallel()

	typ := schema.FromPhysical("col1", schema.Int32)
	in := &NativeIndex[int32]{
		PrimitiveType: typ,
		Indexes: []PageIndex[int32]{
			{Min: parquet.Int32Ptr(0), Max: parquet.Int32Ptr(6), NullCount: parquet.Int64Ptr(1)},
			{Min: parquet.Int32Ptr(10), Max: parquet.Int32Ptr(11), NullCount: parquet.Int64Ptr(0)},
		},
		BoundaryOrder: Unordered,
	}

	out := roundTrip(t, in, typ)

	assert.Equal(t, in, out)
	assert.Equal(t, 2, out.NumPages())
	assert.Equal(t, schema.Int32, out.PhysicalType())
}

func TestColumnIndex_ByteArray(t *testing.T) {
	t.Parallel()

	typ := schema.FromPhysical("name", schema.ByteArray)
	minValue, maxValue := []byte("apple"), []byte("kiwi")
	in := &NativeIndex[[]byte]{
		PrimitiveType: typ,
		Indexes: []PageIndex[[]byte]{
			{Min: &minValue, Max: &maxValue, NullCount: parquet.Int64Ptr(0)},
			{NullCount: parquet.Int64Ptr(3)},
		},
		BoundaryOrder: Ascending,
	}

	out := roundTrip(t, in, typ)

	assert.Equal(t, in, out)
}

func TestColumnIndex_FixedLenByteArray(t *testing.T) {
	t.Parallel()

	typ := schema.FromPhysical("id", schema.FixedLenByteArray(2))
	minValue, maxValue := []byte{0, 1}, []byte{9, 9}
	in := &NativeIndex[[]byte]{
		PrimitiveType: typ,
		Indexes: []PageIndex[[]byte]{
			{Min: &minValue, Max: &maxValue, NullCount: parquet.Int64Ptr(0)},
		},
	}

	assert.Equal(t, in, roundTrip(t, in, typ))

	// The stored values must have the declared width.
	buf := &bytes.Buffer{}
	require.NoError(t, WriteColumnIndex(buf, in))

	_, err := ReadColumnIndex(bytes.NewReader(buf.Bytes()), 0, int32(buf.Len()), schema.FromPhysical("id", schema.FixedLenByteArray(3)))
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
}

func TestColumnIndex_Int96(t *testing.T) {
	t.Parallel()

	typ := schema.FromPhysical("ts", schema.Int96Type)
	minValue, maxValue := schema.Int96{1, 2, 3}, schema.Int96{4, 5, 6}
	in := &NativeIndex[schema.Int96]{
		PrimitiveType: typ,
		Indexes: []PageIndex[schema.Int96]{
			{Min: &minValue, Max: &maxValue, NullCount: parquet.Int64Ptr(0)},
		},
	}

	assert.Equal(t, in, roundTrip(t, in, typ))
}

func TestColumnIndex_MissingNullCounts(t *testing.T) {
	t.Parallel()

	typ := schema.FromPhysical("col", schema.Double)
	minValue, maxValue := 1.5, 2.5
	in := &NativeIndex[float64]{
		PrimitiveType: typ,
		Indexes: []PageIndex[float64]{
			{Min: &minValue, Max: &maxValue},
			{Min: &minValue, Max: &maxValue, NullCount: parquet.Int64Ptr(2)},
		},
	}

	ci, err := EncodeColumnIndex(in)
	require.NoError(t, err)
	assert.Nil(t, ci.NullCounts)

	out := roundTrip(t, in, typ).(*NativeIndex[float64])
	for _, page := range out.Indexes {
		assert.Nil(t, page.NullCount)
	}
}

func TestColumnIndex_AtOffset(t *testing.T) {
	t.Parallel()

	typ := schema.FromPhysical("flag", schema.Boolean)
	in := &NativeIndex[bool]{
		PrimitiveType: typ,
		Indexes: []PageIndex[bool]{
			{Min: parquet.BoolPtr(false), Max: parquet.BoolPtr(true), NullCount: parquet.Int64Ptr(0)},
		},
	}

	buf := &bytes.Buffer{}
	buf.WriteString("PAR1")
	require.NoError(t, WriteColumnIndex(buf, in))
	length := int32(buf.Len() - 4)
	buf.WriteString("trailing")

	out, err := ReadColumnIndex(bytes.NewReader(buf.Bytes()), 4, length, typ)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = ReadColumnIndex(bytes.NewReader(buf.Bytes()), -1, length, typ)
	assert.Equal(t, parquet.ErrInvalidParameter, errors.Cause(err))

	_, err = ReadColumnIndex(bytes.NewReader(buf.Bytes()), 4, length, nil)
	assert.Equal(t, parquet.ErrInvalidParameter, errors.Cause(err))
}

func TestColumnIndex_MismatchedLists(t *testing.T) {
	t.Parallel()

	ci := &parquet.ColumnIndex{
		NullPages: []bool{false, false},
		MinValues: [][]byte{{0, 0, 0, 0}},
		MaxValues: [][]byte{{0, 0, 0, 0}, {1, 0, 0, 0}},
	}

	_, err := DecodeColumnIndex(ci, schema.FromPhysical("col", schema.Int32))
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
}

func TestColumnIndex_BadStatisticWidth(t *testing.T) {
	t.Parallel()

	ci := &parquet.ColumnIndex{
		NullPages: []bool{false},
		MinValues: [][]byte{{0, 0}},
		MaxValues: [][]byte{{0, 0, 0, 0}},
	}

	_, err := DecodeColumnIndex(ci, schema.FromPhysical("col", schema.Int32))
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
}

func TestOffsetIndex(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	require.NoError(t, WriteOffsetIndex(buf, testLocations))

	out, err := ReadOffsetIndex(bytes.NewReader(buf.Bytes()), 0, int32(buf.Len()))
	require.NoError(t, err)

	assert.Equal(t, testLocations, out)

	_, err = ReadOffsetIndex(bytes.NewReader(buf.Bytes()), 0, int32(buf.Len()+10))
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
}

func TestOffsetIndex_LengthPastSource(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	require.NoError(t, WriteOffsetIndex(buf, testLocations))

	_, err := ReadOffsetIndex(bytes.NewReader(buf.Bytes()), 2, math.MaxInt32)
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))

	_, err = ReadOffsetIndex(bytes.NewReader(buf.Bytes()), int64(buf.Len()+1), 0)
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
}

func TestOffsetIndex_TruncatedStruct(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	require.NoError(t, WriteOffsetIndex(buf, testLocations))

	_, err := ReadOffsetIndex(bytes.NewReader(buf.Bytes()), 0, int32(buf.Len()-3))
	assert.Error(t, err)
}

func TestCheckBoundaryOrder(t *testing.T) {
	t.Parallel()

	page := func(minValue, maxValue int64) PageIndex[int64] {
		return PageIndex[int64]{Min: &minValue, Max: &maxValue}
	}

	typ := schema.FromPhysical("col", schema.Int64)
	tests := []struct {
		name    string
		order   BoundaryOrder
		indexes []PageIndex[int64]
		want    bool
	}{
		{name: "ascending", order: Ascending, indexes: []PageIndex[int64]{page(0, 5), page(5, 9), {}, page(10, 12)}, want: true},
		{name: "not ascending", order: Ascending, indexes: []PageIndex[int64]{page(0, 5), page(3, 4)}, want: false},
		{name: "descending", order: Descending, indexes: []PageIndex[int64]{page(10, 12), page(0, 5)}, want: true},
		{name: "not descending", order: Descending, indexes: []PageIndex[int64]{page(0, 5), page(10, 12)}, want: false},
		{name: "unordered", order: Unordered, indexes: []PageIndex[int64]{page(10, 12), page(0, 5), page(6, 7)}, want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ok, err := CheckBoundaryOrder(&NativeIndex[int64]{PrimitiveType: typ, Indexes: tt.indexes, BoundaryOrder: tt.order})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	_, err := CheckBoundaryOrder(&NativeIndex[schema.Int96]{BoundaryOrder: Ascending})
	assert.Equal(t, parquet.ErrOutOfSpec, errors.Cause(err))
}
