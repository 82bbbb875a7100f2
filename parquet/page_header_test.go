package parquet

import (
	"bytes"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageHeader(t *testing.T) {
	t.Run("DataPage", TestPageHeader_DataPage)
	t.Run("DictionaryPage", TestPageHeader_DictionaryPage)
	t.Run("DataPageV2", TestPageHeader_DataPageV2)
	t.Run("NoReadAhead", TestPageHeader_NoReadAhead)
	t.Run("MissingRequiredField", TestPageHeader_MissingRequiredField)
}

func TestPageHeader_DataPage(t *testing.T) {
	t.Parallel()

	in := &PageHeader{
		Type:                 PageType_DATA_PAGE,
		UncompressedPageSize: 42,
		CompressedPageSize:   21,
		DataPageHeader: &DataPageHeader{
			NumValues:               7,
			Encoding:                Encoding_PLAIN,
			DefinitionLevelEncoding: Encoding_RLE,
			RepetitionLevelEncoding: Encoding_RLE,
			Statistics: &Statistics{
				NullCount: Int64Ptr(1),
				MinValue:  []byte{0, 0, 0, 0},
				MaxValue:  []byte{6, 0, 0, 0},
			},
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteThrift(in, buf))

	out := &PageHeader{}
	require.NoError(t, ReadThrift(out, buf))

	assert.Equal(t, in, out)
}

func TestPageHeader_DictionaryPage(t *testing.T) {
	t.Parallel()

	in := &PageHeader{
		Type:                 PageType_DICTIONARY_PAGE,
		UncompressedPageSize: 12,
		CompressedPageSize:   12,
		Crc:                  Int32Ptr(-17),
		DictionaryPageHeader: &DictionaryPageHeader{
			NumValues: 3,
			Encoding:  Encoding_PLAIN_DICTIONARY,
			IsSorted:  BoolPtr(true),
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteThrift(in, buf))

	out := &PageHeader{}
	require.NoError(t, ReadThrift(out, buf))

	assert.Equal(t, in, out)
	assert.True(t, out.DictionaryPageHeader.GetIsSorted())
}

func TestPageHeader_DataPageV2(t *testing.T) {
	t.Parallel()

	in := &PageHeader{
		Type:                 PageType_DATA_PAGE_V2,
		UncompressedPageSize: 100,
		CompressedPageSize:   80,
		DataPageHeaderV2: &DataPageHeaderV2{
			NumValues:                  10,
			NumNulls:                   2,
			NumRows:                    10,
			Encoding:                   Encoding_RLE_DICTIONARY,
			DefinitionLevelsByteLength: 4,
			RepetitionLevelsByteLength: 0,
			IsCompressed:               BoolPtr(false),
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteThrift(in, buf))

	out := &PageHeader{}
	require.NoError(t, ReadThrift(out, buf))

	assert.Equal(t, in, out)
	assert.False(t, out.DataPageHeaderV2.GetIsCompressed())
}

func TestPageHeader_NoReadAhead(t *testing.T) {
	t.Parallel()

	header := &PageHeader{
		Type:                 PageType_DATA_PAGE,
		UncompressedPageSize: 4,
		CompressedPageSize:   4,
		DataPageHeader: &DataPageHeader{
			NumValues: 1,
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteThrift(header, buf))
	headerLen := buf.Len()

	body := []byte{1, 2, 3, 4}
	buf.Write(body)

	r := bytes.NewReader(buf.Bytes())
	require.NoError(t, ReadThrift(&PageHeader{}, r))

	assert.Equal(t, int64(headerLen), r.Size()-int64(r.Len()))
	assert.Equal(t, len(body), r.Len())
}

func TestPageHeader_MissingRequiredField(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	require.NoError(t, WriteThrift(&PageLocation{Offset: 4, CompressedPageSize: 10, FirstRowIndex: 0}, buf))

	// Field 1 of a PageLocation is an i64, so the page type is never set.
	err := ReadThrift(&PageHeader{}, buf)

	assert.Equal(t, ErrCorruptData, errors.Cause(err))
}

func TestColumnIndex(t *testing.T) {
	t.Parallel()

	in := &ColumnIndex{
		NullPages:     []bool{false, true, false},
		MinValues:     [][]byte{{0, 0, 0, 0}, {}, {10, 0, 0, 0}},
		MaxValues:     [][]byte{{6, 0, 0, 0}, {}, {11, 0, 0, 0}},
		BoundaryOrder: BoundaryOrder_ASCENDING,
		NullCounts:    []int64{1, 5, 0},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteThrift(in, buf))

	out := &ColumnIndex{}
	require.NoError(t, ReadThrift(out, buf))

	assert.Equal(t, in, out)
}

func TestOffsetIndex(t *testing.T) {
	t.Parallel()

	in := &OffsetIndex{
		PageLocations: []*PageLocation{
			{Offset: 4, CompressedPageSize: 63, FirstRowIndex: 0},
			{Offset: 67, CompressedPageSize: 47, FirstRowIndex: 7},
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteThrift(in, buf))

	out := &OffsetIndex{}
	require.NoError(t, ReadThrift(out, buf))

	assert.Equal(t, in, out)
}
