package layout

import (
	"bytes"
	"io"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/index"
	"github.com/hexbee-net/parquet-pages/page"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// recordingSource records the offsets it is moved to.
type recordingSource struct {
	*bytes.Reader
	seeks []int64
}

func (s *recordingSource) Seek(offset int64, whence int) (int64, error) {
	n, err := s.Reader.Seek(offset, whence)
	if err == nil {
		s.seeks = append(s.seeks, n)
	}

	return n, err
}

func optionalColumn(t *testing.T, name string, typ schema.PhysicalType) *schema.ColumnDescriptor {
	t.Helper()

	col, err := schema.NewColumnDescriptor(schema.FromPhysical(name, typ), 1, 0, []string{name}, nil)
	require.NoError(t, err)

	return col
}

type testChunk struct {
	data       []byte
	locations  []index.PageLocation
	numRows    uint64
	dictOffset int64
	dictSize   int32
	hasDict    bool
}

// writeChunk writes a file holding the magic number then one page per
// element of pages.
func writeChunk(t *testing.T, codec parquet.CompressionCodec, dict *page.DictPage, pages ...*page.DataPage) *testChunk {
	t.Helper()

	buf := &bytes.Buffer{}
	buf.WriteString("PAR1")

	c := NewCompressor(codec, nil)
	w := NewPageWriter(buf, int64(buf.Len()))

	if dict != nil {
		cp, err := c.Compress(dict)
		require.NoError(t, err)
		require.NoError(t, w.Write(cp))
	}

	for _, p := range pages {
		cp, err := c.Compress(p)
		require.NoError(t, err)
		require.NoError(t, w.Write(cp))
	}

	chunk := &testChunk{
		data:      buf.Bytes(),
		locations: w.Locations(),
		numRows:   uint64(w.NumRows()),
	}
	chunk.dictOffset, chunk.dictSize, chunk.hasDict = w.DictionaryPage()

	assert.Equal(t, int64(len(chunk.data)), w.Offset())

	return chunk
}

func int32Pages(t *testing.T, col *schema.ColumnDescriptor, pages ...[]interface{}) []*page.DataPage {
	t.Helper()

	res := make([]*page.DataPage, len(pages))
	for i, values := range pages {
		p, err := EncodeDataPageV1(col, values, DataPageOptions{})
		require.NoError(t, err)

		res[i] = p
	}

	return res
}

func readAll(t *testing.T, d *BasicDecompressor) [][]interface{} {
	t.Helper()

	var res [][]interface{}

	for {
		p, err := d.Next()
		if err == io.EOF {
			return res
		}
		require.NoError(t, err)

		values, err := DecodeDataPage(p)
		require.NoError(t, err)

		res = append(res, values.Values)
	}
}

// /////////////////////////////////////////////////////////////////////////////

func TestIndexedPageReader(t *testing.T) {
	t.Run("SelectedPagesOnly", TestIndexedPageReader_SelectedPagesOnly)
	t.Run("DictionaryFirst", TestIndexedPageReader_DictionaryFirst)
	t.Run("Backward", TestIndexedPageReader_Backward)
	t.Run("SizeMismatch", TestIndexedPageReader_SizeMismatch)
	t.Run("ShortLocation", TestIndexedPageReader_ShortLocation)
	t.Run("Truncated", TestIndexedPageReader_Truncated)
	t.Run("NotADataPage", TestIndexedPageReader_NotADataPage)
}

func TestIndexedPageReader_SelectedPagesOnly(t *testing.T) {
	t.Parallel()

	col := optionalColumn(t, "col", schema.Int32)
	chunk := writeChunk(t, parquet.CompressionCodec_UNCOMPRESSED, nil, int32Pages(t, col,
		[]interface{}{int32(0), int32(1), nil},
		[]interface{}{int32(3), int32(4)},
		[]interface{}{nil, int32(6), int32(7)},
	)...)

	require.Len(t, chunk.locations, 3)
	assert.Equal(t, uint64(8), chunk.numRows)

	selected, err := index.SelectPages([]index.Interval{index.NewInterval(0, 1), index.NewInterval(6, 1)}, chunk.locations, chunk.numRows)
	require.NoError(t, err)
	require.Len(t, selected, 2)

	src := &recordingSource{Reader: bytes.NewReader(chunk.data)}
	r := NewIndexedPageReader(src, col, parquet.CompressionCodec_UNCOMPRESSED, selected, WithLogger(zaptest.NewLogger(t)))

	first, err := r.Next()
	require.NoError(t, err)
	dp := first.(*page.CompressedDataPage)
	assert.Equal(t, index.NewInterval(0, 3), *dp.Rows)
	assert.Same(t, col, dp.Descriptor)

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, index.NewInterval(5, 3), *second.(*page.CompressedDataPage).Rows)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)

	assert.Equal(t, []int64{chunk.locations[0].Offset, chunk.locations[2].Offset}, src.seeks)
}

func TestIndexedPageReader_DictionaryFirst(t *testing.T) {
	t.Parallel()

	col := optionalColumn(t, "col", schema.ByteArray)

	encoded, err := page.EncodeDictionary(schema.ByteArray, [][]byte{[]byte("x"), []byte("y")})
	require.NoError(t, err)

	p1, err := EncodeDataPageV1(col, []interface{}{int32(1), nil, int32(0)}, DataPageOptions{DictionarySize: 2})
	require.NoError(t, err)

	p2, err := EncodeDataPageV1(col, []interface{}{int32(0), int32(0)}, DataPageOptions{DictionarySize: 2})
	require.NoError(t, err)

	chunk := writeChunk(t, parquet.CompressionCodec_SNAPPY, &page.DictPage{Encoded: encoded}, p1, p2)
	require.True(t, chunk.hasDict)
	assert.Equal(t, int64(4), chunk.dictOffset)
	assert.Equal(t, chunk.dictOffset+int64(chunk.dictSize), chunk.locations[0].Offset)

	selected, err := index.SelectPages([]index.Interval{index.NewInterval(3, 2)}, chunk.locations, chunk.numRows)
	require.NoError(t, err)
	require.Len(t, selected, 1)

	src := &recordingSource{Reader: bytes.NewReader(chunk.data)}
	r := NewIndexedPageReader(src, col, parquet.CompressionCodec_SNAPPY, selected,
		WithDictionaryPage(chunk.dictOffset, chunk.dictSize),
		WithLogger(zaptest.NewLogger(t)))

	d := NewBasicDecompressor(r, nil, WithLogger(zaptest.NewLogger(t)))

	pages := readAll(t, d)
	assert.Equal(t, [][]interface{}{{[]byte("x"), []byte("x")}}, pages)
	assert.Equal(t, 2, d.Dictionary().NumValues())

	// The first data page was skipped.
	assert.Equal(t, []int64{chunk.dictOffset, chunk.locations[1].Offset}, src.seeks)
}

func TestIndexedPageReader_Backward(t *testing.T) {
	t.Parallel()

	col := optionalColumn(t, "col", schema.Int32)
	chunk := writeChunk(t, parquet.CompressionCodec_UNCOMPRESSED, nil, int32Pages(t, col,
		[]interface{}{int32(0)},
		[]interface{}{int32(1)},
	)...)

	selected := []index.FilteredPage{
		{Location: &chunk.locations[1], Rows: index.NewInterval(1, 1)},
		{Location: &chunk.locations[0], Rows: index.NewInterval(0, 1)},
	}

	r := NewIndexedPageReader(bytes.NewReader(chunk.data), col, parquet.CompressionCodec_UNCOMPRESSED, selected)

	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	assert.Equal(t, parquet.ErrInvalidParameter, errors.Cause(err))
}

func TestIndexedPageReader_SizeMismatch(t *testing.T) {
	t.Parallel()

	col := optionalColumn(t, "col", schema.Int32)
	chunk := writeChunk(t, parquet.CompressionCodec_UNCOMPRESSED, nil, int32Pages(t, col,
		[]interface{}{int32(0), int32(1)},
		[]interface{}{int32(2)},
	)...)

	location := chunk.locations[0]
	location.CompressedPageSize += 4

	r := NewIndexedPageReader(bytes.NewReader(chunk.data), col, parquet.CompressionCodec_UNCOMPRESSED,
		[]index.FilteredPage{{Location: &location, Rows: index.NewInterval(0, 2)}})

	_, err := r.Next()
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
}

func TestIndexedPageReader_ShortLocation(t *testing.T) {
	t.Parallel()

	col := optionalColumn(t, "col", schema.Int32)
	chunk := writeChunk(t, parquet.CompressionCodec_UNCOMPRESSED, nil, int32Pages(t, col,
		[]interface{}{int32(0), int32(1)},
	)...)

	location := chunk.locations[0]
	location.CompressedPageSize = 3

	r := NewIndexedPageReader(bytes.NewReader(chunk.data), col, parquet.CompressionCodec_UNCOMPRESSED,
		[]index.FilteredPage{{Location: &location, Rows: index.NewInterval(0, 2)}})

	_, err := r.Next()
	require.Error(t, err)
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
}

func TestIndexedPageReader_Truncated(t *testing.T) {
	t.Parallel()

	col := optionalColumn(t, "col", schema.Int32)
	chunk := writeChunk(t, parquet.CompressionCodec_UNCOMPRESSED, nil, int32Pages(t, col,
		[]interface{}{int32(0), int32(1)},
	)...)

	r := NewIndexedPageReader(bytes.NewReader(chunk.data[:len(chunk.data)-1]), col, parquet.CompressionCodec_UNCOMPRESSED,
		[]index.FilteredPage{{Location: &chunk.locations[0], Rows: index.NewInterval(0, 2)}})

	_, err := r.Next()
	assert.Equal(t, io.ErrUnexpectedEOF, errors.Cause(err))
}

func TestIndexedPageReader_NotADataPage(t *testing.T) {
	t.Parallel()

	col := optionalColumn(t, "col", schema.Int32)

	encoded, err := page.EncodeDictionary(schema.Int32, []int32{1})
	require.NoError(t, err)

	chunk := writeChunk(t, parquet.CompressionCodec_UNCOMPRESSED, &page.DictPage{Encoded: encoded})

	location := index.PageLocation{Offset: chunk.dictOffset, CompressedPageSize: chunk.dictSize}
	r := NewIndexedPageReader(bytes.NewReader(chunk.data), col, parquet.CompressionCodec_UNCOMPRESSED,
		[]index.FilteredPage{{Location: &location, Rows: index.NewInterval(0, 1)}})

	_, err = r.Next()
	assert.Equal(t, parquet.ErrOutOfSpec, errors.Cause(err))
}

// /////////////////////////////////////////////////////////////////////////////

func TestPageReader(t *testing.T) {
	t.Parallel()

	col := optionalColumn(t, "col", schema.Int64)

	encoded, err := page.EncodeDictionary(schema.Int64, []int64{10, 20, 30})
	require.NoError(t, err)

	p1, err := EncodeDataPageV1(col, []interface{}{int32(2), int32(1)}, DataPageOptions{DictionarySize: 3})
	require.NoError(t, err)

	p2, err := EncodeDataPageV1(col, []interface{}{nil, int32(0), int32(2)}, DataPageOptions{DictionarySize: 3})
	require.NoError(t, err)

	chunk := writeChunk(t, parquet.CompressionCodec_GZIP, &page.DictPage{Encoded: encoded}, p1, p2)

	r := NewPageReader(bytes.NewReader(chunk.data), col, parquet.CompressionCodec_GZIP,
		chunk.dictOffset, int64(len(chunk.data))-chunk.dictOffset,
		WithLogger(zaptest.NewLogger(t)))

	d := NewBasicDecompressor(r, nil)

	first, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, index.NewInterval(0, 2), *first.Rows)

	values, err := DecodeDataPage(first)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(30), int64(20)}, values.Values)

	second, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, index.NewInterval(2, 3), *second.Rows)

	values, err = DecodeDataPage(second)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{nil, int64(10), int64(30)}, values.Values)

	level, err := values.DefinitionLevels.At(0)
	require.NoError(t, err)
	assert.Equal(t, int32(0), level)

	_, err = d.Next()
	assert.Equal(t, io.EOF, err)
}

func TestPageReader_Overrun(t *testing.T) {
	t.Parallel()

	col := optionalColumn(t, "col", schema.Int32)
	chunk := writeChunk(t, parquet.CompressionCodec_UNCOMPRESSED, nil, int32Pages(t, col,
		[]interface{}{int32(0), int32(1)},
	)...)

	r := NewPageReader(bytes.NewReader(chunk.data), col, parquet.CompressionCodec_UNCOMPRESSED,
		chunk.locations[0].Offset, int64(chunk.locations[0].CompressedPageSize)-1)

	_, err := r.Next()
	assert.Equal(t, parquet.ErrCorruptData, errors.Cause(err))
}
