package layout

import (
	"bytes"
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/compression"
	"github.com/hexbee-net/parquet-pages/encoding"
	"github.com/hexbee-net/parquet-pages/index"
	"github.com/hexbee-net/parquet-pages/page"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
	"github.com/hexbee-net/parquet-pages/types"
)

// Compressor compresses pages with a single codec.
type Compressor struct {
	codec  parquet.CompressionCodec
	codecs compression.Codecs
}

// NewCompressor creates a compressor. A nil codecs uses the default ones.
func NewCompressor(codec parquet.CompressionCodec, codecs compression.Codecs) *Compressor {
	if codecs == nil {
		codecs = compression.DefaultCodecs()
	}

	return &Compressor{
		codec:  codec,
		codecs: codecs,
	}
}

// Compress compresses a data or dictionary page. The levels of V2 pages stay
// uncompressed.
func (c *Compressor) Compress(p page.Page) (page.CompressedPage, error) {
	switch x := p.(type) {
	case *page.DictPage:
		buf, err := compressBlock(c.codecs, c.codec, x.Encoded.Buffer)
		if err != nil {
			return nil, err
		}

		return &page.CompressedDictionaryPage{
			Buffer:               buf,
			Compression:          c.codec,
			UncompressedPageSize: len(x.Encoded.Buffer),
			NumValues:            x.Encoded.NumValues,
			IsSorted:             x.IsSorted,
		}, nil

	case *page.DataPage:
		return c.compressDataPage(x)
	}

	return nil, errors.WithFields(
		errors.WithStack(parquet.ErrInvalidParameter),
		errors.Fields{
			"reason": "unknown page implementation",
		})
}

func (c *Compressor) compressDataPage(p *page.DataPage) (*page.CompressedDataPage, error) {
	header := *p.Header
	header.UncompressedPageSize = int32(len(p.Buffer))

	var (
		buf []byte
		err error
	)

	if h := header.DataPageHeaderV2; h != nil {
		levels := int(levelsSize(h))
		if levels > len(p.Buffer) {
			return nil, errors.WithFields(
				errors.WithStack(parquet.ErrInvalidParameter),
				errors.Fields{
					"reason":      "levels overrun the page",
					"levels-size": levels,
					"page-size":   len(p.Buffer),
				})
		}

		values, err := compressBlock(c.codecs, c.codec, p.Buffer[levels:])
		if err != nil {
			return nil, err
		}

		buf = make([]byte, 0, levels+len(values))
		buf = append(buf, p.Buffer[:levels]...)
		buf = append(buf, values...)

		v2 := *h
		v2.IsCompressed = parquet.BoolPtr(c.codec != parquet.CompressionCodec_UNCOMPRESSED)
		header.DataPageHeaderV2 = &v2
	} else if buf, err = compressBlock(c.codecs, c.codec, p.Buffer); err != nil {
		return nil, err
	}

	header.CompressedPageSize = int32(len(buf))

	return &page.CompressedDataPage{
		Header:      &header,
		Buffer:      buf,
		Compression: c.codec,
		Descriptor:  p.Descriptor,
		Rows:        p.Rows,
	}, nil
}

// /////////////////////////////////////////////////////////////////////////////

// PageWriter writes compressed pages and records their locations.
type PageWriter struct {
	w      io.Writer
	offset int64

	numRows   int64
	locations []index.PageLocation

	hasDictionary    bool
	dictionaryOffset int64
	dictionarySize   int32
}

// NewPageWriter creates a writer. offset is the position of w in the file.
func NewPageWriter(w io.Writer, offset int64) *PageWriter {
	return &PageWriter{
		w:      w,
		offset: offset,
	}
}

// Write writes the header and the body of p.
func (w *PageWriter) Write(p page.CompressedPage) error {
	var (
		header *parquet.PageHeader
		body   []byte
		rows   int64
	)

	switch x := p.(type) {
	case *page.CompressedDictionaryPage:
		if w.hasDictionary || len(w.locations) > 0 {
			return errors.WithFields(
				errors.WithStack(parquet.ErrInvalidParameter),
				errors.Fields{
					"reason": "the dictionary page must be the first page of the chunk",
				})
		}

		header, body = x.PageHeader(), x.Buffer

	case *page.CompressedDataPage:
		header, body = x.Header, x.Buffer

		var err error
		if rows, err = dataPageRows(x); err != nil {
			return err
		}

	default:
		return errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "unknown page implementation",
			})
	}

	buf := &bytes.Buffer{}
	if err := parquet.WriteThrift(header, buf); err != nil {
		return errors.Wrap(err, "failed to write page header")
	}

	buf.Write(body)
	size := int32(buf.Len())

	if _, err := buf.WriteTo(w.w); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to write page"),
			errors.Fields{
				"offset": w.offset,
			})
	}

	if header.Type == parquet.PageType_DICTIONARY_PAGE {
		w.hasDictionary = true
		w.dictionaryOffset = w.offset
		w.dictionarySize = size
	} else {
		w.locations = append(w.locations, index.PageLocation{
			Offset:             w.offset,
			CompressedPageSize: size,
			FirstRowIndex:      w.numRows,
		})
		w.numRows += rows
	}

	w.offset += int64(size)

	return nil
}

func dataPageRows(p *page.CompressedDataPage) (int64, error) {
	switch {
	case p.Rows != nil:
		return int64(p.Rows.Length), nil
	case p.Header.DataPageHeaderV2 != nil:
		return int64(p.Header.DataPageHeaderV2.NumRows), nil
	case p.Header.DataPageHeader != nil && p.Descriptor != nil && p.Descriptor.MaxRepLevel() == 0:
		return int64(p.Header.DataPageHeader.NumValues), nil
	}

	return 0, errors.WithFields(
		errors.WithStack(parquet.ErrInvalidParameter),
		errors.Fields{
			"reason": "cannot count the rows of the page",
		})
}

// Offset returns the position of the next page.
func (w *PageWriter) Offset() int64 { return w.offset }

// NumRows returns the number of rows written.
func (w *PageWriter) NumRows() int64 { return w.numRows }

// Locations returns the locations of the data pages written so far, for the
// offset index.
func (w *PageWriter) Locations() []index.PageLocation {
	locations := make([]index.PageLocation, len(w.locations))
	copy(locations, w.locations)

	return locations
}

// DictionaryPage returns the location of the dictionary page, size included
// its header.
func (w *PageWriter) DictionaryPage() (offset int64, size int32, ok bool) {
	return w.dictionaryOffset, w.dictionarySize, w.hasDictionary
}

// /////////////////////////////////////////////////////////////////////////////

// DataPageOptions configures EncodeDataPageV1.
type DataPageOptions struct {
	// Statistics are written as is in the page header.
	Statistics *parquet.Statistics
	// DictionarySize, when positive, means values are int32 indices into a
	// dictionary of that size, written with RLE_DICTIONARY.
	DictionarySize int
	// Dictionary is attached to the returned page.
	Dictionary page.DictionaryPage
	// Encoding of the values when DictionarySize is zero, PLAIN by default.
	Encoding parquet.Encoding
}

// EncodeDataPageV1 encodes the values of a flat column as an uncompressed V1
// data page. nil values are nulls.
func EncodeDataPageV1(column *schema.ColumnDescriptor, values []interface{}, opts DataPageOptions) (*page.DataPage, error) {
	if column == nil || column.MaxRepLevel() != 0 {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "only flat columns can be encoded",
			})
	}

	maxDef := column.MaxDefLevel()
	buf := &bytes.Buffer{}
	notNull := make([]interface{}, 0, len(values))

	levels, err := encoding.NewHybridEncoder(encoding.BitWidth(int(maxDef)))
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		if v == nil {
			if maxDef == 0 {
				return nil, errors.WithFields(
					errors.WithStack(parquet.ErrInvalidParameter),
					errors.Fields{
						"reason": "null value in a required column",
						"index":  i,
					})
			}

			if err := levels.AppendSingle(int32(maxDef - 1)); err != nil {
				return nil, err
			}

			continue
		}

		if err := levels.AppendSingle(int32(maxDef)); err != nil {
			return nil, err
		}

		notNull = append(notNull, v)
	}

	if maxDef > 0 {
		if err := levels.WriteSize(buf); err != nil {
			return nil, err
		}
	}

	enc := opts.Encoding

	var valuesEncoder types.ValuesEncoder
	if opts.DictionarySize > 0 {
		enc = parquet.Encoding_RLE_DICTIONARY
		valuesEncoder = types.NewDictEncoder(opts.DictionarySize)
	} else if valuesEncoder, err = types.NewValuesEncoder(column.PhysicalType(), enc); err != nil {
		return nil, err
	}

	if err := valuesEncoder.Init(buf); err != nil {
		return nil, err
	}

	if err := valuesEncoder.EncodeValues(notNull); err != nil {
		return nil, err
	}

	if err := valuesEncoder.Close(); err != nil {
		return nil, err
	}

	header := &parquet.PageHeader{
		Type:                 parquet.PageType_DATA_PAGE,
		UncompressedPageSize: int32(buf.Len()),
		CompressedPageSize:   int32(buf.Len()),
		DataPageHeader: &parquet.DataPageHeader{
			NumValues:               int32(len(values)),
			Encoding:                enc,
			DefinitionLevelEncoding: parquet.Encoding_RLE,
			RepetitionLevelEncoding: parquet.Encoding_RLE,
			Statistics:              opts.Statistics,
		},
	}

	return page.NewDataPage(header, buf.Bytes(), column, nil, opts.Dictionary), nil
}
