package layout

import (
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/index"
	"github.com/hexbee-net/parquet-pages/page"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
	"go.uber.org/zap"
)

// PageReader reads every page of a column chunk, in order.
type PageReader struct {
	reader *offsetReader
	column *schema.ColumnDescriptor
	codec  parquet.CompressionCodec

	chunkOffset int64
	chunkSize   int64
	started     bool

	// nextRow is the first row of the next data page, -1 once unknown.
	nextRow        int64
	seenDictionary bool

	buffer []byte
	logger *zap.Logger
}

// NewPageReader creates a reader for the column chunk of chunkSize bytes
// starting at chunkOffset. The chunk starts with its dictionary page, if any.
func NewPageReader(
	src io.ReadSeeker,
	column *schema.ColumnDescriptor,
	codec parquet.CompressionCodec,
	chunkOffset, chunkSize int64,
	opts ...Option,
) *PageReader {
	o := newOptions(opts)

	return &PageReader{
		reader:      &offsetReader{inner: src},
		column:      column,
		codec:       codec,
		chunkOffset: chunkOffset,
		chunkSize:   chunkSize,
		buffer:      o.buffer,
		logger:      o.logger,
	}
}

// Next returns the next page of the chunk. The page buffer is only valid until
// the next call.
func (r *PageReader) Next() (page.CompressedPage, error) {
	if !r.started {
		if err := r.start(); err != nil {
			return nil, err
		}
	}

	remaining := r.chunkSize - r.reader.Count()
	if remaining < 1 {
		return nil, io.EOF
	}

	offset := r.reader.offset

	header := &parquet.PageHeader{}
	if err := parquet.ReadThrift(header, r.reader); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to read page header"),
			errors.Fields{
				"offset": offset,
			})
	}

	if err := checkPageSizes(header); err != nil {
		return nil, err
	}

	if r.reader.Count()+int64(header.CompressedPageSize) > r.chunkSize {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":     "page overruns the column chunk",
				"offset":     offset,
				"page-size":  header.CompressedPageSize,
				"chunk-size": r.chunkSize,
			})
	}

	r.buffer = growBuffer(r.buffer, int(header.CompressedPageSize))
	if _, err := io.ReadFull(r.reader, r.buffer); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to read page body"),
			errors.Fields{
				"offset": offset,
				"size":   header.CompressedPageSize,
			})
	}

	rows := r.pageRows(header)

	p, err := newCompressedPage(header, r.buffer, r.column, r.codec, rows)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"offset": offset})
	}

	if _, ok := p.(*page.CompressedDictionaryPage); ok {
		if r.seenDictionary {
			return nil, errors.WithFields(
				errors.WithStack(parquet.ErrOutOfSpec),
				errors.Fields{
					"reason": "more than one dictionary page in the column chunk",
					"offset": offset,
				})
		}

		r.seenDictionary = true
	}

	r.logger.Debug("read page",
		zap.String("column", r.column.FlatName()),
		zap.Stringer("type", header.Type),
		zap.Int64("offset", offset),
		zap.Int32("size", header.CompressedPageSize))

	return p, nil
}

func (r *PageReader) start() error {
	if _, err := r.reader.Seek(r.chunkOffset, io.SeekStart); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to set the read index to the chunk start"),
			errors.Fields{
				"offset": r.chunkOffset,
			})
	}

	r.reader.count = 0
	r.started = true

	return nil
}

// pageRows returns the rows of a data page when they can be known without
// decoding its levels.
func (r *PageReader) pageRows(header *parquet.PageHeader) *index.Interval {
	var n int64

	switch {
	case header.DataPageHeaderV2 != nil:
		n = int64(header.DataPageHeaderV2.NumRows)
	case header.DataPageHeader != nil && r.column.MaxRepLevel() == 0:
		n = int64(header.DataPageHeader.NumValues)
	case header.DataPageHeader != nil:
		r.nextRow = -1
		return nil
	default:
		return nil
	}

	if r.nextRow < 0 || n < 0 {
		r.nextRow = -1
		return nil
	}

	rows := index.NewInterval(uint64(r.nextRow), uint64(n))
	r.nextRow += n

	return &rows
}

// /////////////////////////////////////////////////////////////////////////////

func checkPageSizes(header *parquet.PageHeader) error {
	if header.CompressedPageSize < 0 || header.UncompressedPageSize < 0 {
		return errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":            "invalid page data size",
				"compressed-size":   header.CompressedPageSize,
				"uncompressed-size": header.UncompressedPageSize,
			})
	}

	return nil
}

// newCompressedPage checks a page header against its body and wraps them.
func newCompressedPage(
	header *parquet.PageHeader,
	body []byte,
	column *schema.ColumnDescriptor,
	codec parquet.CompressionCodec,
	rows *index.Interval,
) (page.CompressedPage, error) {
	if err := checkPageSizes(header); err != nil {
		return nil, err
	}

	if int(header.CompressedPageSize) != len(body) {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":   "page body size does not match its header",
				"expected": header.CompressedPageSize,
				"actual":   len(body),
			})
	}

	switch header.Type {
	case parquet.PageType_DICTIONARY_PAGE:
		return newDictionaryPage(header, body, codec)

	case parquet.PageType_DATA_PAGE:
		if err := checkDataPageV1(header); err != nil {
			return nil, err
		}

	case parquet.PageType_DATA_PAGE_V2:
		if err := checkDataPageV2(header); err != nil {
			return nil, err
		}

	default:
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason":    "page type not supported",
				"page-type": header.Type.String(),
			})
	}

	return &page.CompressedDataPage{
		Header:      header,
		Buffer:      body,
		Compression: codec,
		Descriptor:  column,
		Rows:        rows,
	}, nil
}
