package layout

import (
	"bytes"
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/index"
	"github.com/hexbee-net/parquet-pages/page"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
	"go.uber.org/zap"
)

// IndexedPageReader reads the selected pages of a column chunk, skipping the
// others. It only ever seeks forward.
type IndexedPageReader struct {
	src    io.ReadSeeker
	column *schema.ColumnDescriptor
	codec  parquet.CompressionCodec
	pages  []index.FilteredPage

	hasDictionary    bool
	dictionaryOffset int64
	dictionarySize   int32

	next int
	// position is the offset of src, -1 until the first read.
	position int64

	buffer []byte
	logger *zap.Logger
}

// NewIndexedPageReader creates a reader of the given pages, as returned by
// index.SelectPages.
func NewIndexedPageReader(
	src io.ReadSeeker,
	column *schema.ColumnDescriptor,
	codec parquet.CompressionCodec,
	pages []index.FilteredPage,
	opts ...Option,
) *IndexedPageReader {
	o := newOptions(opts)

	return &IndexedPageReader{
		src:              src,
		column:           column,
		codec:            codec,
		pages:            pages,
		hasDictionary:    o.hasDictionary,
		dictionaryOffset: o.dictionaryOffset,
		dictionarySize:   o.dictionarySize,
		position:         -1,
		buffer:           o.buffer,
		logger:           o.logger,
	}
}

// Next returns the dictionary page first, when there is one, then the selected
// data pages. The page buffer is only valid until the next call.
func (r *IndexedPageReader) Next() (page.CompressedPage, error) {
	if r.hasDictionary {
		r.hasDictionary = false

		p, err := r.readPage(r.dictionaryOffset, r.dictionarySize, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read dictionary page")
		}

		if _, ok := p.(*page.CompressedDictionaryPage); !ok {
			return nil, errors.WithFields(
				errors.WithStack(parquet.ErrOutOfSpec),
				errors.Fields{
					"reason": "expected a dictionary page",
					"offset": r.dictionaryOffset,
				})
		}

		return p, nil
	}

	if r.next >= len(r.pages) {
		return nil, io.EOF
	}

	selected := r.pages[r.next]
	r.next++

	if selected.Location == nil {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "selected page without location",
				"index":  r.next - 1,
			})
	}

	rows := selected.Rows

	p, err := r.readPage(selected.Location.Offset, selected.Location.CompressedPageSize, &rows)
	if err != nil {
		return nil, err
	}

	if _, ok := p.(*page.CompressedDataPage); !ok {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason": "offset index points to a non data page",
				"offset": selected.Location.Offset,
			})
	}

	return p, nil
}

// readPage reads size bytes at offset: the page header then its body.
func (r *IndexedPageReader) readPage(offset int64, size int32, rows *index.Interval) (page.CompressedPage, error) {
	if offset < 0 || size < 0 {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "negative page location",
				"offset": offset,
				"size":   size,
			})
	}

	if err := r.seek(offset); err != nil {
		return nil, err
	}

	r.buffer = growBuffer(r.buffer, int(size))

	n, err := io.ReadFull(r.src, r.buffer)
	r.position += int64(n)

	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to read page"),
			errors.Fields{
				"offset": offset,
				"size":   size,
			})
	}

	reader := bytes.NewReader(r.buffer)

	header := &parquet.PageHeader{}
	// The whole location is in memory: a header that does not parse within
	// it means the offset index and the data disagree.
	if err := parquet.ReadThrift(header, reader); err != nil {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason": "page header does not fit the page location",
				"offset": offset,
				"size":   size,
				"header": err.Error(),
			})
	}

	headerSize := len(r.buffer) - reader.Len()

	p, err := newCompressedPage(header, r.buffer[headerSize:], r.column, r.codec, rows)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{
			"offset":      offset,
			"header-size": headerSize,
		})
	}

	r.logger.Debug("read page",
		zap.String("column", r.column.FlatName()),
		zap.Stringer("type", header.Type),
		zap.Int64("offset", offset),
		zap.Int32("size", size))

	return p, nil
}

func (r *IndexedPageReader) seek(offset int64) error {
	if offset == r.position {
		return nil
	}

	if r.position >= 0 && offset < r.position {
		return errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason":   "pages are not in file order",
				"offset":   offset,
				"position": r.position,
			})
	}

	if r.position >= 0 {
		r.logger.Debug("skip pages",
			zap.String("column", r.column.FlatName()),
			zap.Int64("from", r.position),
			zap.Int64("to", offset))
	}

	if _, err := r.src.Seek(offset, io.SeekStart); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to set the read index to the page start"),
			errors.Fields{
				"offset": offset,
			})
	}

	r.position = offset

	return nil
}
