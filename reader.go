// Package parquet reads selected rows of parquet column chunks through their
// page indexes.
package parquet

import (
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/index"
	"github.com/hexbee-net/parquet-pages/layout"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

// ReadRows returns the values of the requested rows of a flat column chunk,
// in row order whatever the order of requested, with nil for null values.
//
// locations is the offset index of the chunk and numRows the number of rows
// of its row group. Only the pages holding requested rows are read. Use
// layout.WithDictionaryPage when the chunk has a dictionary.
func ReadRows(
	src io.ReadSeeker,
	column *schema.ColumnDescriptor,
	codec parquet.CompressionCodec,
	locations []index.PageLocation,
	numRows uint64,
	requested []index.Interval,
	opts ...layout.Option,
) ([]interface{}, error) {
	if column == nil {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "missing column descriptor",
			})
	}

	if column.MaxRepLevel() > 0 {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason":    "repeated columns are not supported",
				"column":    column.FlatName(),
				"max-level": column.MaxRepLevel(),
			})
	}

	requested = index.SortIntervals(requested)

	pages, err := index.SelectPages(requested, locations, numRows)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select pages")
	}

	reader := layout.NewIndexedPageReader(src, column, codec, pages, opts...)
	decompressor := layout.NewBasicDecompressor(reader, nil, opts...)

	var res []interface{}

	for {
		p, err := decompressor.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Wrap(err, "failed to read page")
		}

		values, err := layout.DecodeDataPage(p)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode page")
		}

		if res, err = appendRows(res, p.Rows, values.Values, requested); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// appendRows appends the values of the requested rows of a page.
func appendRows(res []interface{}, rows *index.Interval, values []interface{}, requested []index.Interval) ([]interface{}, error) {
	if rows == nil {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "page without row interval",
			})
	}

	if uint64(len(values)) != rows.Length {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":   "page value count does not match its rows",
				"expected": rows.Length,
				"actual":   len(values),
			})
	}

	page := index.FilteredPage{Rows: *rows}

	for _, in := range page.Clip(requested) {
		start := in.Start - rows.Start
		res = append(res, values[start:start+in.Length]...)
	}

	return res, nil
}
