package index

import (
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

// WriteColumnIndex writes idx as a thrift column index. A page without min and
// max is written as a null page.
func WriteColumnIndex(w io.Writer, idx Index) error {
	ci, err := EncodeColumnIndex(idx)
	if err != nil {
		return err
	}

	if err := parquet.WriteThrift(ci, w); err != nil {
		return errors.Wrap(err, "failed to write column index")
	}

	return nil
}

// EncodeColumnIndex converts idx to its thrift form.
func EncodeColumnIndex(idx Index) (*parquet.ColumnIndex, error) {
	switch x := idx.(type) {
	case *NativeIndex[bool]:
		return encodeNative(x), nil
	case *NativeIndex[int32]:
		return encodeNative(x), nil
	case *NativeIndex[int64]:
		return encodeNative(x), nil
	case *NativeIndex[schema.Int96]:
		return encodeNative(x), nil
	case *NativeIndex[float32]:
		return encodeNative(x), nil
	case *NativeIndex[float64]:
		return encodeNative(x), nil
	case *NativeIndex[[]byte]:
		return encodeNative(x), nil
	}

	return nil, errors.WithFields(
		errors.WithStack(parquet.ErrInvalidParameter),
		errors.Fields{
			"reason": "unknown index implementation",
		})
}

func encodeNative[T Value](idx *NativeIndex[T]) *parquet.ColumnIndex {
	n := len(idx.Indexes)

	ci := &parquet.ColumnIndex{
		NullPages:     make([]bool, n),
		MinValues:     make([][]byte, n),
		MaxValues:     make([][]byte, n),
		BoundaryOrder: idx.BoundaryOrder.thrift(),
		NullCounts:    make([]int64, n),
	}

	for i, page := range idx.Indexes {
		if page.NullCount == nil {
			ci.NullCounts = nil
		} else if ci.NullCounts != nil {
			ci.NullCounts[i] = *page.NullCount
		}

		if page.Min == nil || page.Max == nil {
			ci.NullPages[i] = true
			ci.MinValues[i] = []byte{}
			ci.MaxValues[i] = []byte{}

			continue
		}

		ci.MinValues[i] = EncodeStatistic(*page.Min)
		ci.MaxValues[i] = EncodeStatistic(*page.Max)
	}

	return ci
}

// WriteOffsetIndex writes locations as a thrift offset index.
func WriteOffsetIndex(w io.Writer, locations []PageLocation) error {
	oi := &parquet.OffsetIndex{
		PageLocations: make([]*parquet.PageLocation, len(locations)),
	}

	for i, l := range locations {
		oi.PageLocations[i] = &parquet.PageLocation{
			Offset:             l.Offset,
			CompressedPageSize: l.CompressedPageSize,
			FirstRowIndex:      l.FirstRowIndex,
		}
	}

	if err := parquet.WriteThrift(oi, w); err != nil {
		return errors.Wrap(err, "failed to write offset index")
	}

	return nil
}

// PageStatistics returns the page header statistics of a page.
func PageStatistics[T Value](p PageIndex[T]) *parquet.Statistics {
	stats := &parquet.Statistics{}

	if p.NullCount != nil {
		nullCount := *p.NullCount
		stats.NullCount = &nullCount
	}

	if p.Min != nil {
		stats.MinValue = EncodeStatistic(*p.Min)
	}

	if p.Max != nil {
		stats.MaxValue = EncodeStatistic(*p.Max)
	}

	return stats
}
