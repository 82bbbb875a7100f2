package index

import (
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

// ReadColumnIndex reads the column index stored at offset and decodes its
// statistics as values of typ.
func ReadColumnIndex(r io.ReadSeeker, offset int64, length int32, typ *schema.PrimitiveType) (Index, error) {
	if typ == nil {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "missing primitive type",
			})
	}

	ci := &parquet.ColumnIndex{}
	if err := readThriftAt(r, offset, length, ci); err != nil {
		return nil, errors.Wrap(err, "failed to read column index")
	}

	return DecodeColumnIndex(ci, typ)
}

// DecodeColumnIndex converts a thrift column index to its native form.
func DecodeColumnIndex(ci *parquet.ColumnIndex, typ *schema.PrimitiveType) (Index, error) {
	physical := typ.PhysicalType()

	switch physical.Type {
	case parquet.Type_BOOLEAN:
		return decodeNative(ci, typ, decodeBool)
	case parquet.Type_INT32:
		return decodeNative(ci, typ, decodeInt32)
	case parquet.Type_INT64:
		return decodeNative(ci, typ, decodeInt64)
	case parquet.Type_INT96:
		return decodeNative(ci, typ, decodeInt96)
	case parquet.Type_FLOAT:
		return decodeNative(ci, typ, decodeFloat)
	case parquet.Type_DOUBLE:
		return decodeNative(ci, typ, decodeDouble)
	case parquet.Type_BYTE_ARRAY:
		return decodeNative(ci, typ, decodeByteArray)
	case parquet.Type_FIXED_LEN_BYTE_ARRAY:
		return decodeNative(ci, typ, decodeFixedLenByteArray(physical.Length))
	}

	return nil, errors.WithFields(
		errors.WithStack(parquet.ErrOutOfSpec),
		errors.Fields{
			"reason": "unknown physical type",
			"type":   physical.String(),
		})
}

func decodeNative[T Value](ci *parquet.ColumnIndex, typ *schema.PrimitiveType, decode func([]byte) (T, error)) (*NativeIndex[T], error) {
	n := len(ci.NullPages)

	if len(ci.MinValues) != n || len(ci.MaxValues) != n || (ci.NullCounts != nil && len(ci.NullCounts) != n) {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":      "column index lists have different lengths",
				"null-pages":  n,
				"min-values":  len(ci.MinValues),
				"max-values":  len(ci.MaxValues),
				"null-counts": len(ci.NullCounts),
			})
	}

	order, err := boundaryOrderFromThrift(ci.BoundaryOrder)
	if err != nil {
		return nil, err
	}

	idx := &NativeIndex[T]{
		PrimitiveType: typ,
		Indexes:       make([]PageIndex[T], n),
		BoundaryOrder: order,
	}

	for i := range idx.Indexes {
		page := &idx.Indexes[i]

		if ci.NullCounts != nil {
			nullCount := ci.NullCounts[i]
			page.NullCount = &nullCount
		}

		if ci.NullPages[i] {
			continue
		}

		minValue, err := decode(ci.MinValues[i])
		if err != nil {
			return nil, errors.WithFields(err, errors.Fields{"page": i, "field": "min"})
		}

		maxValue, err := decode(ci.MaxValues[i])
		if err != nil {
			return nil, errors.WithFields(err, errors.Fields{"page": i, "field": "max"})
		}

		page.Min = &minValue
		page.Max = &maxValue
	}

	return idx, nil
}

// ReadOffsetIndex reads the offset index stored at offset.
func ReadOffsetIndex(r io.ReadSeeker, offset int64, length int32) ([]PageLocation, error) {
	oi := &parquet.OffsetIndex{}
	if err := readThriftAt(r, offset, length, oi); err != nil {
		return nil, errors.Wrap(err, "failed to read offset index")
	}

	locations := make([]PageLocation, len(oi.PageLocations))
	for i, l := range oi.PageLocations {
		locations[i] = PageLocation{
			Offset:             l.Offset,
			CompressedPageSize: l.CompressedPageSize,
			FirstRowIndex:      l.FirstRowIndex,
		}
	}

	return locations, nil
}

func readThriftAt(r io.ReadSeeker, offset int64, length int32, v parquet.ThriftReader) error {
	if offset < 0 || length < 0 {
		return errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "negative index location",
				"offset": offset,
				"length": length,
			})
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return errors.Wrap(err, "failed to get the source size")
	}

	if offset > size || int64(length) > size-offset {
		return errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason": "index location past the end of the source",
				"offset": offset,
				"length": length,
				"size":   size,
			})
	}

	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to seek to the index"),
			errors.Fields{
				"offset": offset,
			})
	}

	if err := parquet.ReadThrift(v, io.LimitReader(r, int64(length))); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to read the index"),
			errors.Fields{
				"offset": offset,
				"length": length,
			})
	}

	return nil
}
