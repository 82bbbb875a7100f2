// Package index reads and writes the page indexes of a column chunk and
// selects the pages holding a set of rows.
package index

import (
	"fmt"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

// BoundaryOrder tells how the min and max values of the pages are ordered.
// It is advisory, see CheckBoundaryOrder.
type BoundaryOrder int

const (
	Unordered BoundaryOrder = iota
	Ascending
	Descending
)

func (o BoundaryOrder) String() string {
	switch o {
	case Unordered:
		return "Unordered"
	case Ascending:
		return "Ascending"
	case Descending:
		return "Descending"
	}

	return fmt.Sprintf("BoundaryOrder(%d)", int(o))
}

func boundaryOrderFromThrift(o parquet.BoundaryOrder) (BoundaryOrder, error) {
	switch o {
	case parquet.BoundaryOrder_UNORDERED:
		return Unordered, nil
	case parquet.BoundaryOrder_ASCENDING:
		return Ascending, nil
	case parquet.BoundaryOrder_DESCENDING:
		return Descending, nil
	}

	return Unordered, errors.WithFields(
		errors.WithStack(parquet.ErrOutOfSpec),
		errors.Fields{
			"reason":         "unknown boundary order",
			"boundary-order": int64(o),
		})
}

func (o BoundaryOrder) thrift() parquet.BoundaryOrder {
	switch o {
	case Ascending:
		return parquet.BoundaryOrder_ASCENDING
	case Descending:
		return parquet.BoundaryOrder_DESCENDING
	default:
		return parquet.BoundaryOrder_UNORDERED
	}
}

// Value lists the types of page statistics, one per physical type.
type Value interface {
	bool | int32 | int64 | schema.Int96 | float32 | float64 | []byte
}

// PageIndex holds the statistics of one page. A nil field is unknown.
type PageIndex[T Value] struct {
	Min       *T
	Max       *T
	NullCount *int64
}

// NativeIndex is the column index of a column chunk, with one entry per page.
type NativeIndex[T Value] struct {
	PrimitiveType *schema.PrimitiveType
	Indexes       []PageIndex[T]
	BoundaryOrder BoundaryOrder
}

func (idx *NativeIndex[T]) PhysicalType() schema.PhysicalType {
	return idx.PrimitiveType.PhysicalType()
}

func (idx *NativeIndex[T]) NumPages() int { return len(idx.Indexes) }

func (idx *NativeIndex[T]) Order() BoundaryOrder { return idx.BoundaryOrder }

func (idx *NativeIndex[T]) isIndex() {}

// Index is a column index of any physical type. The implementations are
// *NativeIndex[T] for each Value type:
//
//	BOOLEAN               *NativeIndex[bool]
//	INT32                 *NativeIndex[int32]
//	INT64                 *NativeIndex[int64]
//	INT96                 *NativeIndex[schema.Int96]
//	FLOAT                 *NativeIndex[float32]
//	DOUBLE                *NativeIndex[float64]
//	BYTE_ARRAY            *NativeIndex[[]byte]
//	FIXED_LEN_BYTE_ARRAY  *NativeIndex[[]byte]
type Index interface {
	PhysicalType() schema.PhysicalType
	NumPages() int
	Order() BoundaryOrder

	isIndex()
}
