package index

import (
	"bytes"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

// CheckBoundaryOrder reports whether the min and max values of idx follow its
// declared boundary order. Null pages are ignored. An Unordered index is
// always consistent.
func CheckBoundaryOrder(idx Index) (bool, error) {
	switch x := idx.(type) {
	case *NativeIndex[bool]:
		return checkOrder(x, compareBool), nil
	case *NativeIndex[int32]:
		return checkOrder(x, compareOrdered[int32]), nil
	case *NativeIndex[int64]:
		return checkOrder(x, compareOrdered[int64]), nil
	case *NativeIndex[float32]:
		return checkOrder(x, compareOrdered[float32]), nil
	case *NativeIndex[float64]:
		return checkOrder(x, compareOrdered[float64]), nil
	case *NativeIndex[[]byte]:
		return checkOrder(x, bytes.Compare), nil
	case *NativeIndex[schema.Int96]:
		if x.BoundaryOrder == Unordered {
			return true, nil
		}

		return false, errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason": "INT96 has no defined sort order",
			})
	}

	return false, errors.WithFields(
		errors.WithStack(parquet.ErrInvalidParameter),
		errors.Fields{
			"reason": "unknown index implementation",
		})
}

func checkOrder[T Value](idx *NativeIndex[T], cmp func(a, b T) int) bool {
	var sign int

	switch idx.BoundaryOrder {
	case Ascending:
		sign = 1
	case Descending:
		sign = -1
	default:
		return true
	}

	var prev *PageIndex[T]

	for i := range idx.Indexes {
		page := &idx.Indexes[i]
		if page.Min == nil || page.Max == nil {
			continue
		}

		if prev != nil {
			if sign*cmp(*prev.Min, *page.Min) > 0 || sign*cmp(*prev.Max, *page.Max) > 0 {
				return false
			}
		}

		prev = page
	}

	return true
}

func compareOrdered[T int32 | int64 | float32 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	}

	return 1
}
