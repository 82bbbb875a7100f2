package index

import (
	"encoding/binary"
	"math"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

// Statistics are plain encoded, byte arrays without their length prefix.

func fixedWidth[T Value](width int, decode func([]byte) T) func([]byte) (T, error) {
	return func(b []byte) (T, error) {
		if len(b) != width {
			var zero T
			return zero, errors.WithFields(
				errors.WithStack(parquet.ErrCorruptData),
				errors.Fields{
					"reason":   "statistics value has invalid size",
					"expected": width,
					"actual":   len(b),
				})
		}

		return decode(b), nil
	}
}

var (
	decodeBool = fixedWidth(1, func(b []byte) bool {
		return b[0] != 0
	})
	decodeInt32 = fixedWidth(4, func(b []byte) int32 {
		return int32(binary.LittleEndian.Uint32(b))
	})
	decodeInt64 = fixedWidth(8, func(b []byte) int64 {
		return int64(binary.LittleEndian.Uint64(b))
	})
	decodeInt96 = fixedWidth(12, func(b []byte) schema.Int96 {
		return schema.Int96{
			binary.LittleEndian.Uint32(b[0:]),
			binary.LittleEndian.Uint32(b[4:]),
			binary.LittleEndian.Uint32(b[8:]),
		}
	})
	decodeFloat = fixedWidth(4, func(b []byte) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	})
	decodeDouble = fixedWidth(8, func(b []byte) float64 {
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	})
)

func decodeByteArray(b []byte) ([]byte, error) {
	v := make([]byte, len(b))
	copy(v, b)

	return v, nil
}

func decodeFixedLenByteArray(size int) func([]byte) ([]byte, error) {
	return func(b []byte) ([]byte, error) {
		if len(b) != size {
			return nil, errors.WithFields(
				errors.WithStack(parquet.ErrCorruptData),
				errors.Fields{
					"reason":   "statistics value has invalid size",
					"expected": size,
					"actual":   len(b),
				})
		}

		return decodeByteArray(b)
	}
}

func encodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}

	return []byte{0}
}

func encodeInt32(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))

	return b
}

func encodeInt64(v int64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))

	return b
}

func encodeInt96(v schema.Int96) []byte {
	b := make([]byte, 12)
	for i, w := range v {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}

	return b
}

func encodeFloat(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))

	return b
}

func encodeDouble(v float64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))

	return b
}

func encodeByteArray(v []byte) []byte {
	return v
}

// EncodeStatistic encodes a statistics value the way column indexes and page
// headers store it.
func EncodeStatistic[T Value](v T) []byte {
	switch x := any(v).(type) {
	case bool:
		return encodeBool(x)
	case int32:
		return encodeInt32(x)
	case int64:
		return encodeInt64(x)
	case schema.Int96:
		return encodeInt96(x)
	case float32:
		return encodeFloat(x)
	case float64:
		return encodeDouble(x)
	case []byte:
		return encodeByteArray(x)
	}

	return nil
}
