package page

import (
	"encoding/binary"
	"math"

	"github.com/hexbee-net/parquet-pages/schema"
)

const sizeLength = 4

func decodeLength(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

func decodeInt32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

func decodeInt64(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

func decodeInt96(b []byte) schema.Int96 {
	return schema.Int96{
		binary.LittleEndian.Uint32(b[0:]),
		binary.LittleEndian.Uint32(b[4:]),
		binary.LittleEndian.Uint32(b[8:]),
	}
}

func decodeFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func decodeDouble(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
