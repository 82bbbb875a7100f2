package encoding

import (
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/hexbee-net/errors"
)

type (
	DeltaBinaryPackEncoder32 = DeltaBinaryPackEncoder[int32]
	DeltaBinaryPackEncoder64 = DeltaBinaryPackEncoder[int64]
)

// DeltaBinaryPackEncoder writes values with DELTA_BINARY_PACKED. The blocks
// are buffered until Close, which writes the header then the blocks.
type DeltaBinaryPackEncoder[T DeltaInt] struct {
	w io.Writer

	// set before Init
	blockSize      int // multiple of 128
	miniblockCount int // divides blockSize in multiples of 8

	miniblockValueCount int

	valuesCount   int
	firstValue    T
	previousValue T

	deltas []T
	blocks []byte
}

// NewDeltaBinaryPackEncoder returns an encoder writing blocks of blockSize
// deltas, split in miniblockCount miniblocks.
func NewDeltaBinaryPackEncoder[T DeltaInt](blockSize, miniblockCount int) *DeltaBinaryPackEncoder[T] {
	return &DeltaBinaryPackEncoder[T]{
		blockSize:      blockSize,
		miniblockCount: miniblockCount,
	}
}

func (e *DeltaBinaryPackEncoder[T]) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	if e.blockSize <= 0 || e.blockSize%128 != 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidBlockSize),
			errors.Fields{
				"block-size": e.blockSize,
			})
	}

	if e.miniblockCount <= 0 || e.blockSize%e.miniblockCount != 0 || (e.blockSize/e.miniblockCount)%8 != 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidMiniblockCount),
			errors.Fields{
				"block-size":      e.blockSize,
				"miniblock-count": e.miniblockCount,
			})
	}

	e.w = writer
	e.miniblockValueCount = e.blockSize / e.miniblockCount
	e.valuesCount = 0
	e.firstValue = 0
	e.previousValue = 0
	e.deltas = make([]T, 0, e.blockSize)
	e.blocks = e.blocks[:0]

	return nil
}

// Add appends v to the stream.
func (e *DeltaBinaryPackEncoder[T]) Add(v T) {
	e.valuesCount++

	if e.valuesCount == 1 {
		e.firstValue = v
		e.previousValue = v

		return
	}

	e.deltas = append(e.deltas, v-e.previousValue)
	e.previousValue = v

	if len(e.deltas) == e.blockSize {
		e.flushBlock()
	}
}

// Close writes the stream. It does not close the underlying writer.
func (e *DeltaBinaryPackEncoder[T]) Close() error {
	if len(e.deltas) > 0 {
		e.flushBlock()
	}

	header := make([]byte, 0, 4*binary.MaxVarintLen64)
	header = appendUVarInt(header, uint64(e.blockSize))
	header = appendUVarInt(header, uint64(e.miniblockCount))
	header = appendUVarInt(header, uint64(e.valuesCount))
	header = appendVarInt(header, int64(e.firstValue))

	if err := writeFull(e.w, header); err != nil {
		return err
	}

	return writeFull(e.w, e.blocks)
}

func (e *DeltaBinaryPackEncoder[T]) flushBlock() {
	minDelta := e.deltas[0]
	for _, d := range e.deltas[1:] {
		if d < minDelta {
			minDelta = d
		}
	}

	e.blocks = appendVarInt(e.blocks, int64(minDelta))

	// Unused miniblocks keep a zero width and have no data.
	widths := len(e.blocks)
	e.blocks = append(e.blocks, make([]byte, e.miniblockCount)...)

	mask := deltaMask[T]()

	for m := 0; m*e.miniblockValueCount < len(e.deltas); m++ {
		start := m * e.miniblockValueCount

		end := start + e.miniblockValueCount
		if end > len(e.deltas) {
			end = len(e.deltas)
		}

		// The subtraction may wrap: the result is read back as an unsigned
		// value of the width of T.
		var max uint64
		for _, d := range e.deltas[start:end] {
			if u := uint64(d-minDelta) & mask; u > max {
				max = u
			}
		}

		bw := bits.Len64(max)
		e.blocks[widths+m] = byte(bw)

		var group [8]uint64

		for g := start; g < start+e.miniblockValueCount; g += 8 {
			for i := range group {
				group[i] = 0
				if g+i < end {
					group[i] = uint64(e.deltas[g+i]-minDelta) & mask
				}
			}

			e.blocks = append(e.blocks, pack8Uint64(group, bw)...)
		}
	}

	e.deltas = e.deltas[:0]
}
