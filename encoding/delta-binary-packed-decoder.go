package encoding

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	errInvalidBlockSize      = errors.Error("invalid block size")
	errInvalidMiniblockCount = errors.Error("invalid miniblock count")
)

// DeltaInt lists the physical types stored with DELTA_BINARY_PACKED.
type DeltaInt interface {
	int32 | int64
}

func deltaWidth[T DeltaInt]() int {
	var v T

	if _, ok := any(v).(int32); ok {
		return 32
	}

	return 64
}

// deltaMask keeps the bits of a T stored in a uint64.
func deltaMask[T DeltaInt]() uint64 {
	if w := deltaWidth[T](); w < 64 {
		return 1<<uint(w) - 1
	}

	return ^uint64(0)
}

type (
	DeltaBinaryPackDecoder32 = DeltaBinaryPackDecoder[int32]
	DeltaBinaryPackDecoder64 = DeltaBinaryPackDecoder[int64]
)

// DeltaBinaryPackDecoder reads a DELTA_BINARY_PACKED stream: a header holding
// the first value, then blocks of deltas split in bit-packed miniblocks.
// Deltas are added with the wrap-around arithmetic of T.
type DeltaBinaryPackDecoder[T DeltaInt] struct {
	r io.Reader

	blockSize           int32
	miniblockCount      int32
	miniblockValueCount int32
	valuesCount         int32

	previousValue T
	minDelta      T

	bitWidths        []byte
	currentMiniblock int32
	bitWidth         int

	buf   [64]byte
	group [8]uint64

	// number of values returned so far, the first one included.
	position int32
}

func (d *DeltaBinaryPackDecoder[T]) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	*d = DeltaBinaryPackDecoder[T]{r: reader}

	return d.readHeader()
}

// InitSize is Init: the stream carries its own value count.
func (d *DeltaBinaryPackDecoder[T]) InitSize(reader io.Reader) error {
	return d.Init(reader)
}

// ValuesCount returns the number of values declared by the stream header.
func (d *DeltaBinaryPackDecoder[T]) ValuesCount() int {
	return int(d.valuesCount)
}

// Next returns the next value, or io.EOF once ValuesCount values were read.
// The padding of the last miniblock is left unread.
func (d *DeltaBinaryPackDecoder[T]) Next() (T, error) {
	if d.position >= d.valuesCount {
		return 0, io.EOF
	}

	if d.position > 0 {
		delta, err := d.nextDelta()
		if err != nil {
			return 0, err
		}

		d.previousValue += T(delta) + d.minDelta
	}

	d.position++

	return d.previousValue, nil
}

func (d *DeltaBinaryPackDecoder[T]) readHeader() (err error) {
	if d.blockSize, err = readUVarInt32(d.r); err != nil {
		return errors.Wrap(err, "failed to read block size")
	}

	if d.blockSize <= 0 || d.blockSize%128 != 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidBlockSize),
			errors.Fields{
				"block-size": d.blockSize,
			})
	}

	if d.miniblockCount, err = readUVarInt32(d.r); err != nil {
		return errors.Wrap(err, "failed to read miniblock count")
	}

	if d.miniblockCount <= 0 || d.blockSize%d.miniblockCount != 0 || (d.blockSize/d.miniblockCount)%8 != 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidMiniblockCount),
			errors.Fields{
				"block-size":      d.blockSize,
				"miniblock-count": d.miniblockCount,
			})
	}

	d.miniblockValueCount = d.blockSize / d.miniblockCount

	if d.valuesCount, err = readUVarInt32(d.r); err != nil {
		return errors.Wrap(err, "failed to read value count")
	}

	first, err := readVarInt64(d.r)
	if err != nil {
		return errors.Wrap(unexpectedEOF(err), "failed to read first value")
	}

	d.previousValue = T(first)
	d.currentMiniblock = d.miniblockCount

	return nil
}

func (d *DeltaBinaryPackDecoder[T]) readBlockHeader() error {
	minDelta, err := readVarInt64(d.r)
	if err != nil {
		return errors.Wrap(unexpectedEOF(err), "failed to read min delta")
	}

	d.minDelta = T(minDelta)

	// The widths are read as they come so a forged count cannot allocate more
	// than the stream holds.
	d.bitWidths, err = io.ReadAll(io.LimitReader(d.r, int64(d.miniblockCount)))
	if err != nil {
		return errors.Wrap(err, "failed to read miniblock bit-widths")
	}

	if len(d.bitWidths) != int(d.miniblockCount) {
		return errors.WithFields(
			errors.Wrap(io.ErrUnexpectedEOF, "failed to read miniblock bit-widths"),
			errors.Fields{
				"expected": d.miniblockCount,
				"actual":   len(d.bitWidths),
			})
	}

	d.currentMiniblock = 0

	return nil
}

func (d *DeltaBinaryPackDecoder[T]) nextMiniblock() error {
	if d.currentMiniblock >= d.miniblockCount {
		if err := d.readBlockHeader(); err != nil {
			return err
		}
	}

	// Widths of miniblocks past the last value are arbitrary, only the ones
	// holding values are checked.
	bw := int(d.bitWidths[d.currentMiniblock])
	if bw > deltaWidth[T]() {
		return errors.WithFields(
			errors.WithStack(errInvalidBitWidth),
			errors.Fields{
				"miniblock": d.currentMiniblock,
				"bit-width": bw,
			})
	}

	d.bitWidth = bw
	d.currentMiniblock++

	return nil
}

func (d *DeltaBinaryPackDecoder[T]) nextDelta() (uint64, error) {
	k := d.position - 1

	if k%d.miniblockValueCount == 0 {
		if err := d.nextMiniblock(); err != nil {
			return 0, err
		}
	}

	if k%8 == 0 {
		buf := d.buf[:d.bitWidth]
		if _, err := io.ReadFull(d.r, buf); err != nil {
			return 0, errors.WithFields(
				errors.Wrap(unexpectedEOF(err), "failed to read miniblock"),
				errors.Fields{
					"position": d.position,
				})
		}

		d.group = unpack8Uint64(buf, d.bitWidth)
	}

	return d.group[k%8], nil
}

// unexpectedEOF turns io.EOF into io.ErrUnexpectedEOF: the header announced
// more data.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}

	return err
}
