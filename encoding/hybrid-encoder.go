package encoding

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"
)

const (
	rleBufSize = 8
	// A bit-packed run header must fit on one byte.
	maxBitPackedGroups = 63
)

// HybridEncoder writes values with the RLE / bit-packing hybrid encoding.
// Runs of at least 8 repeated values are RLE encoded, everything else is
// bit-packed by groups of 8.
type HybridEncoder struct {
	bitWidth int
	packerFn pack8int32Func

	buf []byte

	bufferedValues    [rleBufSize]int32
	numBufferedValues int

	previousValue int32
	repeatCount   int

	bitPackedGroupCount       int
	bitPackedRunHeaderPointer int
}

func NewHybridEncoder(bitWidth int) (*HybridEncoder, error) {
	if bitWidth < 0 || bitWidth > maxBitWidth {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidBitWidth),
			errors.Fields{
				"bit-width": bitWidth,
			})
	}

	e := &HybridEncoder{
		bitWidth: bitWidth,
		packerFn: pack8Int32FuncByWidth[bitWidth],
	}
	e.Reset()

	return e, nil
}

// Reset clears the encoder so it can be reused.
func (e *HybridEncoder) Reset() {
	e.buf = e.buf[:0]
	e.numBufferedValues = 0
	e.previousValue = 0
	e.repeatCount = 0
	e.bitPackedGroupCount = 0
	e.bitPackedRunHeaderPointer = -1
}

// AppendSingle adds a value to the stream.
func (e *HybridEncoder) AppendSingle(v int32) error {
	if e.bitWidth < maxBitWidth && uint32(v)>>uint(e.bitWidth) != 0 {
		return errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"value":     v,
				"bit-width": e.bitWidth,
			})
	}

	if v == e.previousValue {
		e.repeatCount++
		if e.repeatCount >= rleBufSize {
			// The value is accounted for in the current RLE run.
			return nil
		}
	} else {
		if e.repeatCount >= rleBufSize {
			e.writeRLERun()
		}

		e.repeatCount = 1
		e.previousValue = v
	}

	e.bufferedValues[e.numBufferedValues] = v
	e.numBufferedValues++

	if e.numBufferedValues == rleBufSize {
		e.writeOrAppendBitPackedRun()
	}

	return nil
}

// Encode appends all the values of data.
func (e *HybridEncoder) Encode(data []int32) error {
	for i := range data {
		if err := e.AppendSingle(data[i]); err != nil {
			return err
		}
	}

	return nil
}

// Bytes terminates the pending run and returns the encoded stream.
func (e *HybridEncoder) Bytes() []byte {
	switch {
	case e.repeatCount >= rleBufSize:
		e.writeRLERun()
	case e.numBufferedValues > 0:
		for i := e.numBufferedValues; i < rleBufSize; i++ {
			e.bufferedValues[i] = 0
		}

		e.numBufferedValues = rleBufSize
		e.writeOrAppendBitPackedRun()
		e.endPreviousBitPackedRun()
	default:
		e.endPreviousBitPackedRun()
	}

	return e.buf
}

// Write terminates the pending run and writes the encoded stream to w.
func (e *HybridEncoder) Write(w io.Writer) error {
	return writeFull(w, e.Bytes())
}

// WriteSize is like Write, with the 4 bytes little-endian length prefix of
// V1 data page levels.
func (e *HybridEncoder) WriteSize(w io.Writer) error {
	data := e.Bytes()

	if err := binary.Write(w, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}

	return writeFull(w, data)
}

func (e *HybridEncoder) writeOrAppendBitPackedRun() {
	if e.bitPackedGroupCount >= maxBitPackedGroups {
		e.endPreviousBitPackedRun()
	}

	if e.bitPackedRunHeaderPointer == -1 {
		// Reserve the header byte, it is set when the run ends.
		e.buf = append(e.buf, 0)
		e.bitPackedRunHeaderPointer = len(e.buf) - 1
	}

	e.buf = append(e.buf, e.packerFn(e.bufferedValues)...)

	e.numBufferedValues = 0
	e.repeatCount = 0
	e.bitPackedGroupCount++
}

func (e *HybridEncoder) endPreviousBitPackedRun() {
	if e.bitPackedRunHeaderPointer == -1 {
		return
	}

	e.buf[e.bitPackedRunHeaderPointer] = byte((e.bitPackedGroupCount << 1) | 1)
	e.bitPackedRunHeaderPointer = -1
	e.bitPackedGroupCount = 0
}

func (e *HybridEncoder) writeRLERun() {
	e.endPreviousBitPackedRun()

	e.buf = appendUVarInt(e.buf, uint64(e.repeatCount)<<1)

	v := uint32(e.previousValue)
	for i := 0; i < (e.bitWidth+7)/8; i++ {
		e.buf = append(e.buf, byte(v))
		v >>= 8
	}

	e.repeatCount = 0
	e.numBufferedValues = 0
}
