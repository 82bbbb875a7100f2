package types

import (
	"encoding/binary"
	"io"
	"math"
	"reflect"

	"github.com/hexbee-net/errors"
)

// Fixed lists the physical types stored as little-endian words by PLAIN.
type Fixed interface {
	int32 | int64 | float32 | float64
}

type (
	Int32PlainEncoder  = FixedPlainEncoder[int32]
	Int64PlainEncoder  = FixedPlainEncoder[int64]
	FloatPlainEncoder  = FixedPlainEncoder[float32]
	DoublePlainEncoder = FixedPlainEncoder[float64]

	Int32PlainDecoder  = FixedPlainDecoder[int32]
	Int64PlainDecoder  = FixedPlainDecoder[int64]
	FloatPlainDecoder  = FixedPlainDecoder[float32]
	DoublePlainDecoder = FixedPlainDecoder[float64]
)

func fixedSize[T Fixed]() int {
	var v T

	switch any(v).(type) {
	case int32, float32:
		return 4
	default:
		return 8
	}
}

func appendFixed[T Fixed](buf []byte, v T) []byte {
	var word [8]byte

	switch x := any(v).(type) {
	case int32:
		binary.LittleEndian.PutUint32(word[:], uint32(x))
	case int64:
		binary.LittleEndian.PutUint64(word[:], uint64(x))
	case float32:
		binary.LittleEndian.PutUint32(word[:], math.Float32bits(x))
	case float64:
		binary.LittleEndian.PutUint64(word[:], math.Float64bits(x))
	}

	return append(buf, word[:fixedSize[T]()]...)
}

func readFixed[T Fixed](b []byte) T {
	var v T

	switch p := any(&v).(type) {
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(b))
	case *int64:
		*p = int64(binary.LittleEndian.Uint64(b))
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case *float64:
		*p = math.Float64frombits(binary.LittleEndian.Uint64(b))
	}

	return v
}

// Encoder /////////////////////////////

// FixedPlainEncoder writes values of type T one after the other.
type FixedPlainEncoder[T Fixed] struct {
	writer io.Writer
	buf    []byte
}

func (e *FixedPlainEncoder[T]) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer

	return nil
}

func (e *FixedPlainEncoder[T]) EncodeValues(values []interface{}) error {
	e.buf = e.buf[:0]

	for i := range values {
		v, ok := values[i].(T)
		if !ok {
			var zero T
			return invalidType(reflect.TypeOf(zero).String(), values[i])
		}

		e.buf = appendFixed(e.buf, v)
	}

	return writeFull(e.writer, e.buf)
}

func (e *FixedPlainEncoder[T]) Close() error {
	return nil
}

// Decoder /////////////////////////////

type FixedPlainDecoder[T Fixed] struct {
	reader io.Reader
	word   [8]byte
}

func (d *FixedPlainDecoder[T]) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

// DecodeValues fills dest. It returns io.EOF when the values run out before
// the end of dest, and io.ErrUnexpectedEOF on a truncated value.
func (d *FixedPlainDecoder[T]) DecodeValues(dest []interface{}) (int, error) {
	word := d.word[:fixedSize[T]()]

	for i := range dest {
		if _, err := io.ReadFull(d.reader, word); err != nil {
			return i, err
		}

		dest[i] = readFixed[T](word)
	}

	return len(dest), nil
}
