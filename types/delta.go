package types

import (
	"io"
	"reflect"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/encoding"
)

// Blocks of 128 deltas in 4 miniblocks of 32, as parquet-mr writes them.
const (
	deltaBlockSize      = 128
	deltaMiniblockCount = 4
)

type (
	Int32DeltaEncoder = DeltaEncoder[int32]
	Int64DeltaEncoder = DeltaEncoder[int64]

	Int32DeltaDecoder = DeltaDecoder[int32]
	Int64DeltaDecoder = DeltaDecoder[int64]
)

// Encoding_DELTA_BINARY_PACKED ////////////////////////////////////////////////

// Encoder /////////////////////////////

type DeltaEncoder[T encoding.DeltaInt] struct {
	encoder *encoding.DeltaBinaryPackEncoder[T]
}

func (e *DeltaEncoder[T]) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	if e.encoder == nil {
		e.encoder = encoding.NewDeltaBinaryPackEncoder[T](deltaBlockSize, deltaMiniblockCount)
	}

	return e.encoder.Init(writer)
}

func (e *DeltaEncoder[T]) EncodeValues(values []interface{}) error {
	for i := range values {
		v, ok := values[i].(T)
		if !ok {
			var zero T
			return invalidType(reflect.TypeOf(zero).String(), values[i])
		}

		e.encoder.Add(v)
	}

	return nil
}

// Close writes the buffered stream.
func (e *DeltaEncoder[T]) Close() error {
	return e.encoder.Close()
}

// Decoder /////////////////////////////

type DeltaDecoder[T encoding.DeltaInt] struct {
	decoder encoding.DeltaBinaryPackDecoder[T]
}

func (d *DeltaDecoder[T]) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	return d.decoder.Init(reader)
}

func (d *DeltaDecoder[T]) DecodeValues(dest []interface{}) (int, error) {
	for i := range dest {
		v, err := d.decoder.Next()
		if err != nil {
			return i, err
		}

		dest[i] = v
	}

	return len(dest), nil
}
