// Package encoding implements the RLE / bit-packing hybrid encoding used for
// repetition levels, definition levels and dictionary indices.
package encoding

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	errNilReader       = errors.Error("reader is nil")
	errNilWriter       = errors.Error("writer is nil")
	errInvalidBitWidth = errors.Error("invalid bit-width")
	errOutOfRange      = errors.Error("out of range")
)

const maxBitWidth = 32

type Decoder interface {
	Init(io.Reader) error
	InitSize(io.Reader) error

	Next() (int32, error)
}

// BitWidth returns the number of bits needed to store values up to max.
func BitWidth(max int) int {
	w := 0
	for ; max != 0; max >>= 1 {
		w++
	}

	return w
}

// DecodeInt32 fills dst with the next len(dst) values of d.
func DecodeInt32(d Decoder, dst []int32) error {
	for i := range dst {
		v, err := d.Next()
		if err != nil {
			return errors.WithFields(
				errors.Wrap(err, "failed to decode value"),
				errors.Fields{
					"index":    i,
					"expected": len(dst),
				})
		}

		dst[i] = v
	}

	return nil
}
