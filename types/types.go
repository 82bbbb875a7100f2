// Package types holds the value encoders and decoders of each physical type.
package types

import (
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

// ErrUnsupportedEncoding is returned for valid encodings without a decoder or
// encoder for the physical type.
const ErrUnsupportedEncoding = errors.Error("unsupported encoding")

const (
	errInvalidType = errors.Error("invalid type")
	errNilWriter   = errors.Error("writer is nil")
	errNilReader   = errors.Error("reader is nil")
)

type ValuesEncoder interface {
	io.Closer

	Init(io.Writer) error
	EncodeValues(values []interface{}) error
}

type ValuesDecoder interface {
	Init(io.Reader) error

	// the error io.EOF with the less value is acceptable, any other error is not
	DecodeValues(dest []interface{}) (count int, err error)
}

// NewValuesDecoder returns a decoder for values of typ stored with enc.
// Dictionary encodings are handled by DictDecoder.
func NewValuesDecoder(typ schema.PhysicalType, enc parquet.Encoding) (ValuesDecoder, error) {
	switch enc {
	case parquet.Encoding_PLAIN:
		return PlainDecoder(typ)
	case parquet.Encoding_RLE:
		if typ.Type == parquet.Type_BOOLEAN {
			return &BooleanRLEDecoder{}, nil
		}
	case parquet.Encoding_DELTA_BINARY_PACKED:
		switch typ.Type {
		case parquet.Type_INT32:
			return &Int32DeltaDecoder{}, nil
		case parquet.Type_INT64:
			return &Int64DeltaDecoder{}, nil
		}
	}

	return nil, unsupported(typ, enc)
}

// NewValuesEncoder returns an encoder for values of typ stored with enc.
func NewValuesEncoder(typ schema.PhysicalType, enc parquet.Encoding) (ValuesEncoder, error) {
	switch enc {
	case parquet.Encoding_PLAIN:
		return PlainEncoder(typ)
	case parquet.Encoding_RLE:
		if typ.Type == parquet.Type_BOOLEAN {
			return &BooleanRLEEncoder{}, nil
		}
	case parquet.Encoding_DELTA_BINARY_PACKED:
		switch typ.Type {
		case parquet.Type_INT32:
			return &Int32DeltaEncoder{}, nil
		case parquet.Type_INT64:
			return &Int64DeltaEncoder{}, nil
		}
	}

	return nil, unsupported(typ, enc)
}

// PlainDecoder returns the PLAIN decoder of typ.
func PlainDecoder(typ schema.PhysicalType) (ValuesDecoder, error) {
	switch typ.Type {
	case parquet.Type_BOOLEAN:
		return &BooleanPlainDecoder{}, nil
	case parquet.Type_INT32:
		return &Int32PlainDecoder{}, nil
	case parquet.Type_INT64:
		return &Int64PlainDecoder{}, nil
	case parquet.Type_INT96:
		return &Int96PlainDecoder{}, nil
	case parquet.Type_FLOAT:
		return &FloatPlainDecoder{}, nil
	case parquet.Type_DOUBLE:
		return &DoublePlainDecoder{}, nil
	case parquet.Type_BYTE_ARRAY:
		return &ByteArrayPlainDecoder{}, nil
	case parquet.Type_FIXED_LEN_BYTE_ARRAY:
		if typ.Length <= 0 {
			return nil, invalidLength(typ)
		}

		return &ByteArrayPlainDecoder{Length: typ.Length}, nil
	}

	return nil, unsupported(typ, parquet.Encoding_PLAIN)
}

// PlainEncoder returns the PLAIN encoder of typ.
func PlainEncoder(typ schema.PhysicalType) (ValuesEncoder, error) {
	switch typ.Type {
	case parquet.Type_BOOLEAN:
		return &BooleanPlainEncoder{}, nil
	case parquet.Type_INT32:
		return &Int32PlainEncoder{}, nil
	case parquet.Type_INT64:
		return &Int64PlainEncoder{}, nil
	case parquet.Type_INT96:
		return &Int96PlainEncoder{}, nil
	case parquet.Type_FLOAT:
		return &FloatPlainEncoder{}, nil
	case parquet.Type_DOUBLE:
		return &DoublePlainEncoder{}, nil
	case parquet.Type_BYTE_ARRAY:
		return &ByteArrayPlainEncoder{}, nil
	case parquet.Type_FIXED_LEN_BYTE_ARRAY:
		if typ.Length <= 0 {
			return nil, invalidLength(typ)
		}

		return &ByteArrayPlainEncoder{Length: typ.Length}, nil
	}

	return nil, unsupported(typ, parquet.Encoding_PLAIN)
}

func unsupported(typ schema.PhysicalType, enc parquet.Encoding) error {
	return errors.WithFields(
		errors.WithStack(ErrUnsupportedEncoding),
		errors.Fields{
			"type":     typ.String(),
			"encoding": enc.String(),
		})
}

func invalidLength(typ schema.PhysicalType) error {
	return errors.WithFields(
		errors.WithStack(parquet.ErrInvalidParameter),
		errors.Fields{
			"reason": "fixed length byte array without length",
			"type":   typ.String(),
		})
}
