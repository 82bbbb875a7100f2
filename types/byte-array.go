package types

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
)

// Encoder /////////////////////////////

type ByteArrayPlainEncoder struct {
	writer io.Writer

	// Length is set for fixed length byte arrays.
	Length int
}

func (e *ByteArrayPlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer

	return nil
}

func (e *ByteArrayPlainEncoder) EncodeValues(values []interface{}) error {
	for i := range values {
		data, ok := values[i].([]byte)
		if !ok {
			return invalidType("[]byte", values[i])
		}

		if err := e.writeBytes(data); err != nil {
			return err
		}
	}

	return nil
}

func (e *ByteArrayPlainEncoder) Close() error {
	return nil
}

func (e *ByteArrayPlainEncoder) writeBytes(data []byte) error {
	l := e.Length

	if l == 0 { // variable length
		l32 := int32(len(data))

		if err := binary.Write(e.writer, binary.LittleEndian, l32); err != nil {
			return err
		}
	} else if len(data) != l {
		return errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason":   "byte array has invalid length",
				"expected": l,
				"actual":   len(data),
			})
	}

	return writeFull(e.writer, data)
}

// Decoder /////////////////////////////

type ByteArrayPlainDecoder struct {
	reader io.Reader

	// if the length is set, then this is a fix size array decoder, unless it reads the len first
	Length int
}

func (d *ByteArrayPlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

func (d *ByteArrayPlainDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	for i := range dest {
		if dest[i], err = d.next(); err != nil {
			return i, err
		}
	}

	return len(dest), nil
}

func (d *ByteArrayPlainDecoder) next() ([]byte, error) {
	var l = int32(d.Length)
	if l == 0 {
		if err := binary.Read(d.reader, binary.LittleEndian, &l); err != nil {
			return nil, err
		}

		if l < 0 {
			return nil, errors.WithFields(
				errors.WithStack(parquet.ErrCorruptData),
				errors.Fields{
					"reason": "negative byte array length",
					"length": l,
				})
		}
	}

	buf := make([]byte, l)

	_, err := io.ReadFull(d.reader, buf)
	if err != nil {
		return nil, err
	}

	return buf, nil
}
