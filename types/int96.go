package types

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/schema"
)

const sizeInt96 = 12

// Encoder /////////////////////////////

type Int96PlainEncoder struct {
	writer io.Writer
}

func (e *Int96PlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer

	return nil
}

func (e *Int96PlainEncoder) EncodeValues(values []interface{}) error {
	data := make([]byte, len(values)*sizeInt96)

	for j := range values {
		i96, ok := values[j].(schema.Int96)
		if !ok {
			return invalidType("schema.Int96", values[j])
		}

		for k, w := range i96 {
			binary.LittleEndian.PutUint32(data[j*sizeInt96+k*4:], w)
		}
	}

	return writeFull(e.writer, data)
}

func (e *Int96PlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type Int96PlainDecoder struct {
	reader io.Reader
}

func (d *Int96PlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

func (d *Int96PlainDecoder) DecodeValues(dest []interface{}) (int, error) {
	var data [sizeInt96]byte

	for i := range dest {
		if _, err := io.ReadFull(d.reader, data[:]); err != nil {
			if err == io.ErrUnexpectedEOF {
				return i, errors.Wrap(err, "not enough byte to read the Int96")
			}

			return i, err
		}

		dest[i] = schema.Int96{
			binary.LittleEndian.Uint32(data[0:]),
			binary.LittleEndian.Uint32(data[4:]),
			binary.LittleEndian.Uint32(data[8:]),
		}
	}

	return len(dest), nil
}
