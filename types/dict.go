package types

import (
	"bytes"
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/encoding"
	"github.com/hexbee-net/parquet-pages/page"
	"github.com/hexbee-net/parquet-pages/parquet"
)

// Encoding_RLE_DICTIONARY /////////////////////////////////////////////////////

// Encoder /////////////////////////////

// DictEncoder writes dictionary indices: one byte holding the bit width, then
// the indices in the RLE/bit-packing hybrid encoding.
type DictEncoder struct {
	writer   io.Writer
	maxIndex int
	indices  []int32
}

// NewDictEncoder creates an encoder for indices into a dictionary of size values.
func NewDictEncoder(size int) *DictEncoder {
	return &DictEncoder{maxIndex: size - 1}
}

func (e *DictEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer
	e.indices = e.indices[:0]

	return nil
}

// EncodeValues appends indices, given as int32 values.
func (e *DictEncoder) EncodeValues(values []interface{}) error {
	for i := range values {
		v, ok := values[i].(int32)
		if !ok {
			return invalidType("int32", values[i])
		}

		if v < 0 || int(v) > e.maxIndex {
			return errors.WithFields(
				errors.WithStack(parquet.ErrInvalidParameter),
				errors.Fields{
					"reason":          "dictionary index out of range",
					"index":           v,
					"dictionary-size": e.maxIndex + 1,
				})
		}

		e.indices = append(e.indices, v)
	}

	return nil
}

func (e *DictEncoder) Close() error {
	bitWidth := 0
	if e.maxIndex > 0 {
		bitWidth = encoding.BitWidth(e.maxIndex)
	}

	enc, err := encoding.NewHybridEncoder(bitWidth)
	if err != nil {
		return err
	}

	if err := enc.Encode(e.indices); err != nil {
		return err
	}

	if err := writeFull(e.writer, []byte{byte(bitWidth)}); err != nil {
		return err
	}

	return enc.Write(e.writer)
}

// Decoder /////////////////////////////

// DictDecoder resolves dictionary indices against a decoded dictionary page.
type DictDecoder struct {
	Dictionary page.DictionaryPage

	decoder *encoding.HybridDecoder
}

func (d *DictDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	if d.Dictionary == nil {
		return errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason": "dictionary-encoded page without a dictionary page",
			})
	}

	buf := make([]byte, 1)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return errors.Wrap(err, "failed to read the bit width of the dictionary indices")
	}

	d.decoder = encoding.NewHybridDecoder(int(buf[0]), false)

	return d.decoder.Init(reader)
}

func (d *DictDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	for i := range dest {
		idx, err := d.decoder.Next()
		if err != nil {
			return i, err
		}

		v, err := d.Dictionary.Lookup(int(idx))
		if err != nil {
			return i, err
		}

		dest[i] = v
	}

	return len(dest), nil
}

// EncodeDictIndices is a shortcut for a DictEncoder writing to memory.
func EncodeDictIndices(size int, indices []int32) ([]byte, error) {
	buf := &bytes.Buffer{}

	e := NewDictEncoder(size)
	if err := e.Init(buf); err != nil {
		return nil, err
	}

	values := make([]interface{}, len(indices))
	for i := range indices {
		values[i] = indices[i]
	}

	if err := e.EncodeValues(values); err != nil {
		return nil, err
	}

	if err := e.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
