package page

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/compression"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

// EncodedDictionaryPage is a plain encoded, uncompressed dictionary page body.
type EncodedDictionaryPage struct {
	Buffer    []byte
	NumValues int
}

// CompressedDictionaryPage is a dictionary page as stored in a column chunk.
type CompressedDictionaryPage struct {
	Buffer               []byte
	Compression          parquet.CompressionCodec
	UncompressedPageSize int
	NumValues            int
	IsSorted             bool
}

// PageHeader returns the header describing the page.
func (p *CompressedDictionaryPage) PageHeader() *parquet.PageHeader {
	return &parquet.PageHeader{
		Type:                 parquet.PageType_DICTIONARY_PAGE,
		UncompressedPageSize: int32(p.UncompressedPageSize),
		CompressedPageSize:   int32(len(p.Buffer)),
		DictionaryPageHeader: &parquet.DictionaryPageHeader{
			NumValues: int32(p.NumValues),
			Encoding:  parquet.Encoding_PLAIN,
			IsSorted:  parquet.BoolPtr(p.IsSorted),
		},
	}
}

func (p *CompressedDictionaryPage) isCompressedPage() {}

// DictionaryPage is a decoded dictionary. It is read-only once decoded and
// shared by every data page of its column chunk.
//
// The implementations are *PrimitiveDictionary[T], *BinaryDictionary and
// *FixedLenBinaryDictionary.
type DictionaryPage interface {
	PhysicalType() schema.PhysicalType
	NumValues() int
	IsSorted() bool
	// Lookup returns the i-th value of the dictionary.
	Lookup(i int) (interface{}, error)

	isDictionaryPage()
}

// Primitive lists the value types of fixed width dictionaries.
type Primitive interface {
	int32 | int64 | schema.Int96 | float32 | float64
}

// PrimitiveDictionary holds fixed width numeric values.
type PrimitiveDictionary[T Primitive] struct {
	typ      schema.PhysicalType
	values   []T
	isSorted bool
}

func (d *PrimitiveDictionary[T]) PhysicalType() schema.PhysicalType { return d.typ }

func (d *PrimitiveDictionary[T]) NumValues() int { return len(d.values) }

func (d *PrimitiveDictionary[T]) IsSorted() bool { return d.isSorted }

// Values returns the decoded values. The slice must not be modified.
func (d *PrimitiveDictionary[T]) Values() []T { return d.values }

// Value returns the i-th value.
func (d *PrimitiveDictionary[T]) Value(i int) T { return d.values[i] }

func (d *PrimitiveDictionary[T]) Lookup(i int) (interface{}, error) {
	if i < 0 || i >= len(d.values) {
		return nil, indexOutOfRange(i, len(d.values))
	}

	return d.values[i], nil
}

func (d *PrimitiveDictionary[T]) isDictionaryPage() {}

// BinaryDictionary holds variable length byte arrays in a single buffer.
type BinaryDictionary struct {
	values   []byte
	offsets  []int
	isSorted bool
}

func (d *BinaryDictionary) PhysicalType() schema.PhysicalType { return schema.ByteArray }

func (d *BinaryDictionary) NumValues() int { return len(d.offsets) - 1 }

func (d *BinaryDictionary) IsSorted() bool { return d.isSorted }

// Value returns the i-th value. The slice must not be modified.
func (d *BinaryDictionary) Value(i int) []byte {
	return d.values[d.offsets[i]:d.offsets[i+1]:d.offsets[i+1]]
}

func (d *BinaryDictionary) Lookup(i int) (interface{}, error) {
	if i < 0 || i >= d.NumValues() {
		return nil, indexOutOfRange(i, d.NumValues())
	}

	return d.Value(i), nil
}

func (d *BinaryDictionary) isDictionaryPage() {}

// FixedLenBinaryDictionary holds byte arrays of a fixed size.
type FixedLenBinaryDictionary struct {
	values   []byte
	size     int
	isSorted bool
}

func (d *FixedLenBinaryDictionary) PhysicalType() schema.PhysicalType {
	return schema.FixedLenByteArray(d.size)
}

func (d *FixedLenBinaryDictionary) NumValues() int { return len(d.values) / d.size }

func (d *FixedLenBinaryDictionary) IsSorted() bool { return d.isSorted }

// Size returns the length of every value.
func (d *FixedLenBinaryDictionary) Size() int { return d.size }

// Value returns the i-th value. The slice must not be modified.
func (d *FixedLenBinaryDictionary) Value(i int) []byte {
	return d.values[i*d.size : (i+1)*d.size : (i+1)*d.size]
}

func (d *FixedLenBinaryDictionary) Lookup(i int) (interface{}, error) {
	if i < 0 || i >= d.NumValues() {
		return nil, indexOutOfRange(i, d.NumValues())
	}

	return d.Value(i), nil
}

func (d *FixedLenBinaryDictionary) isDictionaryPage() {}

// /////////////////////////////////////////////////////////////////////////////

// ReadDictionaryPage decompresses (unless codec is UNCOMPRESSED) and decodes a
// dictionary page. uncompressedSize is the size of the decompressed body.
func ReadDictionaryPage(
	p *EncodedDictionaryPage,
	codec parquet.CompressionCodec,
	uncompressedSize int,
	isSorted bool,
	typ schema.PhysicalType,
) (DictionaryPage, error) {
	if codec == parquet.CompressionCodec_UNCOMPRESSED {
		return decodeDictionary(p.Buffer, p.NumValues, isSorted, typ)
	}

	if uncompressedSize < 0 {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":            "negative uncompressed size",
				"uncompressed-size": uncompressedSize,
			})
	}

	decompressed := make([]byte, uncompressedSize)
	if err := compression.Decompress(codec, p.Buffer, decompressed); err != nil {
		return nil, errors.Wrap(err, "failed to decompress dictionary page")
	}

	return decodeDictionary(decompressed, p.NumValues, isSorted, typ)
}

// DecodeCompressedDictionaryPage decodes a dictionary page as read from a
// column chunk.
func DecodeCompressedDictionaryPage(p *CompressedDictionaryPage, typ schema.PhysicalType) (DictionaryPage, error) {
	encoded := &EncodedDictionaryPage{
		Buffer:    p.Buffer,
		NumValues: p.NumValues,
	}

	return ReadDictionaryPage(encoded, p.Compression, p.UncompressedPageSize, p.IsSorted, typ)
}

func decodeDictionary(buf []byte, numValues int, isSorted bool, typ schema.PhysicalType) (DictionaryPage, error) {
	if numValues < 0 {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":     "negative number of values",
				"num-values": numValues,
			})
	}

	switch typ.Type {
	case parquet.Type_BOOLEAN:
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason": "boolean physical type cannot be dictionary-encoded",
			})
	case parquet.Type_INT32:
		return readPrimitive(buf, numValues, isSorted, typ, decodeInt32)
	case parquet.Type_INT64:
		return readPrimitive(buf, numValues, isSorted, typ, decodeInt64)
	case parquet.Type_INT96:
		return readPrimitive(buf, numValues, isSorted, typ, decodeInt96)
	case parquet.Type_FLOAT:
		return readPrimitive(buf, numValues, isSorted, typ, decodeFloat)
	case parquet.Type_DOUBLE:
		return readPrimitive(buf, numValues, isSorted, typ, decodeDouble)
	case parquet.Type_BYTE_ARRAY:
		return readBinary(buf, numValues, isSorted)
	case parquet.Type_FIXED_LEN_BYTE_ARRAY:
		return readFixedLenBinary(buf, typ.Length, numValues, isSorted)
	}

	return nil, errors.WithFields(
		errors.WithStack(parquet.ErrOutOfSpec),
		errors.Fields{
			"reason": "unknown physical type",
			"type":   typ.String(),
		})
}

func readPrimitive[T Primitive](
	buf []byte,
	numValues int,
	isSorted bool,
	typ schema.PhysicalType,
	decode func([]byte) T,
) (*PrimitiveDictionary[T], error) {
	width := typ.Size()

	if len(buf) != numValues*width {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":     "dictionary buffer size does not match the number of values",
				"type":       typ.String(),
				"num-values": numValues,
				"expected":   numValues * width,
				"actual":     len(buf),
			})
	}

	values := make([]T, numValues)
	for i := range values {
		values[i] = decode(buf[i*width:])
	}

	return &PrimitiveDictionary[T]{
		typ:      typ,
		values:   values,
		isSorted: isSorted,
	}, nil
}

func readBinary(buf []byte, numValues int, isSorted bool) (*BinaryDictionary, error) {
	if numValues > len(buf)/sizeLength {
		return nil, binaryOverrun(len(buf)/sizeLength, len(buf), len(buf))
	}

	d := &BinaryDictionary{
		values:   make([]byte, 0, len(buf)),
		offsets:  make([]int, 1, numValues+1),
		isSorted: isSorted,
	}

	pos := 0

	for i := 0; i < numValues; i++ {
		if len(buf)-pos < sizeLength {
			return nil, binaryOverrun(i, pos, len(buf))
		}

		l := int(decodeLength(buf[pos:]))
		pos += sizeLength

		if l < 0 || l > len(buf)-pos {
			return nil, binaryOverrun(i, pos, len(buf))
		}

		d.values = append(d.values, buf[pos:pos+l]...)
		d.offsets = append(d.offsets, len(d.values))
		pos += l
	}

	if pos != len(buf) {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":   "trailing bytes after the dictionary values",
				"expected": pos,
				"actual":   len(buf),
			})
	}

	return d, nil
}

func readFixedLenBinary(buf []byte, size, numValues int, isSorted bool) (*FixedLenBinaryDictionary, error) {
	if size <= 0 {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "fixed length byte array without length",
				"size":   size,
			})
	}

	if len(buf) != size*numValues {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":     "dictionary buffer size does not match the number of values",
				"num-values": numValues,
				"expected":   size * numValues,
				"actual":     len(buf),
			})
	}

	values := make([]byte, len(buf))
	copy(values, buf)

	return &FixedLenBinaryDictionary{
		values:   values,
		size:     size,
		isSorted: isSorted,
	}, nil
}

func binaryOverrun(index, pos, size int) error {
	return errors.WithFields(
		errors.WithStack(parquet.ErrCorruptData),
		errors.Fields{
			"reason":   "byte array value overruns the dictionary buffer",
			"index":    index,
			"position": pos,
			"size":     size,
		})
}

func indexOutOfRange(i, numValues int) error {
	return errors.WithFields(
		errors.WithStack(parquet.ErrCorruptData),
		errors.Fields{
			"reason":     "dictionary index out of range",
			"index":      i,
			"num-values": numValues,
		})
}
