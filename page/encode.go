package page

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

// EncodeDictionary plain encodes the values of a dictionary page. values is a
// slice matching typ: []int32, []int64, []schema.Int96, []float32, []float64
// or [][]byte.
func EncodeDictionary(typ schema.PhysicalType, values interface{}) (*EncodedDictionaryPage, error) {
	var (
		buf []byte
		n   int
	)

	switch typ.Type {
	case parquet.Type_BOOLEAN:
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason": "boolean physical type cannot be dictionary-encoded",
			})

	case parquet.Type_INT32:
		v, ok := values.([]int32)
		if !ok {
			return nil, invalidValues(typ, values)
		}

		n = len(v)
		buf = make([]byte, 4*n)
		for i := range v {
			binary.LittleEndian.PutUint32(buf[4*i:], uint32(v[i]))
		}

	case parquet.Type_INT64:
		v, ok := values.([]int64)
		if !ok {
			return nil, invalidValues(typ, values)
		}

		n = len(v)
		buf = make([]byte, 8*n)
		for i := range v {
			binary.LittleEndian.PutUint64(buf[8*i:], uint64(v[i]))
		}

	case parquet.Type_INT96:
		v, ok := values.([]schema.Int96)
		if !ok {
			return nil, invalidValues(typ, values)
		}

		n = len(v)
		buf = make([]byte, 12*n)
		for i := range v {
			for j, w := range v[i] {
				binary.LittleEndian.PutUint32(buf[12*i+4*j:], w)
			}
		}

	case parquet.Type_FLOAT:
		v, ok := values.([]float32)
		if !ok {
			return nil, invalidValues(typ, values)
		}

		n = len(v)
		buf = make([]byte, 4*n)
		for i := range v {
			binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v[i]))
		}

	case parquet.Type_DOUBLE:
		v, ok := values.([]float64)
		if !ok {
			return nil, invalidValues(typ, values)
		}

		n = len(v)
		buf = make([]byte, 8*n)
		for i := range v {
			binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v[i]))
		}

	case parquet.Type_BYTE_ARRAY:
		v, ok := values.([][]byte)
		if !ok {
			return nil, invalidValues(typ, values)
		}

		n = len(v)
		for i := range v {
			var l [sizeLength]byte
			binary.LittleEndian.PutUint32(l[:], uint32(len(v[i])))
			buf = append(buf, l[:]...)
			buf = append(buf, v[i]...)
		}

	case parquet.Type_FIXED_LEN_BYTE_ARRAY:
		v, ok := values.([][]byte)
		if !ok {
			return nil, invalidValues(typ, values)
		}

		n = len(v)
		buf = make([]byte, 0, typ.Length*n)
		for i := range v {
			if len(v[i]) != typ.Length {
				return nil, errors.WithFields(
					errors.WithStack(parquet.ErrInvalidParameter),
					errors.Fields{
						"reason":   "byte array has invalid length",
						"index":    i,
						"expected": typ.Length,
						"actual":   len(v[i]),
					})
			}

			buf = append(buf, v[i]...)
		}

	default:
		return nil, invalidValues(typ, values)
	}

	return &EncodedDictionaryPage{
		Buffer:    buf,
		NumValues: n,
	}, nil
}

func invalidValues(typ schema.PhysicalType, values interface{}) error {
	actual := "nil"
	if values != nil {
		actual = reflect.TypeOf(values).String()
	}

	return errors.WithFields(
		errors.WithStack(parquet.ErrInvalidParameter),
		errors.Fields{
			"reason": "values do not match the physical type",
			"type":   typ.String(),
			"actual": actual,
		})
}
