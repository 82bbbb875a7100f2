//go:build gofuzz
// +build gofuzz

package page

import (
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

func FuzzBinaryDictionary(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	p := &EncodedDictionaryPage{
		Buffer:    data[1:],
		NumValues: int(data[0]),
	}

	dict, err := ReadDictionaryPage(p, parquet.CompressionCodec_UNCOMPRESSED, len(p.Buffer), false, schema.ByteArray)
	if err != nil {
		return 0
	}

	for i := 0; i < dict.NumValues(); i++ {
		if _, err := dict.Lookup(i); err != nil {
			panic(err)
		}
	}

	return 1
}

func FuzzSnappyDictionary(data []byte) int {
	if len(data) < 2 {
		return 0
	}

	p := &CompressedDictionaryPage{
		Buffer:               data[2:],
		Compression:          parquet.CompressionCodec_SNAPPY,
		UncompressedPageSize: 4 * int(data[0]),
		NumValues:            int(data[1]),
	}

	if _, err := DecodeCompressedDictionaryPage(p, schema.Int32); err != nil {
		return 0
	}

	return 1
}
