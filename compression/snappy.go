package compression

import (
	"github.com/golang/snappy"
)

type Snappy struct {
}

func (c Snappy) CompressBlock(block []byte) ([]byte, error) {
	return snappy.Encode(nil, block), nil
}

func (c Snappy) DecompressBlock(dst, block []byte) (int, error) {
	size, err := snappy.DecodedLen(block)
	if err != nil {
		return 0, err
	}

	if size > len(dst) {
		return 0, overflowError(len(dst))
	}

	out, err := snappy.Decode(dst, block)
	if err != nil {
		return 0, err
	}

	return len(out), nil
}
