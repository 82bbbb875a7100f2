package compression

import (
	"bytes"

	"github.com/hexbee-net/errors"
	"github.com/pierrec/lz4"
)

// LZ4 compresses blocks with the LZ4 frame format. The zero value uses the
// fast compressor.
type LZ4 struct {
	Level int
}

func (c LZ4) CompressBlock(block []byte) ([]byte, error) {
	buf := &bytes.Buffer{}

	w := lz4.NewWriter(buf)
	w.Header.CompressionLevel = c.Level

	if _, err := w.Write(block); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (c LZ4) DecompressBlock(dst, block []byte) (int, error) {
	n, err := readBlock(dst, lz4.NewReader(bytes.NewReader(block)))
	if err != nil {
		return n, errors.Wrap(err, "failed to decompress LZ4 data")
	}

	return n, nil
}
