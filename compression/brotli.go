package compression

import (
	"bytes"

	"github.com/andybalholm/brotli"
	"github.com/hexbee-net/errors"
)

// Brotli compresses blocks with brotli. The zero value uses the default
// quality.
type Brotli struct {
	Quality int
}

func (c Brotli) CompressBlock(block []byte) ([]byte, error) {
	quality := c.Quality
	if quality == 0 {
		quality = brotli.DefaultCompression
	}

	buf := &bytes.Buffer{}
	w := brotli.NewWriterLevel(buf, quality)

	if _, err := w.Write(block); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (c Brotli) DecompressBlock(dst, block []byte) (int, error) {
	n, err := readBlock(dst, brotli.NewReader(bytes.NewReader(block)))
	if err != nil {
		return n, errors.Wrap(err, "failed to decompress Brotli data")
	}

	return n, nil
}
