package compression

import (
	"bytes"

	"github.com/hexbee-net/errors"
	"github.com/klauspost/compress/gzip"
)

// GZip compresses blocks with gzip. The zero value uses the default level.
type GZip struct {
	Level int
}

func (c GZip) CompressBlock(block []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}

	buf := &bytes.Buffer{}

	w, err := gzip.NewWriterLevel(buf, level)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "invalid GZIP level"),
			errors.Fields{
				"level": c.Level,
			})
	}

	if _, err := w.Write(block); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (c GZip) DecompressBlock(dst, block []byte) (int, error) {
	r, err := gzip.NewReader(bytes.NewReader(block))
	if err != nil {
		return 0, errors.Wrap(err, "invalid GZIP header")
	}

	n, err := readBlock(dst, r)
	if err != nil {
		return n, errors.Wrap(err, "failed to decompress GZIP data")
	}

	return n, r.Close()
}
