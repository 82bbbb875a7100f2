package compression

import (
	"bytes"

	"github.com/hexbee-net/errors"
	"github.com/klauspost/compress/zstd"
)

// ZStd compresses blocks with zstandard. The zero value uses the default
// level.
type ZStd struct {
	Level zstd.EncoderLevel
}

func (c ZStd) CompressBlock(block []byte) ([]byte, error) {
	var opts []zstd.EOption
	if c.Level != 0 {
		opts = append(opts, zstd.WithEncoderLevel(c.Level))
	}

	w, err := zstd.NewWriter(nil, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ZSTD encoder")
	}
	defer func() { _ = w.Close() }()

	return w.EncodeAll(block, make([]byte, 0, len(block))), nil
}

func (c ZStd) DecompressBlock(dst, block []byte) (int, error) {
	r, err := zstd.NewReader(bytes.NewReader(block), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return 0, errors.Wrap(err, "failed to create ZSTD decoder")
	}
	defer r.Close()

	n, err := readBlock(dst, r)
	if err != nil {
		return n, errors.Wrap(err, "failed to decompress ZSTD data")
	}

	return n, nil
}
