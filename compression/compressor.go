// Package compression wraps the block codecs used by column chunks.
package compression

import (
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
)

// ErrUnsupportedCodec is returned for codecs without a registered BlockCompressor.
const ErrUnsupportedCodec = errors.Error("unsupported compression codec")

// BlockCompressor compresses and decompresses whole page bodies.
type BlockCompressor interface {
	CompressBlock(block []byte) ([]byte, error)
	// DecompressBlock decompresses block into dst and returns the number of
	// bytes written. It fails if the decompressed data does not fit in dst.
	DecompressBlock(dst, block []byte) (int, error)
}

// Codecs maps the codecs of a column chunk to their implementation.
type Codecs map[parquet.CompressionCodec]BlockCompressor

// DefaultCodecs returns a registry with every codec this package implements.
func DefaultCodecs() Codecs {
	return Codecs{
		parquet.CompressionCodec_UNCOMPRESSED: Uncompressed{},
		parquet.CompressionCodec_SNAPPY:       Snappy{},
		parquet.CompressionCodec_GZIP:         GZip{},
		parquet.CompressionCodec_BROTLI:       Brotli{},
		parquet.CompressionCodec_LZ4:          LZ4{},
		parquet.CompressionCodec_ZSTD:         ZStd{},
	}
}

// Get returns the compressor registered for codec.
func (c Codecs) Get(codec parquet.CompressionCodec) (BlockCompressor, error) {
	bc, ok := c[codec]
	if !ok {
		return nil, errors.WithFields(
			errors.WithStack(ErrUnsupportedCodec),
			errors.Fields{
				"codec": codec.String(),
			})
	}

	return bc, nil
}

// Compress compresses block with codec.
func (c Codecs) Compress(codec parquet.CompressionCodec, block []byte) ([]byte, error) {
	bc, err := c.Get(codec)
	if err != nil {
		return nil, err
	}

	out, err := bc.CompressBlock(block)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compress %s block", codec)
	}

	return out, nil
}

// Decompress decompresses block into out. The decompressed size must be
// exactly len(out).
func (c Codecs) Decompress(codec parquet.CompressionCodec, block, out []byte) error {
	bc, err := c.Get(codec)
	if err != nil {
		return err
	}

	n, err := bc.DecompressBlock(out, block)
	if err != nil {
		if errors.Cause(err) == parquet.ErrCorruptData {
			return err
		}

		return errors.WithFields(
			errors.Wrapf(err, "failed to decompress %s block", codec),
			errors.Fields{
				"size": len(block),
			})
	}

	if n != len(out) {
		return errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"codec":    codec.String(),
				"expected": len(out),
				"actual":   n,
			})
	}

	return nil
}

var defaultCodecs = DefaultCodecs()

// Compress compresses block with the default codecs.
func Compress(codec parquet.CompressionCodec, block []byte) ([]byte, error) {
	return defaultCodecs.Compress(codec, block)
}

// Decompress decompresses block into out with the default codecs.
func Decompress(codec parquet.CompressionCodec, block, out []byte) error {
	return defaultCodecs.Decompress(codec, block, out)
}

// /////////////////////////////////////////////////////////////////////////////

// readBlock fills dst from a decompressing reader and makes sure the stream
// has nothing left past len(dst).
func readBlock(dst []byte, r io.Reader) (int, error) {
	n, err := io.ReadFull(r, dst)

	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		return n, nil
	default:
		return n, err
	}

	extra, err := io.Copy(io.Discard, io.LimitReader(r, 1))
	if err != nil {
		return n, err
	}

	if extra > 0 {
		return n, overflowError(len(dst))
	}

	return n, nil
}

func overflowError(size int) error {
	return errors.WithFields(
		errors.WithStack(parquet.ErrCorruptData),
		errors.Fields{
			"reason":   "decompressed data exceeds the declared size",
			"expected": size,
		})
}
