package layout

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/compression"
	"github.com/hexbee-net/parquet-pages/parquet"
)

// decompressBlock decompresses block into out, which must end up exactly
// full. Uncompressed blocks are copied.
func decompressBlock(codecs compression.Codecs, codec parquet.CompressionCodec, block, out []byte) error {
	if codec == parquet.CompressionCodec_UNCOMPRESSED {
		if len(block) != len(out) {
			return errors.WithFields(
				errors.WithStack(parquet.ErrCorruptData),
				errors.Fields{
					"reason":   "uncompressed block size does not match the declared size",
					"expected": len(out),
					"actual":   len(block),
				})
		}

		copy(out, block)

		return nil
	}

	return codecs.Decompress(codec, block, out)
}

// compressBlock compresses block, returning it as is when codec is
// UNCOMPRESSED.
func compressBlock(codecs compression.Codecs, codec parquet.CompressionCodec, block []byte) ([]byte, error) {
	if codec == parquet.CompressionCodec_UNCOMPRESSED {
		return block, nil
	}

	return codecs.Compress(codec, block)
}
