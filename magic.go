package parquet

import (
	"bytes"
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
)

const (
	magic    = "PAR1"
	magicLen = len(magic)
)

// WriteMagic writes the magic bytes that start a parquet file. Pages are
// written right after them.
func WriteMagic(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, magic)
	if err != nil {
		return int64(n), errors.Wrap(err, "failed to write file magic header")
	}

	return int64(n), nil
}

// CheckMagic validates the magic bytes at the start of r.
func CheckMagic(r io.ReadSeeker) error {
	buf := make([]byte, magicLen)

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to seek to file magic header")
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return errors.Wrap(err, "failed to read file magic header")
	}

	if !bytes.Equal(buf, []byte(magic)) {
		return errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason": "invalid parquet file header",
				"header": buf,
			})
	}

	return nil
}
