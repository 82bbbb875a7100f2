package layout

import (
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/encoding"
	"github.com/hexbee-net/parquet-pages/parquet"
)

type offsetReader struct {
	inner  io.ReadSeeker
	offset int64
	count  int64
}

func (r *offsetReader) Read(p []byte) (int, error) {
	n, err := r.inner.Read(p)
	r.offset += int64(n)
	r.count += int64(n)

	return n, err
}

func (r *offsetReader) Seek(offset int64, whence int) (int64, error) {
	i, err := r.inner.Seek(offset, whence)
	if err == nil {
		r.count += i - r.offset
		r.offset = i
	}

	return i, err
}

func (r *offsetReader) Count() int64 {
	return r.count
}

// /////////////////////////////////////////////////////////////////////////////

// decodePackedArray reads count levels. notNull is the number of levels equal
// to the maximum level, which is the number of values for definition levels.
func decodePackedArray(d levelDecoder, count int) (*encoding.PackedArray, int, error) {
	array := &encoding.PackedArray{}
	notNull := 0

	if err := array.Reset(encoding.BitWidth(int(d.maxLevel()))); err != nil {
		return nil, 0, err
	}

	for i := 0; i < count; i++ {
		u, err := d.Next()
		if err != nil {
			return nil, 0, errors.WithStack(err)
		}

		if u < 0 || u > int32(d.maxLevel()) {
			return nil, 0, errors.WithFields(
				errors.WithStack(parquet.ErrCorruptData),
				errors.Fields{
					"reason":    "level out of range",
					"level":     u,
					"max-level": d.maxLevel(),
				})
		}

		array.AppendSingle(u)

		if u == int32(d.maxLevel()) {
			notNull++
		}
	}

	return array, notNull, nil
}
