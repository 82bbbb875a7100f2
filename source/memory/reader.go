package memory

import (
	"context"
	"io"

	"github.com/hexbee-net/parquet-pages/source"
)

// Buffer is an in-memory RangeFetcher.
type Buffer []byte

func (b Buffer) ReadRange(_ context.Context, p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}

	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}

	return n, nil
}

func (b Buffer) Size() int64 {
	return int64(len(b))
}

// NewReader returns a Reader over data.
func NewReader(data []byte) *source.RangeReader {
	return source.NewRangeReader(context.Background(), Buffer(data))
}
