package source

import (
	"io"

	"github.com/hexbee-net/errors"
)

// StreamReader is a Reader over a non-seekable stream. It only seeks forward,
// discarding the skipped bytes, which is all the indexed page reader needs.
type StreamReader struct {
	r      io.Reader
	offset int64
}

var _ Reader = (*StreamReader)(nil)

// NewStreamReader wraps r. Close closes r when it implements io.Closer.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: r}
}

func (s *StreamReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.offset += int64(n)

	return n, err
}

func (s *StreamReader) Seek(offset int64, whence int) (int64, error) {
	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = s.offset + offset
	default:
		return s.offset, errors.WithFields(
			errors.WithStack(ErrWhence),
			errors.Fields{
				"whence": whence,
			})
	}

	if pos < s.offset {
		return s.offset, errors.WithFields(
			errors.WithStack(ErrInvalidOffset),
			errors.Fields{
				"offset":  pos,
				"current": s.offset,
			})
	}

	n, err := io.CopyN(io.Discard, s.r, pos-s.offset)
	s.offset += n

	if err != nil {
		return s.offset, errors.Wrap(err, "failed to skip stream data")
	}

	return s.offset, nil
}

func (s *StreamReader) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
