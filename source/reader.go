// Package source contains the byte sources page readers consume.
package source

import (
	"context"
	"io"

	"github.com/hexbee-net/errors"
)

const (
	ErrWhence        = errors.Error("invalid whence")
	ErrInvalidOffset = errors.Error("invalid offset")
	ErrClosed        = errors.Error("source closed")
)

// Reader is a seekable byte source.
type Reader interface {
	io.Reader
	io.Seeker
	io.Closer
}

// RangeFetcher reads byte ranges from an object of known size.
//
// ReadRange fills p with the bytes starting at off. The caller never asks for
// bytes past Size.
type RangeFetcher interface {
	ReadRange(ctx context.Context, p []byte, off int64) (int, error)
	Size() int64
}

// RangeReader turns a RangeFetcher into a Reader by tracking the offset of the
// next read.
type RangeReader struct {
	ctx     context.Context
	fetcher RangeFetcher
	offset  int64
	closed  bool
}

var _ Reader = (*RangeReader)(nil)

// NewRangeReader returns a Reader positioned at the start of the object.
// Close closes the fetcher when it implements io.Closer.
func NewRangeReader(ctx context.Context, fetcher RangeFetcher) *RangeReader {
	return &RangeReader{
		ctx:     ctx,
		fetcher: fetcher,
	}
}

func (r *RangeReader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, errors.WithStack(ErrClosed)
	}

	size := r.fetcher.Size()
	if r.offset >= size {
		return 0, io.EOF
	}

	if len(p) == 0 {
		return 0, nil
	}

	if remaining := size - r.offset; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := r.fetcher.ReadRange(r.ctx, p, r.offset)
	r.offset += int64(n)

	if err != nil && (n == 0 || errors.Cause(err) != io.EOF) {
		return n, errors.Wrap(err, "failed to read range")
	}

	return n, nil
}

// Seek sets the offset of the next Read. The offset must stay within the
// object.
func (r *RangeReader) Seek(offset int64, whence int) (int64, error) {
	pos, err := SeekPosition(r.offset, r.fetcher.Size(), offset, whence)
	if err != nil {
		return r.offset, err
	}

	r.offset = pos

	return r.offset, nil
}

func (r *RangeReader) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true

	if c, ok := r.fetcher.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// SeekPosition resolves an io.Seeker offset against the current position and
// the object size.
func SeekPosition(current, size, offset int64, whence int) (int64, error) {
	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = current + offset
	case io.SeekEnd:
		pos = size + offset
	default:
		return 0, errors.WithFields(
			errors.WithStack(ErrWhence),
			errors.Fields{
				"whence": whence,
			})
	}

	if pos < 0 || pos > size {
		return 0, errors.WithFields(
			errors.WithStack(ErrInvalidOffset),
			errors.Fields{
				"offset":   offset,
				"whence":   whence,
				"fileSize": size,
			})
	}

	return pos, nil
}
