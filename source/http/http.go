// Package http reads files uploaded through multipart HTTP requests.
package http

import (
	"context"
	"mime/multipart"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/source"
)

type upload struct {
	file multipart.File
	size int64
}

// NewReader opens the uploaded file described by header.
func NewReader(header *multipart.FileHeader) (*source.RangeReader, error) {
	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open HTTP stream")
	}

	u := &upload{
		file: file,
		size: header.Size,
	}

	return source.NewRangeReader(context.Background(), u), nil
}

func (u *upload) ReadRange(_ context.Context, p []byte, off int64) (int, error) {
	return u.file.ReadAt(p, off)
}

func (u *upload) Size() int64 {
	return u.size
}

func (u *upload) Close() error {
	return u.file.Close()
}
