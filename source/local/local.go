// Package local reads and writes files on the local file system.
package local

import (
	"context"
	"os"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/source"
)

type File struct {
	FilePath string
	file     *os.File
	size     int64
}

var (
	_ source.RangeFetcher = (*File)(nil)
	_ source.Writer       = (*File)(nil)
)

// NewReader creates a local file Reader.
func NewReader(path string) (*source.RangeReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open source file")
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrap(err, "failed to stat source file")
	}

	f := &File{
		FilePath: path,
		file:     file,
		size:     info.Size(),
	}

	return source.NewRangeReader(context.Background(), f), nil
}

// NewWriter creates a local file Writer.
func NewWriter(path string) (*File, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create target file")
	}

	return &File{
		FilePath: path,
		file:     file,
	}, nil
}

// Reader //////////////////////////////

func (f *File) ReadRange(_ context.Context, p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off)
}

func (f *File) Size() int64 {
	return f.size
}

// Writer //////////////////////////////

func (f *File) Write(p []byte) (n int, err error) {
	n, err = f.file.Write(p)
	f.size += int64(n)

	return n, err
}

func (f *File) Close() error {
	return f.file.Close()
}
