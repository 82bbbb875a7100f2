package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/source"
	"google.golang.org/api/option"
)

// Reader is a source.Reader over a GCS object.
type Reader struct {
	*source.RangeReader

	BucketName string
	FilePath   string
}

type object struct {
	externalClient bool
	client         *storage.Client
	handle         *storage.ObjectHandle
	size           int64
}

// NewReader creates a GCS Reader. The client is built from opts and closed
// with the Reader.
func NewReader(ctx context.Context, bucketName, name string, opts ...option.ClientOption) (*Reader, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to instantiate GCS client")
	}

	r, err := newReader(ctx, client, false, bucketName, name)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return r, nil
}

// NewReaderWithClient is the same as NewReader but allows passing your own GCS client.
func NewReaderWithClient(ctx context.Context, client *storage.Client, bucketName, name string) (*Reader, error) {
	return newReader(ctx, client, true, bucketName, name)
}

func newReader(ctx context.Context, client *storage.Client, external bool, bucketName, name string) (*Reader, error) {
	obj := &object{
		externalClient: external,
		client:         client,
		handle:         client.Bucket(bucketName).Object(name),
	}

	attrs, err := obj.handle.Attrs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get object attributes")
	}

	obj.size = attrs.Size

	return &Reader{
		RangeReader: source.NewRangeReader(ctx, obj),
		BucketName:  bucketName,
		FilePath:    name,
	}, nil
}

func (o *object) Size() int64 {
	return o.size
}

func (o *object) ReadRange(ctx context.Context, p []byte, off int64) (int, error) {
	reader, err := o.handle.NewRangeReader(ctx, off, int64(len(p)))
	if err != nil {
		return 0, errors.Wrap(err, "failed to open range reader")
	}
	defer func() { _ = reader.Close() }()

	n, err := io.ReadFull(reader, p)
	if err != nil {
		return n, errors.Wrap(err, "failed to read file data")
	}

	return n, nil
}

func (o *object) Close() error {
	if o.client != nil && !o.externalClient {
		err := o.client.Close()
		o.client = nil

		if err != nil {
			return errors.Wrap(err, "failed to close GCS client")
		}
	}

	return nil
}
