package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/source"
)

// Reader is a source.Reader over an S3 object.
type Reader struct {
	*source.RangeReader

	BucketName string
	Key        string
}

type object struct {
	bucket     string
	key        string
	size       int64
	downloader *s3manager.Downloader
}

// NewReader creates an S3 Reader.
func NewReader(ctx context.Context, bucket, key string, configProvider client.ConfigProvider, configs ...*aws.Config) (*Reader, error) {
	return NewReaderWithClient(ctx, s3.New(configProvider, configs...), bucket, key)
}

// NewReaderWithClient is the same as NewReader but allows passing your own S3 client.
func NewReaderWithClient(ctx context.Context, s3Client s3iface.S3API, bucket, key string) (*Reader, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	headObject, err := s3Client.HeadObjectWithContext(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch file description")
	}

	if headObject.ContentLength == nil {
		return nil, errors.WithFields(
			errors.WithStack(errUnknownSize),
			errors.Fields{
				"bucket": bucket,
				"key":    key,
			})
	}

	obj := &object{
		bucket:     bucket,
		key:        key,
		size:       *headObject.ContentLength,
		downloader: s3manager.NewDownloaderWithClient(s3Client),
	}

	return &Reader{
		RangeReader: source.NewRangeReader(ctx, obj),
		BucketName:  bucket,
		Key:         key,
	}, nil
}

func (o *object) Size() int64 {
	return o.size
}

func (o *object) ReadRange(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	getObj := &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
		Range:  aws.String(fmt.Sprintf(rangeHeader, off, off+int64(len(p))-1)),
	}

	wab := aws.NewWriteAtBuffer(p)

	n, err := o.downloader.DownloadWithContext(ctx, wab, getObj)
	if err != nil {
		return 0, errors.Wrap(err, "failed to download object range")
	}

	if buf := wab.Bytes(); len(buf) > len(p) {
		// backing buffer reassigned, copy over some of the data
		copy(p, buf)
		n = int64(len(p))
	}

	return int(n), nil
}
