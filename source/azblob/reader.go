package azblob

import (
	"context"
	"io"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/source"
)

// Reader is a source.Reader over an Azure block blob.
type Reader struct {
	*source.RangeReader

	URL string
}

type blob struct {
	url     *azblob.BlockBlobURL
	size    int64
	options ReaderOptions
}

// NewReader creates an Azure Blob Reader.
func NewReader(ctx context.Context, URL string, credential azblob.Credential, options ReaderOptions) (*Reader, error) {
	blobURL, err := openBlob(ctx, URL, credential, options)
	if err != nil {
		return nil, err
	}

	props, err := blobURL.GetProperties(ctx, azblob.BlobAccessConditions{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get blob properties")
	}

	b := &blob{
		url:     blobURL,
		size:    props.ContentLength(),
		options: options,
	}

	return &Reader{
		RangeReader: source.NewRangeReader(ctx, b),
		URL:         URL,
	}, nil
}

func (b *blob) Size() int64 {
	return b.size
}

func (b *blob) ReadRange(ctx context.Context, p []byte, off int64) (int, error) {
	resp, err := b.url.Download(ctx, off, int64(len(p)), azblob.BlobAccessConditions{}, false)
	if err != nil {
		return 0, errors.Wrap(err, "failed to download blob range")
	}

	body := resp.Body(b.options.ReadRetry)
	defer func() { _ = body.Close() }()

	n, err := io.ReadFull(body, p)
	if err != nil {
		return n, errors.Wrap(err, "failed to read data")
	}

	return n, nil
}
