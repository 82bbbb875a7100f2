// Package azblob reads Azure Storage block blobs.
package azblob

import (
	"context"
	"net/url"

	"github.com/Azure/azure-pipeline-go/pipeline"
	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
)

type ReaderOptions struct {
	// HTTPSender configures the sender of HTTP requests
	HTTPSender pipeline.Factory
	// Retry configures the built-in retry policy behavior.
	RetryOptions azblob.RetryOptions
	// Log configures the pipeline's logging infrastructure indicating what information is logged and where.
	Log pipeline.LogOptions
	// ReadRetry configures retries of interrupted range downloads.
	ReadRetry azblob.RetryReaderOptions
}

func openBlob(ctx context.Context, rawURL string, credential azblob.Credential, options ReaderOptions) (*azblob.BlockBlobURL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse URL")
	}

	blobURL := azblob.NewBlockBlobURL(*u, azblob.NewPipeline(credential, azblob.PipelineOptions{
		HTTPSender: options.HTTPSender,
		Retry:      options.RetryOptions,
		Log:        options.Log,
	}))

	// get account properties to validate credentials
	if _, err := blobURL.GetAccountInfo(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to get account properties")
	}

	return &blobURL, nil
}
