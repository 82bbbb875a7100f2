// Package s3 reads objects stored in Amazon S3 with ranged GET requests.
package s3

import (
	"github.com/hexbee-net/errors"
)

const (
	errUnknownSize = errors.Error("object size unknown")
)

const rangeHeader = "bytes=%d-%d"
