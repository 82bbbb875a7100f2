// Package layout reads and writes the pages of a column chunk: selective and
// sequential page readers, the decompressor turning compressed pages into
// data pages, and the data page encoders and decoders.
package layout

import (
	"github.com/hexbee-net/parquet-pages/compression"
	"github.com/hexbee-net/parquet-pages/page"
	"go.uber.org/zap"
)

// PageProducer yields the compressed pages of a column chunk, in file order.
// Next returns (nil, io.EOF) once every page was produced.
type PageProducer interface {
	Next() (page.CompressedPage, error)
}

// PageIterator yields decompressed data pages.
type PageIterator interface {
	Next() (*page.DataPage, error)
}

type options struct {
	logger *zap.Logger
	buffer []byte
	codecs compression.Codecs

	hasDictionary    bool
	dictionaryOffset int64
	dictionarySize   int32
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: zap.NewNop(),
		codecs: compression.DefaultCodecs(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Option configures the readers and the decompressor. Options that do not
// apply to a component are ignored by it.
type Option func(*options)

// WithLogger sets the logger. Pages are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBuffer sets the scratch buffer page bodies are read into. It grows when
// a page does not fit.
func WithBuffer(buf []byte) Option {
	return func(o *options) {
		o.buffer = buf
	}
}

// WithCodecs replaces the codecs used to decompress pages.
func WithCodecs(codecs compression.Codecs) Option {
	return func(o *options) {
		if codecs != nil {
			o.codecs = codecs
		}
	}
}

// WithDictionaryPage tells the indexed reader where the dictionary page of the
// column chunk is. size includes the page header.
func WithDictionaryPage(offset int64, size int32) Option {
	return func(o *options) {
		o.hasDictionary = true
		o.dictionaryOffset = offset
		o.dictionarySize = size
	}
}

func growBuffer(buf []byte, size int) []byte {
	if cap(buf) < size {
		return make([]byte, size)
	}

	return buf[:size]
}
