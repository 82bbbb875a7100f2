package layout

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/compression"
	"github.com/hexbee-net/parquet-pages/page"
	"github.com/hexbee-net/parquet-pages/parquet"
	"go.uber.org/zap"
)

// BasicDecompressor turns the compressed pages of a producer into data pages.
// Dictionary pages are not returned: they are decoded and attached to the
// data pages that follow them.
type BasicDecompressor struct {
	pages  PageProducer
	buffer []byte
	codecs compression.Codecs
	logger *zap.Logger

	pending    *pendingDictionary
	dictionary page.DictionaryPage
}

// NewBasicDecompressor creates a decompressor reading from pages. buffer is
// the scratch space data pages are decompressed into, it grows when needed.
func NewBasicDecompressor(pages PageProducer, buffer []byte, opts ...Option) *BasicDecompressor {
	o := newOptions(opts)

	return &BasicDecompressor{
		pages:  pages,
		buffer: buffer,
		codecs: o.codecs,
		logger: o.logger,
	}
}

// Next returns the next data page, or (nil, io.EOF) at the end of the
// producer. The page buffer is only valid until the next call.
func (d *BasicDecompressor) Next() (*page.DataPage, error) {
	for {
		p, err := d.pages.Next()
		if err != nil {
			return nil, err
		}

		switch x := p.(type) {
		case *page.CompressedDictionaryPage:
			if d.pending, err = decompressDictionary(d.codecs, x); err != nil {
				return nil, err
			}

			d.dictionary = nil

			d.logger.Debug("read dictionary page",
				zap.Int("num-values", x.NumValues),
				zap.Int("size", x.UncompressedPageSize))

		case *page.CompressedDataPage:
			return d.decompressDataPage(x)

		default:
			return nil, errors.WithFields(
				errors.WithStack(parquet.ErrInvalidParameter),
				errors.Fields{
					"reason": "unknown page implementation",
				})
		}
	}
}

// Dictionary returns the dictionary of the last data page returned, if any.
func (d *BasicDecompressor) Dictionary() page.DictionaryPage {
	return d.dictionary
}

func (d *BasicDecompressor) decompressDataPage(p *page.CompressedDataPage) (*page.DataPage, error) {
	if p.Descriptor == nil {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "data page without column descriptor",
			})
	}

	if d.pending != nil {
		dict, err := d.pending.decode(p.Descriptor.PhysicalType())
		if err != nil {
			return nil, err
		}

		d.pending = nil
		d.dictionary = dict
	}

	header := p.Header
	if err := checkPageSizes(header); err != nil {
		return nil, err
	}

	if p.Compression == parquet.CompressionCodec_UNCOMPRESSED {
		if int(header.UncompressedPageSize) != len(p.Buffer) {
			return nil, errors.WithFields(
				errors.WithStack(parquet.ErrCorruptData),
				errors.Fields{
					"reason":   "uncompressed page size does not match its body",
					"expected": header.UncompressedPageSize,
					"actual":   len(p.Buffer),
				})
		}

		return page.NewDataPage(header, p.Buffer, p.Descriptor, p.Rows, d.dictionary), nil
	}

	d.buffer = growBuffer(d.buffer, int(header.UncompressedPageSize))

	var err error

	switch header.Type {
	case parquet.PageType_DATA_PAGE_V2:
		if err = checkDataPageV2(header); err == nil {
			err = d.decompressDataPageV2(p, d.buffer)
		}
	default:
		err = decompressBlock(d.codecs, p.Compression, p.Buffer, d.buffer)
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress data page")
	}

	d.logger.Debug("decompressed data page",
		zap.Stringer("codec", p.Compression),
		zap.Int("compressed-size", len(p.Buffer)),
		zap.Int32("uncompressed-size", header.UncompressedPageSize))

	return page.NewDataPage(header, d.buffer, p.Descriptor, p.Rows, d.dictionary), nil
}
