package layout

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/compression"
	"github.com/hexbee-net/parquet-pages/page"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

func newDictionaryPage(header *parquet.PageHeader, body []byte, codec parquet.CompressionCodec) (*page.CompressedDictionaryPage, error) {
	h := header.DictionaryPageHeader
	if h == nil {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason": "missing dictionary page header",
			})
	}

	if h.NumValues < 0 {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":     "negative NumValues in DICTIONARY_PAGE",
				"num-values": h.NumValues,
			})
	}

	if h.Encoding != parquet.Encoding_PLAIN && h.Encoding != parquet.Encoding_PLAIN_DICTIONARY {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason":   "only PLAIN and PLAIN_DICTIONARY are supported for dictionary values",
				"encoding": h.Encoding.String(),
			})
	}

	return &page.CompressedDictionaryPage{
		Buffer:               body,
		Compression:          codec,
		UncompressedPageSize: int(header.UncompressedPageSize),
		NumValues:            int(h.NumValues),
		IsSorted:             h.GetIsSorted(),
	}, nil
}

// pendingDictionary is a decompressed dictionary page waiting for the column
// type of the data pages that refer to it.
type pendingDictionary struct {
	encoded  *page.EncodedDictionaryPage
	isSorted bool
}

// decompressDictionary copies the dictionary values out of the page buffer,
// which is reused for the next pages.
func decompressDictionary(codecs compression.Codecs, p *page.CompressedDictionaryPage) (*pendingDictionary, error) {
	if p.UncompressedPageSize < 0 {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":            "negative uncompressed size",
				"uncompressed-size": p.UncompressedPageSize,
			})
	}

	buf := make([]byte, p.UncompressedPageSize)
	if err := decompressBlock(codecs, p.Compression, p.Buffer, buf); err != nil {
		return nil, errors.Wrap(err, "failed to decompress dictionary page")
	}

	return &pendingDictionary{
		encoded: &page.EncodedDictionaryPage{
			Buffer:    buf,
			NumValues: p.NumValues,
		},
		isSorted: p.IsSorted,
	}, nil
}

func (d *pendingDictionary) decode(typ schema.PhysicalType) (page.DictionaryPage, error) {
	dict, err := page.ReadDictionaryPage(d.encoded, parquet.CompressionCodec_UNCOMPRESSED, len(d.encoded.Buffer), d.isSorted, typ)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode dictionary page")
	}

	return dict, nil
}
