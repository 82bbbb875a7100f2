package layout

import (
	"bytes"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/page"
	"github.com/hexbee-net/parquet-pages/parquet"
)

func checkDataPageV2(header *parquet.PageHeader) error {
	h := header.DataPageHeaderV2
	if h == nil {
		return errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason": "missing data page header",
			})
	}

	if h.NumValues < 0 || h.NumNulls < 0 || h.NumRows < 0 {
		return errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":     "negative count in DATA_PAGE_V2",
				"num-values": h.NumValues,
				"num-nulls":  h.NumNulls,
				"num-rows":   h.NumRows,
			})
	}

	if h.RepetitionLevelsByteLength < 0 || h.DefinitionLevelsByteLength < 0 {
		return errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":                        "negative levels length in DATA_PAGE_V2",
				"repetition-levels-byte-length": h.RepetitionLevelsByteLength,
				"definition-levels-byte-length": h.DefinitionLevelsByteLength,
			})
	}

	if levels := levelsSize(h); levels > int64(header.CompressedPageSize) || levels > int64(header.UncompressedPageSize) {
		return errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":            "levels overrun the page",
				"levels-size":       levels,
				"compressed-size":   header.CompressedPageSize,
				"uncompressed-size": header.UncompressedPageSize,
			})
	}

	return nil
}

func levelsSize(h *parquet.DataPageHeaderV2) int64 {
	return int64(h.RepetitionLevelsByteLength) + int64(h.DefinitionLevelsByteLength)
}

// decompressDataPageV2 decompresses the values of a V2 page into out. The
// levels are never compressed and are copied as is.
func (d *BasicDecompressor) decompressDataPageV2(p *page.CompressedDataPage, out []byte) error {
	levels := int(levelsSize(p.Header.DataPageHeaderV2))

	copy(out, p.Buffer[:levels])

	codec := p.Compression
	if !p.Header.DataPageHeaderV2.GetIsCompressed() {
		codec = parquet.CompressionCodec_UNCOMPRESSED
	}

	return decompressBlock(d.codecs, codec, p.Buffer[levels:], out[levels:])
}

// decodeDataPageV2 reads the levels and values of a V2 page. The level
// lengths are in the header, not in the level streams.
func decodeDataPageV2(p *page.DataPage) (*page.Values, error) {
	h := p.Header.DataPageHeaderV2
	column := p.Descriptor

	if int64(len(p.Buffer)) < levelsSize(h) {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":      "levels overrun the page",
				"levels-size": levelsSize(h),
				"page-size":   len(p.Buffer),
			})
	}

	repetitionDecoder, err := newLevelDecoder(column.MaxRepLevel(), parquet.Encoding_RLE)
	if err != nil {
		return nil, err
	}

	definitionDecoder, err := newLevelDecoder(column.MaxDefLevel(), parquet.Encoding_RLE)
	if err != nil {
		return nil, err
	}

	repLen := int(h.RepetitionLevelsByteLength)
	defLen := int(h.DefinitionLevelsByteLength)

	if err := repetitionDecoder.Init(bytes.NewReader(p.Buffer[:repLen])); err != nil {
		return nil, errors.Wrap(err, "failed to initialize repetition decoder")
	}

	if err := definitionDecoder.Init(bytes.NewReader(p.Buffer[repLen : repLen+defLen])); err != nil {
		return nil, errors.Wrap(err, "failed to initialize definition decoder")
	}

	valuesDecoder, err := newValuesDecoder(p)
	if err != nil {
		return nil, err
	}

	if err := valuesDecoder.Init(bytes.NewReader(p.Buffer[repLen+defLen:])); err != nil {
		return nil, errors.Wrap(err, "failed to initialize values decoder")
	}

	return readValues(int(h.NumValues), repetitionDecoder, definitionDecoder, valuesDecoder)
}
