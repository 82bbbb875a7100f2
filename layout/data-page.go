package layout

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/page"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/types"
)

// DecodeDataPage decodes the levels and values of a decompressed data page.
// Values has one entry per level, nil where the definition level is below the
// maximum.
func DecodeDataPage(p *page.DataPage) (*page.Values, error) {
	if p == nil || p.Header == nil || p.Descriptor == nil {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "incomplete data page",
			})
	}

	switch p.Header.Type {
	case parquet.PageType_DATA_PAGE:
		if err := checkDataPageV1(p.Header); err != nil {
			return nil, err
		}

		return decodeDataPageV1(p)

	case parquet.PageType_DATA_PAGE_V2:
		if err := checkDataPageV2(p.Header); err != nil {
			return nil, err
		}

		return decodeDataPageV2(p)
	}

	return nil, errors.WithFields(
		errors.WithStack(parquet.ErrOutOfSpec),
		errors.Fields{
			"reason":    "not a data page",
			"page-type": p.Header.Type.String(),
		})
}

func newValuesDecoder(p *page.DataPage) (types.ValuesDecoder, error) {
	switch enc := p.Encoding(); enc {
	case parquet.Encoding_PLAIN_DICTIONARY, parquet.Encoding_RLE_DICTIONARY:
		return &types.DictDecoder{Dictionary: p.Dictionary()}, nil
	default:
		return types.NewValuesDecoder(p.Descriptor.PhysicalType(), enc)
	}
}

func readValues(count int, repetitionDecoder, definitionDecoder levelDecoder, valuesDecoder types.ValuesDecoder) (*page.Values, error) {
	rLevels, _, err := decodePackedArray(repetitionDecoder, count)
	if err != nil {
		return nil, errors.Wrap(err, "read repetition levels failed")
	}

	dLevels, notNull, err := decodePackedArray(definitionDecoder, count)
	if err != nil {
		return nil, errors.Wrap(err, "read definition levels failed")
	}

	decoded := make([]interface{}, notNull)
	if notNull != 0 {
		if n, err := valuesDecoder.DecodeValues(decoded); err != nil {
			return nil, errors.WithFields(
				errors.Wrap(err, "read values from page failed"),
				errors.Fields{
					"expected": notNull,
					"actual":   n,
				})
		}
	}

	values := make([]interface{}, count)
	maxLevel := int32(definitionDecoder.maxLevel())

	for i, j := 0, 0; i < count; i++ {
		level, err := dLevels.At(i)
		if err != nil {
			return nil, err
		}

		if level == maxLevel {
			values[i] = decoded[j]
			j++
		}
	}

	return &page.Values{
		RepetitionLevels: rLevels,
		DefinitionLevels: dLevels,
		Values:           values,
	}, nil
}
