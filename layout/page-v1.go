package layout

import (
	"bytes"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/page"
	"github.com/hexbee-net/parquet-pages/parquet"
)

func checkDataPageV1(header *parquet.PageHeader) error {
	h := header.DataPageHeader
	if h == nil {
		return errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason": "missing data page header",
			})
	}

	if h.NumValues < 0 {
		return errors.WithFields(
			errors.WithStack(parquet.ErrCorruptData),
			errors.Fields{
				"reason":     "negative NumValues in DATA_PAGE",
				"num-values": h.NumValues,
			})
	}

	return nil
}

// decodeDataPageV1 reads the levels and values of a V1 page. Each level stream
// is prefixed with its 4 bytes length.
func decodeDataPageV1(p *page.DataPage) (*page.Values, error) {
	h := p.Header.DataPageHeader
	column := p.Descriptor

	repetitionDecoder, err := newLevelDecoder(column.MaxRepLevel(), h.RepetitionLevelEncoding)
	if err != nil {
		return nil, err
	}

	definitionDecoder, err := newLevelDecoder(column.MaxDefLevel(), h.DefinitionLevelEncoding)
	if err != nil {
		return nil, err
	}

	dataReader := bytes.NewReader(p.Buffer)

	if err := repetitionDecoder.InitSize(dataReader); err != nil {
		return nil, errors.Wrap(err, "failed to initialize repetition decoder")
	}

	if err := definitionDecoder.InitSize(dataReader); err != nil {
		return nil, errors.Wrap(err, "failed to initialize definition decoder")
	}

	valuesDecoder, err := newValuesDecoder(p)
	if err != nil {
		return nil, err
	}

	if err := valuesDecoder.Init(dataReader); err != nil {
		return nil, errors.Wrap(err, "failed to initialize values decoder")
	}

	return readValues(int(h.NumValues), repetitionDecoder, definitionDecoder, valuesDecoder)
}
