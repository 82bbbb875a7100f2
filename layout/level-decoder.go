package layout

import (
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/encoding"
	"github.com/hexbee-net/parquet-pages/parquet"
)

type levelDecoder interface {
	encoding.Decoder

	maxLevel() int16
}

type levelDecoderWrapper struct {
	encoding.Decoder
	max int16
}

func (l *levelDecoderWrapper) maxLevel() int16 {
	return l.max
}

// absentLevels decodes the levels of a column whose maximum level is 0. They
// take no space in the page.
type absentLevels struct{}

func (absentLevels) Init(_ io.Reader) error { return nil }

func (absentLevels) InitSize(_ io.Reader) error { return nil }

func (absentLevels) Next() (int32, error) { return 0, nil }

// newLevelDecoder returns a decoder for levels up to max. Levels are not
// stored at all when max is 0.
func newLevelDecoder(max int16, enc parquet.Encoding) (levelDecoder, error) {
	if max == 0 {
		return &levelDecoderWrapper{
			Decoder: absentLevels{},
			max:     max,
		}, nil
	}

	if enc != parquet.Encoding_RLE {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrOutOfSpec),
			errors.Fields{
				"reason":   "encoding not supported for definition and repetition levels",
				"encoding": enc.String(),
			})
	}

	return &levelDecoderWrapper{
		Decoder: encoding.NewHybridDecoder(encoding.BitWidth(int(max)), true),
		max:     max,
	}, nil
}
