package memory

import (
	"bytes"

	"github.com/hexbee-net/parquet-pages/source"
)

// Writer collects written bytes in memory. Its content can be read back
// through the embedded buffer or turned into a Reader.
type Writer struct {
	bytes.Buffer
}

var _ source.Writer = (*Writer)(nil)

func NewWriter(buf []byte) *Writer {
	return &Writer{
		Buffer: *bytes.NewBuffer(buf),
	}
}

// Reader returns a Reader over the bytes written so far.
func (w *Writer) Reader() *source.RangeReader {
	return NewReader(w.Bytes())
}

func (w Writer) Close() error {
	return nil
}
