// Package page models the pages of a column chunk, compressed or not, and
// decodes dictionary pages.
package page

import (
	"github.com/hexbee-net/parquet-pages/encoding"
	"github.com/hexbee-net/parquet-pages/index"
	"github.com/hexbee-net/parquet-pages/parquet"
	"github.com/hexbee-net/parquet-pages/schema"
)

// CompressedPage is a page as stored in a column chunk: either a
// *CompressedDataPage or a *CompressedDictionaryPage.
type CompressedPage interface {
	PageHeader() *parquet.PageHeader

	isCompressedPage()
}

// CompressedDataPage is a V1 or V2 data page with its body as stored.
type CompressedDataPage struct {
	Header      *parquet.PageHeader
	Buffer      []byte
	Compression parquet.CompressionCodec
	Descriptor  *schema.ColumnDescriptor
	// Rows is the row interval covered by the page, when known.
	Rows *index.Interval
}

func (p *CompressedDataPage) PageHeader() *parquet.PageHeader { return p.Header }

func (p *CompressedDataPage) isCompressedPage() {}

// /////////////////////////////////////////////////////////////////////////////

// Page is an uncompressed page: either a *DataPage or a *DictPage.
type Page interface {
	PageHeader() *parquet.PageHeader
	Body() []byte

	isPage()
}

// DataPage is an uncompressed V1 or V2 data page.
type DataPage struct {
	Header     *parquet.PageHeader
	Buffer     []byte
	Descriptor *schema.ColumnDescriptor
	Rows       *index.Interval

	dictionary DictionaryPage
}

// NewDataPage creates a data page. dict is the decoded dictionary of the
// column chunk, if any.
func NewDataPage(
	header *parquet.PageHeader,
	buffer []byte,
	descriptor *schema.ColumnDescriptor,
	rows *index.Interval,
	dict DictionaryPage,
) *DataPage {
	return &DataPage{
		Header:     header,
		Buffer:     buffer,
		Descriptor: descriptor,
		Rows:       rows,
		dictionary: dict,
	}
}

func (p *DataPage) PageHeader() *parquet.PageHeader { return p.Header }

func (p *DataPage) Body() []byte { return p.Buffer }

// Dictionary returns the dictionary the page values refer to, or nil.
func (p *DataPage) Dictionary() DictionaryPage { return p.dictionary }

// NumValues returns the number of values in the page, nulls included.
func (p *DataPage) NumValues() int {
	switch {
	case p.Header.DataPageHeader != nil:
		return int(p.Header.DataPageHeader.NumValues)
	case p.Header.DataPageHeaderV2 != nil:
		return int(p.Header.DataPageHeaderV2.NumValues)
	}

	return 0
}

// Encoding returns the encoding of the page values.
func (p *DataPage) Encoding() parquet.Encoding {
	switch {
	case p.Header.DataPageHeader != nil:
		return p.Header.DataPageHeader.Encoding
	case p.Header.DataPageHeaderV2 != nil:
		return p.Header.DataPageHeaderV2.Encoding
	}

	return parquet.Encoding_PLAIN
}

// Statistics returns the page statistics, if any.
func (p *DataPage) Statistics() *parquet.Statistics {
	switch {
	case p.Header.DataPageHeader != nil:
		return p.Header.DataPageHeader.Statistics
	case p.Header.DataPageHeaderV2 != nil:
		return p.Header.DataPageHeaderV2.Statistics
	}

	return nil
}

func (p *DataPage) isPage() {}

// DictPage is an uncompressed dictionary page, ready to be compressed.
type DictPage struct {
	Encoded  *EncodedDictionaryPage
	IsSorted bool
}

func (p *DictPage) PageHeader() *parquet.PageHeader {
	return &parquet.PageHeader{
		Type:                 parquet.PageType_DICTIONARY_PAGE,
		UncompressedPageSize: int32(len(p.Encoded.Buffer)),
		CompressedPageSize:   int32(len(p.Encoded.Buffer)),
		DictionaryPageHeader: &parquet.DictionaryPageHeader{
			NumValues: int32(p.Encoded.NumValues),
			Encoding:  parquet.Encoding_PLAIN,
			IsSorted:  parquet.BoolPtr(p.IsSorted),
		},
	}
}

func (p *DictPage) Body() []byte { return p.Encoded.Buffer }

func (p *DictPage) isPage() {}

// /////////////////////////////////////////////////////////////////////////////

// Values are the decoded content of a data page. Levels are exposed as
// stored, they are not interpreted beyond the definition level of flat
// columns.
type Values struct {
	RepetitionLevels *encoding.PackedArray
	DefinitionLevels *encoding.PackedArray
	// Values has one entry per level, nil when the value is null.
	Values []interface{}
}
