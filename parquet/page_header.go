package parquet

import (
	"github.com/apache/thrift/lib/go/thrift"
)

// Statistics per page or column chunk. All fields are optional.
type Statistics struct {
	Max           []byte
	Min           []byte
	NullCount     *int64
	DistinctCount *int64
	MaxValue      []byte
	MinValue      []byte
}

func (p *Statistics) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, "Statistics", func(iprot thrift.TProtocol, id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.STRING:
			p.Max, err = iprot.ReadBinary()
		case id == 2 && typ == thrift.STRING:
			p.Min, err = iprot.ReadBinary()
		case id == 3 && typ == thrift.I64:
			var v int64
			v, err = iprot.ReadI64()
			p.NullCount = &v
		case id == 4 && typ == thrift.I64:
			var v int64
			v, err = iprot.ReadI64()
			p.DistinctCount = &v
		case id == 5 && typ == thrift.STRING:
			p.MaxValue, err = iprot.ReadBinary()
		case id == 6 && typ == thrift.STRING:
			p.MinValue, err = iprot.ReadBinary()
		default:
			return false, nil
		}

		return true, err
	})
}

func (p *Statistics) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "Statistics", func() error {
		if p.Max != nil {
			if err := writeBinaryField(oprot, "max", 1, p.Max); err != nil {
				return err
			}
		}

		if p.Min != nil {
			if err := writeBinaryField(oprot, "min", 2, p.Min); err != nil {
				return err
			}
		}

		if p.NullCount != nil {
			if err := writeI64Field(oprot, "null_count", 3, *p.NullCount); err != nil {
				return err
			}
		}

		if p.DistinctCount != nil {
			if err := writeI64Field(oprot, "distinct_count", 4, *p.DistinctCount); err != nil {
				return err
			}
		}

		if p.MaxValue != nil {
			if err := writeBinaryField(oprot, "max_value", 5, p.MaxValue); err != nil {
				return err
			}
		}

		if p.MinValue != nil {
			if err := writeBinaryField(oprot, "min_value", 6, p.MinValue); err != nil {
				return err
			}
		}

		return nil
	})
}

// /////////////////////////////////////////////////////////////////////////////

// DataPageHeader is the header of a V1 data page.
type DataPageHeader struct {
	NumValues               int32
	Encoding                Encoding
	DefinitionLevelEncoding Encoding
	RepetitionLevelEncoding Encoding
	Statistics              *Statistics
}

func (p *DataPageHeader) Read(iprot thrift.TProtocol) error {
	var isSetNumValues, isSetEncoding, isSetDefinition, isSetRepetition bool

	err := readStruct(iprot, "DataPageHeader", func(iprot thrift.TProtocol, id int16, typ thrift.TType) (bool, error) {
		var (
			v   int32
			err error
		)

		switch {
		case id == 1 && typ == thrift.I32:
			p.NumValues, err = readI32(iprot)
			isSetNumValues = true
		case id == 2 && typ == thrift.I32:
			v, err = readI32(iprot)
			p.Encoding = Encoding(v)
			isSetEncoding = true
		case id == 3 && typ == thrift.I32:
			v, err = readI32(iprot)
			p.DefinitionLevelEncoding = Encoding(v)
			isSetDefinition = true
		case id == 4 && typ == thrift.I32:
			v, err = readI32(iprot)
			p.RepetitionLevelEncoding = Encoding(v)
			isSetRepetition = true
		case id == 5 && typ == thrift.STRUCT:
			p.Statistics = &Statistics{}
			err = p.Statistics.Read(iprot)
		default:
			return false, nil
		}

		return true, err
	})
	if err != nil {
		return err
	}

	switch {
	case !isSetNumValues:
		return missingField("DataPageHeader", "num_values")
	case !isSetEncoding:
		return missingField("DataPageHeader", "encoding")
	case !isSetDefinition:
		return missingField("DataPageHeader", "definition_level_encoding")
	case !isSetRepetition:
		return missingField("DataPageHeader", "repetition_level_encoding")
	}

	return nil
}

func (p *DataPageHeader) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "DataPageHeader", func() error {
		if err := writeI32Field(oprot, "num_values", 1, p.NumValues); err != nil {
			return err
		}

		if err := writeI32Field(oprot, "encoding", 2, int32(p.Encoding)); err != nil {
			return err
		}

		if err := writeI32Field(oprot, "definition_level_encoding", 3, int32(p.DefinitionLevelEncoding)); err != nil {
			return err
		}

		if err := writeI32Field(oprot, "repetition_level_encoding", 4, int32(p.RepetitionLevelEncoding)); err != nil {
			return err
		}

		if p.Statistics != nil {
			return writeStructField(oprot, "statistics", 5, p.Statistics)
		}

		return nil
	})
}

// /////////////////////////////////////////////////////////////////////////////

// DictionaryPageHeader is the header of a dictionary page.
type DictionaryPageHeader struct {
	NumValues int32
	Encoding  Encoding
	IsSorted  *bool
}

// GetIsSorted returns the is_sorted flag, false when unset.
func (p *DictionaryPageHeader) GetIsSorted() bool {
	return p.IsSorted != nil && *p.IsSorted
}

func (p *DictionaryPageHeader) Read(iprot thrift.TProtocol) error {
	var isSetNumValues, isSetEncoding bool

	err := readStruct(iprot, "DictionaryPageHeader", func(iprot thrift.TProtocol, id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.I32:
			p.NumValues, err = readI32(iprot)
			isSetNumValues = true
		case id == 2 && typ == thrift.I32:
			var v int32
			v, err = readI32(iprot)
			p.Encoding = Encoding(v)
			isSetEncoding = true
		case id == 3 && typ == thrift.BOOL:
			var v bool
			v, err = iprot.ReadBool()
			p.IsSorted = &v
		default:
			return false, nil
		}

		return true, err
	})
	if err != nil {
		return err
	}

	switch {
	case !isSetNumValues:
		return missingField("DictionaryPageHeader", "num_values")
	case !isSetEncoding:
		return missingField("DictionaryPageHeader", "encoding")
	}

	return nil
}

func (p *DictionaryPageHeader) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "DictionaryPageHeader", func() error {
		if err := writeI32Field(oprot, "num_values", 1, p.NumValues); err != nil {
			return err
		}

		if err := writeI32Field(oprot, "encoding", 2, int32(p.Encoding)); err != nil {
			return err
		}

		if p.IsSorted != nil {
			return writeBoolField(oprot, "is_sorted", 3, *p.IsSorted)
		}

		return nil
	})
}

// /////////////////////////////////////////////////////////////////////////////

// DataPageHeaderV2 is the header of a V2 data page. Levels are stored
// uncompressed before the values.
type DataPageHeaderV2 struct {
	NumValues                  int32
	NumNulls                   int32
	NumRows                    int32
	Encoding                   Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed               *bool
	Statistics                 *Statistics
}

// GetIsCompressed returns the is_compressed flag, which defaults to true.
func (p *DataPageHeaderV2) GetIsCompressed() bool {
	return p.IsCompressed == nil || *p.IsCompressed
}

func (p *DataPageHeaderV2) Read(iprot thrift.TProtocol) error {
	var isSet [6]bool

	err := readStruct(iprot, "DataPageHeaderV2", func(iprot thrift.TProtocol, id int16, typ thrift.TType) (bool, error) {
		var (
			v   int32
			err error
		)

		switch {
		case id >= 1 && id <= 6 && typ == thrift.I32:
			v, err = readI32(iprot)
			isSet[id-1] = true

			switch id {
			case 1:
				p.NumValues = v
			case 2:
				p.NumNulls = v
			case 3:
				p.NumRows = v
			case 4:
				p.Encoding = Encoding(v)
			case 5:
				p.DefinitionLevelsByteLength = v
			case 6:
				p.RepetitionLevelsByteLength = v
			}
		case id == 7 && typ == thrift.BOOL:
			var b bool
			b, err = iprot.ReadBool()
			p.IsCompressed = &b
		case id == 8 && typ == thrift.STRUCT:
			p.Statistics = &Statistics{}
			err = p.Statistics.Read(iprot)
		default:
			return false, nil
		}

		return true, err
	})
	if err != nil {
		return err
	}

	names := [...]string{"num_values", "num_nulls", "num_rows", "encoding", "definition_levels_byte_length", "repetition_levels_byte_length"}
	for i := range isSet {
		if !isSet[i] {
			return missingField("DataPageHeaderV2", names[i])
		}
	}

	return nil
}

func (p *DataPageHeaderV2) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "DataPageHeaderV2", func() error {
		values := [...]struct {
			name string
			v    int32
		}{
			{"num_values", p.NumValues},
			{"num_nulls", p.NumNulls},
			{"num_rows", p.NumRows},
			{"encoding", int32(p.Encoding)},
			{"definition_levels_byte_length", p.DefinitionLevelsByteLength},
			{"repetition_levels_byte_length", p.RepetitionLevelsByteLength},
		}

		for i, f := range values {
			if err := writeI32Field(oprot, f.name, int16(i+1), f.v); err != nil {
				return err
			}
		}

		if p.IsCompressed != nil {
			if err := writeBoolField(oprot, "is_compressed", 7, *p.IsCompressed); err != nil {
				return err
			}
		}

		if p.Statistics != nil {
			return writeStructField(oprot, "statistics", 8, p.Statistics)
		}

		return nil
	})
}

// /////////////////////////////////////////////////////////////////////////////

// PageHeader precedes every page of a column chunk.
type PageHeader struct {
	Type                 PageType
	UncompressedPageSize int32
	CompressedPageSize   int32
	Crc                  *int32
	DataPageHeader       *DataPageHeader
	DictionaryPageHeader *DictionaryPageHeader
	DataPageHeaderV2     *DataPageHeaderV2
}

func (p *PageHeader) GetUncompressedPageSize() int32 {
	return p.UncompressedPageSize
}

func (p *PageHeader) GetCompressedPageSize() int32 {
	return p.CompressedPageSize
}

func (p *PageHeader) Read(iprot thrift.TProtocol) error {
	var isSetType, isSetUncompressed, isSetCompressed bool

	err := readStruct(iprot, "PageHeader", func(iprot thrift.TProtocol, id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.I32:
			var v int32
			v, err = readI32(iprot)
			p.Type = PageType(v)
			isSetType = true
		case id == 2 && typ == thrift.I32:
			p.UncompressedPageSize, err = readI32(iprot)
			isSetUncompressed = true
		case id == 3 && typ == thrift.I32:
			p.CompressedPageSize, err = readI32(iprot)
			isSetCompressed = true
		case id == 4 && typ == thrift.I32:
			var v int32
			v, err = readI32(iprot)
			p.Crc = &v
		case id == 5 && typ == thrift.STRUCT:
			p.DataPageHeader = &DataPageHeader{}
			err = p.DataPageHeader.Read(iprot)
		case id == 7 && typ == thrift.STRUCT:
			p.DictionaryPageHeader = &DictionaryPageHeader{}
			err = p.DictionaryPageHeader.Read(iprot)
		case id == 8 && typ == thrift.STRUCT:
			p.DataPageHeaderV2 = &DataPageHeaderV2{}
			err = p.DataPageHeaderV2.Read(iprot)
		default:
			// index_page_header (6) carries no field and is skipped.
			return false, nil
		}

		return true, err
	})
	if err != nil {
		return err
	}

	switch {
	case !isSetType:
		return missingField("PageHeader", "type")
	case !isSetUncompressed:
		return missingField("PageHeader", "uncompressed_page_size")
	case !isSetCompressed:
		return missingField("PageHeader", "compressed_page_size")
	}

	return nil
}

func (p *PageHeader) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "PageHeader", func() error {
		if err := writeI32Field(oprot, "type", 1, int32(p.Type)); err != nil {
			return err
		}

		if err := writeI32Field(oprot, "uncompressed_page_size", 2, p.UncompressedPageSize); err != nil {
			return err
		}

		if err := writeI32Field(oprot, "compressed_page_size", 3, p.CompressedPageSize); err != nil {
			return err
		}

		if p.Crc != nil {
			if err := writeI32Field(oprot, "crc", 4, *p.Crc); err != nil {
				return err
			}
		}

		if p.DataPageHeader != nil {
			if err := writeStructField(oprot, "data_page_header", 5, p.DataPageHeader); err != nil {
				return err
			}
		}

		if p.DictionaryPageHeader != nil {
			if err := writeStructField(oprot, "dictionary_page_header", 7, p.DictionaryPageHeader); err != nil {
				return err
			}
		}

		if p.DataPageHeaderV2 != nil {
			if err := writeStructField(oprot, "data_page_header_v2", 8, p.DataPageHeaderV2); err != nil {
				return err
			}
		}

		return nil
	})
}
