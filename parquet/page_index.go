package parquet

import (
	"github.com/apache/thrift/lib/go/thrift"
)

// PageLocation is an entry of an offset index.
type PageLocation struct {
	// Offset of the page in the file.
	Offset int64
	// Size of the page, including the header.
	CompressedPageSize int32
	// Index of the first row of the page within the row group.
	FirstRowIndex int64
}

func (p *PageLocation) Read(iprot thrift.TProtocol) error {
	var isSetOffset, isSetSize, isSetFirstRow bool

	err := readStruct(iprot, "PageLocation", func(iprot thrift.TProtocol, id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.I64:
			p.Offset, err = iprot.ReadI64()
			isSetOffset = true
		case id == 2 && typ == thrift.I32:
			p.CompressedPageSize, err = readI32(iprot)
			isSetSize = true
		case id == 3 && typ == thrift.I64:
			p.FirstRowIndex, err = iprot.ReadI64()
			isSetFirstRow = true
		default:
			return false, nil
		}

		return true, err
	})
	if err != nil {
		return err
	}

	switch {
	case !isSetOffset:
		return missingField("PageLocation", "offset")
	case !isSetSize:
		return missingField("PageLocation", "compressed_page_size")
	case !isSetFirstRow:
		return missingField("PageLocation", "first_row_index")
	}

	return nil
}

func (p *PageLocation) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "PageLocation", func() error {
		if err := writeI64Field(oprot, "offset", 1, p.Offset); err != nil {
			return err
		}

		if err := writeI32Field(oprot, "compressed_page_size", 2, p.CompressedPageSize); err != nil {
			return err
		}

		return writeI64Field(oprot, "first_row_index", 3, p.FirstRowIndex)
	})
}

// /////////////////////////////////////////////////////////////////////////////

// OffsetIndex lists the location of every data page of a column chunk.
type OffsetIndex struct {
	PageLocations []*PageLocation
}

func (p *OffsetIndex) Read(iprot thrift.TProtocol) error {
	var isSetLocations bool

	err := readStruct(iprot, "OffsetIndex", func(iprot thrift.TProtocol, id int16, typ thrift.TType) (bool, error) {
		if id != 1 || typ != thrift.LIST {
			return false, nil
		}

		_, size, err := iprot.ReadListBegin()
		if err != nil {
			return true, err
		}

		if size < 0 {
			return true, missingField("OffsetIndex", "page_locations")
		}

		p.PageLocations = make([]*PageLocation, size)
		for i := range p.PageLocations {
			p.PageLocations[i] = &PageLocation{}
			if err := p.PageLocations[i].Read(iprot); err != nil {
				return true, err
			}
		}

		isSetLocations = true

		return true, iprot.ReadListEnd()
	})
	if err != nil {
		return err
	}

	if !isSetLocations {
		return missingField("OffsetIndex", "page_locations")
	}

	return nil
}

func (p *OffsetIndex) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "OffsetIndex", func() error {
		return writeField(oprot, "page_locations", thrift.LIST, 1, func() error {
			if err := oprot.WriteListBegin(thrift.STRUCT, len(p.PageLocations)); err != nil {
				return err
			}

			for _, l := range p.PageLocations {
				if err := l.Write(oprot); err != nil {
					return err
				}
			}

			return oprot.WriteListEnd()
		})
	})
}

// /////////////////////////////////////////////////////////////////////////////

// ColumnIndex holds the per-page statistics of a column chunk. Min and max
// values are plain encoded, except byte arrays which are stored without the
// length prefix.
type ColumnIndex struct {
	NullPages     []bool
	MinValues     [][]byte
	MaxValues     [][]byte
	BoundaryOrder BoundaryOrder
	NullCounts    []int64
}

func (p *ColumnIndex) Read(iprot thrift.TProtocol) error {
	var isSet [4]bool

	err := readStruct(iprot, "ColumnIndex", func(iprot thrift.TProtocol, id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.LIST:
			p.NullPages, err = readBoolList(iprot)
		case id == 2 && typ == thrift.LIST:
			p.MinValues, err = readBinaryList(iprot)
		case id == 3 && typ == thrift.LIST:
			p.MaxValues, err = readBinaryList(iprot)
		case id == 4 && typ == thrift.I32:
			var v int32
			v, err = readI32(iprot)
			p.BoundaryOrder = BoundaryOrder(v)
		case id == 5 && typ == thrift.LIST:
			p.NullCounts, err = readI64List(iprot)
			return true, err
		default:
			return false, nil
		}

		isSet[id-1] = true

		return true, err
	})
	if err != nil {
		return err
	}

	names := [...]string{"null_pages", "min_values", "max_values", "boundary_order"}
	for i := range isSet {
		if !isSet[i] {
			return missingField("ColumnIndex", names[i])
		}
	}

	return nil
}

func (p *ColumnIndex) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "ColumnIndex", func() error {
		err := writeField(oprot, "null_pages", thrift.LIST, 1, func() error {
			if err := oprot.WriteListBegin(thrift.BOOL, len(p.NullPages)); err != nil {
				return err
			}

			for _, v := range p.NullPages {
				if err := oprot.WriteBool(v); err != nil {
					return err
				}
			}

			return oprot.WriteListEnd()
		})
		if err != nil {
			return err
		}

		if err := writeBinaryListField(oprot, "min_values", 2, p.MinValues); err != nil {
			return err
		}

		if err := writeBinaryListField(oprot, "max_values", 3, p.MaxValues); err != nil {
			return err
		}

		if err := writeI32Field(oprot, "boundary_order", 4, int32(p.BoundaryOrder)); err != nil {
			return err
		}

		if p.NullCounts == nil {
			return nil
		}

		return writeField(oprot, "null_counts", thrift.LIST, 5, func() error {
			if err := oprot.WriteListBegin(thrift.I64, len(p.NullCounts)); err != nil {
				return err
			}

			for _, v := range p.NullCounts {
				if err := oprot.WriteI64(v); err != nil {
					return err
				}
			}

			return oprot.WriteListEnd()
		})
	})
}

func writeBinaryListField(oprot thrift.TProtocol, name string, id int16, values [][]byte) error {
	return writeField(oprot, name, thrift.LIST, id, func() error {
		if err := oprot.WriteListBegin(thrift.STRING, len(values)); err != nil {
			return err
		}

		for _, v := range values {
			if err := oprot.WriteBinary(v); err != nil {
				return err
			}
		}

		return oprot.WriteListEnd()
	})
}
