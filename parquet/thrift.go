package parquet

import (
	"io"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/hexbee-net/errors"
)

// ThriftReader is implemented by the thrift structs of this package.
type ThriftReader interface {
	Read(thrift.TProtocol) error
}

// ReadThrift decodes tr from r with the compact protocol.
func ReadThrift(tr ThriftReader, r io.Reader) error {
	// Make sure we are not using any kind of buffered reader here.
	// bufio.Reader "can" reads more data ahead of time, which is a problem
	// when the page body directly follows the header.
	transport := &thrift.StreamTransport{Reader: r}
	proto := thrift.NewTCompactProtocol(transport)

	return tr.Read(proto)
}

// ThriftWriter is implemented by the thrift structs of this package.
type ThriftWriter interface {
	Write(thrift.TProtocol) error
}

// WriteThrift encodes tw to w with the compact protocol.
func WriteThrift(tw ThriftWriter, w io.Writer) error {
	transport := &thrift.StreamTransport{Writer: w}
	proto := thrift.NewTCompactProtocol(transport)

	return tw.Write(proto)
}

// /////////////////////////////////////////////////////////////////////////////

type fieldReader func(iprot thrift.TProtocol, id int16, typ thrift.TType) (read bool, err error)

// readStruct walks the fields of a struct. Fields that fr does not consume
// (unknown id or unexpected wire type) are skipped.
func readStruct(iprot thrift.TProtocol, name string, fr fieldReader) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return errors.Wrapf(err, "failed to read %s struct begin", name)
	}

	for {
		_, typ, id, err := iprot.ReadFieldBegin()
		if err != nil {
			return errors.Wrapf(err, "failed to read %s field begin", name)
		}

		if typ == thrift.STOP {
			break
		}

		read, err := fr(iprot, id, typ)
		if err != nil {
			return errors.WithFields(
				errors.Wrapf(err, "failed to read %s field", name),
				errors.Fields{
					"field-id": id,
				})
		}

		if !read {
			if err := iprot.Skip(typ); err != nil {
				return errors.Wrapf(err, "failed to skip %s field", name)
			}
		}

		if err := iprot.ReadFieldEnd(); err != nil {
			return errors.Wrapf(err, "failed to read %s field end", name)
		}
	}

	if err := iprot.ReadStructEnd(); err != nil {
		return errors.Wrapf(err, "failed to read %s struct end", name)
	}

	return nil
}

func missingField(structName, fieldName string) error {
	return errors.WithFields(
		errors.WithStack(ErrCorruptData),
		errors.Fields{
			"struct": structName,
			"field":  fieldName,
			"reason": "required field is not set",
		})
}

func readI32(iprot thrift.TProtocol) (int32, error) {
	return iprot.ReadI32()
}

func readI64List(iprot thrift.TProtocol) ([]int64, error) {
	_, size, err := iprot.ReadListBegin()
	if err != nil {
		return nil, err
	}

	if size < 0 {
		return nil, errors.WithFields(
			errors.WithStack(ErrCorruptData),
			errors.Fields{
				"list-size": size,
			})
	}

	list := make([]int64, size)
	for i := range list {
		if list[i], err = iprot.ReadI64(); err != nil {
			return nil, err
		}
	}

	return list, iprot.ReadListEnd()
}

func readBoolList(iprot thrift.TProtocol) ([]bool, error) {
	_, size, err := iprot.ReadListBegin()
	if err != nil {
		return nil, err
	}

	if size < 0 {
		return nil, errors.WithFields(
			errors.WithStack(ErrCorruptData),
			errors.Fields{
				"list-size": size,
			})
	}

	list := make([]bool, size)
	for i := range list {
		if list[i], err = iprot.ReadBool(); err != nil {
			return nil, err
		}
	}

	return list, iprot.ReadListEnd()
}

func readBinaryList(iprot thrift.TProtocol) ([][]byte, error) {
	_, size, err := iprot.ReadListBegin()
	if err != nil {
		return nil, err
	}

	if size < 0 {
		return nil, errors.WithFields(
			errors.WithStack(ErrCorruptData),
			errors.Fields{
				"list-size": size,
			})
	}

	list := make([][]byte, size)
	for i := range list {
		if list[i], err = iprot.ReadBinary(); err != nil {
			return nil, err
		}
	}

	return list, iprot.ReadListEnd()
}

// /////////////////////////////////////////////////////////////////////////////

func writeField(oprot thrift.TProtocol, name string, typ thrift.TType, id int16, fn func() error) error {
	if err := oprot.WriteFieldBegin(name, typ, id); err != nil {
		return errors.Wrapf(err, "failed to write field begin %s", name)
	}

	if err := fn(); err != nil {
		return errors.Wrapf(err, "failed to write field %s", name)
	}

	if err := oprot.WriteFieldEnd(); err != nil {
		return errors.Wrapf(err, "failed to write field end %s", name)
	}

	return nil
}

func writeI32Field(oprot thrift.TProtocol, name string, id int16, v int32) error {
	return writeField(oprot, name, thrift.I32, id, func() error {
		return oprot.WriteI32(v)
	})
}

func writeI64Field(oprot thrift.TProtocol, name string, id int16, v int64) error {
	return writeField(oprot, name, thrift.I64, id, func() error {
		return oprot.WriteI64(v)
	})
}

func writeBoolField(oprot thrift.TProtocol, name string, id int16, v bool) error {
	return writeField(oprot, name, thrift.BOOL, id, func() error {
		return oprot.WriteBool(v)
	})
}

func writeBinaryField(oprot thrift.TProtocol, name string, id int16, v []byte) error {
	return writeField(oprot, name, thrift.STRING, id, func() error {
		return oprot.WriteBinary(v)
	})
}

func writeStructField(oprot thrift.TProtocol, name string, id int16, v ThriftWriter) error {
	return writeField(oprot, name, thrift.STRUCT, id, func() error {
		return v.Write(oprot)
	})
}

func writeStruct(oprot thrift.TProtocol, name string, fields func() error) error {
	if err := oprot.WriteStructBegin(name); err != nil {
		return errors.Wrapf(err, "failed to write %s struct begin", name)
	}

	if err := fields(); err != nil {
		return err
	}

	if err := oprot.WriteFieldStop(); err != nil {
		return errors.Wrapf(err, "failed to write %s field stop", name)
	}

	if err := oprot.WriteStructEnd(); err != nil {
		return errors.Wrapf(err, "failed to write %s struct end", name)
	}

	return nil
}
