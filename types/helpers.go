package types

import (
	"io"
	"reflect"

	"github.com/hexbee-net/errors"
)

func writeFull(w io.Writer, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	cnt, err := w.Write(buf)
	if err != nil {
		return err
	}

	if cnt != len(buf) {
		return errors.WithFields(
			errors.New("invalid number of bytes written"),
			errors.Fields{
				"expected": len(buf),
				"actual":   cnt,
			})
	}

	return nil
}

func invalidType(expected string, v interface{}) error {
	actual := "nil"
	if v != nil {
		actual = reflect.TypeOf(v).String()
	}

	return errors.WithFields(
		errors.WithStack(errInvalidType),
		errors.Fields{
			"expected": expected,
			"actual":   actual,
		})
}
