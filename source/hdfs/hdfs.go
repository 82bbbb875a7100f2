// Package hdfs reads files stored in HDFS.
package hdfs

import (
	"github.com/colinmarc/hdfs/v2"
	"github.com/hexbee-net/errors"
)

type file struct {
	reader         *hdfs.FileReader
	client         *hdfs.Client
	externalClient bool
}

func (f *file) Size() int64 {
	return f.reader.Stat().Size()
}

func (f *file) Close() (err error) {
	if f.reader != nil {
		err = f.reader.Close()
		f.reader = nil

		if err != nil {
			return errors.Wrap(err, "failed to close HDFS reader")
		}
	}

	if f.client != nil && !f.externalClient {
		err := f.client.Close()
		f.client = nil

		if err != nil {
			return errors.Wrap(err, "failed to close HDFS client")
		}
	}

	return nil
}
