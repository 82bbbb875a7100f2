package hdfs

import (
	"context"

	"github.com/colinmarc/hdfs/v2"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/source"
)

// Reader is a source.Reader over an HDFS file.
type Reader struct {
	*source.RangeReader

	Hosts    []string
	User     string
	FilePath string
}

func NewReader(hosts []string, user string, name string) (*Reader, error) {
	client, err := hdfs.NewClient(hdfs.ClientOptions{
		Addresses: hosts,
		User:      user,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create HDFS client")
	}

	r, err := newReader(client, false, hosts, user, name)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return r, nil
}

func NewReaderWithClient(client *hdfs.Client, hosts []string, user string, name string) (*Reader, error) {
	return newReader(client, true, hosts, user, name)
}

func newReader(client *hdfs.Client, external bool, hosts []string, user string, name string) (*Reader, error) {
	reader, err := client.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create HDFS reader")
	}

	f := &file{
		reader:         reader,
		client:         client,
		externalClient: external,
	}

	return &Reader{
		RangeReader: source.NewRangeReader(context.Background(), f),
		Hosts:       hosts,
		User:        user,
		FilePath:    name,
	}, nil
}

func (f *file) ReadRange(_ context.Context, p []byte, off int64) (int, error) {
	n, err := f.reader.ReadAt(p, off)
	if err != nil {
		return n, errors.Wrap(err, "failed to read HDFS file")
	}

	return n, nil
}
