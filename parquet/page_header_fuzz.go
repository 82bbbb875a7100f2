//go:build gofuzz
// +build gofuzz

package parquet

import "bytes"

func FuzzPageHeader(data []byte) int {
	h := &PageHeader{}

	if err := ReadThrift(h, bytes.NewReader(data)); err != nil {
		return 0
	}

	return 1
}
