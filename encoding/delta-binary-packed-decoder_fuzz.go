//go:build gofuzz
// +build gofuzz

package encoding

import "bytes"

func FuzzDeltaBinaryPackDecoder32(data []byte) int {
	return fuzzDeltaBinaryPackDecoder(&DeltaBinaryPackDecoder32{}, data)
}

func FuzzDeltaBinaryPackDecoder64(data []byte) int {
	return fuzzDeltaBinaryPackDecoder(&DeltaBinaryPackDecoder64{}, data)
}

func fuzzDeltaBinaryPackDecoder[T DeltaInt](d *DeltaBinaryPackDecoder[T], data []byte) int {
	if err := d.Init(bytes.NewReader(data)); err != nil {
		return 0
	}

	// A stream may declare many more values than it holds.
	for i := 0; i < d.ValuesCount() && i <= 8*len(data); i++ {
		if _, err := d.Next(); err != nil {
			return 0
		}
	}

	return 1
}
