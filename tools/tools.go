//go:build tools
// +build tools

// Package tools pins the fuzzing and mock generation tools:
//
//	go-fuzz-build -tags gofuzz -func FuzzPageHeader ./parquet
//	go-fuzz-build -tags gofuzz -func FuzzBinaryDictionary ./page
//	go generate ./internal/fakes
package tools

import (
	_ "github.com/dvyukov/go-fuzz/go-fuzz"
	_ "github.com/dvyukov/go-fuzz/go-fuzz-build"
	_ "github.com/gojuno/minimock/v3/cmd/minimock"
)
