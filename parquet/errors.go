package parquet

import "github.com/hexbee-net/errors"

// Failure classes shared by every package of the module. They are returned
// wrapped, use errors.Cause to compare.
const (
	// ErrOutOfSpec reports data that breaks a rule of the format and can never be valid.
	ErrOutOfSpec = errors.Error("out of spec")
	// ErrCorruptData reports declared sizes or counts that do not match the actual content.
	ErrCorruptData = errors.Error("corrupt data")
	// ErrInvalidParameter reports arguments that violate the preconditions of an operation.
	ErrInvalidParameter = errors.Error("invalid parameter")
)
