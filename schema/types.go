package schema

import (
	"fmt"

	"github.com/hexbee-net/parquet-pages/parquet"
)

// Int96 is the legacy 96 bits integer, stored as three little-endian words.
type Int96 [3]uint32

// PhysicalType is the storage type of a leaf column. Length is only set for
// FIXED_LEN_BYTE_ARRAY.
type PhysicalType struct {
	Type   parquet.Type
	Length int
}

var (
	Boolean   = PhysicalType{Type: parquet.Type_BOOLEAN}
	Int32     = PhysicalType{Type: parquet.Type_INT32}
	Int64     = PhysicalType{Type: parquet.Type_INT64}
	Int96Type = PhysicalType{Type: parquet.Type_INT96}
	Float     = PhysicalType{Type: parquet.Type_FLOAT}
	Double    = PhysicalType{Type: parquet.Type_DOUBLE}
	ByteArray = PhysicalType{Type: parquet.Type_BYTE_ARRAY}
)

// FixedLenByteArray returns the physical type of byte arrays of the given size.
func FixedLenByteArray(size int) PhysicalType {
	return PhysicalType{Type: parquet.Type_FIXED_LEN_BYTE_ARRAY, Length: size}
}

// Size returns the encoded width of one plain value, or 0 for types without
// a fixed width (BOOLEAN is bit-packed, BYTE_ARRAY is length-prefixed).
func (t PhysicalType) Size() int {
	switch t.Type {
	case parquet.Type_INT32, parquet.Type_FLOAT:
		return 4
	case parquet.Type_INT64, parquet.Type_DOUBLE:
		return 8
	case parquet.Type_INT96:
		return 12
	case parquet.Type_FIXED_LEN_BYTE_ARRAY:
		return t.Length
	default:
		return 0
	}
}

func (t PhysicalType) String() string {
	if t.Type == parquet.Type_FIXED_LEN_BYTE_ARRAY {
		return fmt.Sprintf("%s(%d)", t.Type, t.Length)
	}

	return t.Type.String()
}

// Repetition of a field.
type Repetition int

const (
	Required Repetition = iota
	Optional
	Repeated
)

func (r Repetition) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	}

	return fmt.Sprintf("Repetition(%d)", int(r))
}

// Type is a node of a schema tree, either a *PrimitiveType or a *GroupType.
type Type interface {
	Name() string
	Repetition() Repetition

	isType()
}

// PrimitiveType is a leaf of the schema tree.
type PrimitiveType struct {
	name         string
	repetition   Repetition
	physicalType PhysicalType
}

// NewPrimitiveType creates a leaf node.
func NewPrimitiveType(name string, repetition Repetition, physicalType PhysicalType) *PrimitiveType {
	return &PrimitiveType{
		name:         name,
		repetition:   repetition,
		physicalType: physicalType,
	}
}

// FromPhysical creates an optional leaf node.
func FromPhysical(name string, physicalType PhysicalType) *PrimitiveType {
	return NewPrimitiveType(name, Optional, physicalType)
}

func (t *PrimitiveType) Name() string { return t.name }

func (t *PrimitiveType) Repetition() Repetition { return t.repetition }

// PhysicalType returns the storage type of the leaf.
func (t *PrimitiveType) PhysicalType() PhysicalType { return t.physicalType }

func (t *PrimitiveType) isType() {}

// GroupType is an inner node of the schema tree.
type GroupType struct {
	name       string
	repetition Repetition
	fields     []Type
}

// NewGroupType creates an inner node.
func NewGroupType(name string, repetition Repetition, fields ...Type) *GroupType {
	return &GroupType{
		name:       name,
		repetition: repetition,
		fields:     fields,
	}
}

func (t *GroupType) Name() string { return t.name }

func (t *GroupType) Repetition() Repetition { return t.repetition }

// Fields returns the children of the group.
func (t *GroupType) Fields() []Type { return t.fields }

func (t *GroupType) isType() {}
