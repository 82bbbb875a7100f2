package schema

import (
	"strings"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
)

// ColumnDescriptor describes a leaf column: its primitive type, maximum
// levels and path in the schema. It is immutable and shared by the readers of
// the column.
type ColumnDescriptor struct {
	primitiveType *PrimitiveType

	maxDefLevel int16
	maxRepLevel int16

	pathInSchema []string

	root Type
}

// NewColumnDescriptor creates a descriptor for a leaf column.
func NewColumnDescriptor(primitiveType *PrimitiveType, maxDefLevel, maxRepLevel int16, pathInSchema []string, root Type) (*ColumnDescriptor, error) {
	if primitiveType == nil {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "missing primitive type",
			})
	}

	if maxDefLevel < 0 || maxRepLevel < 0 {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason":        "negative level",
				"max-def-level": maxDefLevel,
				"max-rep-level": maxRepLevel,
				"column":        primitiveType.Name(),
			})
	}

	if len(pathInSchema) == 0 {
		return nil, errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "empty path in schema",
				"column": primitiveType.Name(),
			})
	}

	if root == nil {
		root = primitiveType
	}

	path := make([]string, len(pathInSchema))
	copy(path, pathInSchema)

	return &ColumnDescriptor{
		primitiveType: primitiveType,
		maxDefLevel:   maxDefLevel,
		maxRepLevel:   maxRepLevel,
		pathInSchema:  path,
		root:          root,
	}, nil
}

// MaxDefLevel returns the maximum definition level for this column.
func (c *ColumnDescriptor) MaxDefLevel() int16 {
	return c.maxDefLevel
}

// MaxRepLevel returns the maximum repetition level for this column.
func (c *ColumnDescriptor) MaxRepLevel() int16 {
	return c.maxRepLevel
}

// PathInSchema returns a copy of the path of the column, from the root.
func (c *ColumnDescriptor) PathInSchema() []string {
	path := make([]string, len(c.pathInSchema))
	copy(path, c.pathInSchema)

	return path
}

// FlatName returns the path of the column in dotted notation.
func (c *ColumnDescriptor) FlatName() string {
	return strings.Join(c.pathInSchema, ".")
}

// Type returns the leaf type of the column.
func (c *ColumnDescriptor) Type() *PrimitiveType {
	return c.primitiveType
}

// PhysicalType is a shortcut for Type().PhysicalType().
func (c *ColumnDescriptor) PhysicalType() PhysicalType {
	return c.primitiveType.PhysicalType()
}

// Name returns the column name.
func (c *ColumnDescriptor) Name() string {
	return c.primitiveType.Name()
}

// Root returns the top-level field the column belongs to.
func (c *ColumnDescriptor) Root() Type {
	return c.root
}
