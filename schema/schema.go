// Package schema describes the leaf columns of a file: physical types,
// nesting levels and paths.
package schema

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
)

// Descriptor is a schema flattened to its leaf columns.
type Descriptor struct {
	name    string
	fields  []Type
	columns []*ColumnDescriptor
	byName  map[string]int
}

// NewDescriptor flattens the schema made of the given top-level fields.
func NewDescriptor(name string, fields ...Type) (*Descriptor, error) {
	d := &Descriptor{
		name:   name,
		fields: fields,
		byName: make(map[string]int),
	}

	for _, f := range fields {
		if err := d.addType(f, f, nil, 0, 0); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (d *Descriptor) addType(t, root Type, path []string, dLevel, rLevel int16) error {
	if t == nil {
		return errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "nil field",
				"path":   path,
			})
	}

	if t.Name() == "" {
		return errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason": "name in schema is empty",
				"path":   path,
			})
	}

	if t.Repetition() != Required {
		dLevel++
	}

	if t.Repetition() == Repeated {
		rLevel++
	}

	path = append(path[:len(path):len(path)], t.Name())

	switch node := t.(type) {
	case *GroupType:
		if len(node.fields) == 0 {
			return errors.WithFields(
				errors.WithStack(parquet.ErrInvalidParameter),
				errors.Fields{
					"reason": "group without children",
					"path":   path,
				})
		}

		for _, child := range node.fields {
			if err := d.addType(child, root, path, dLevel, rLevel); err != nil {
				return err
			}
		}

	case *PrimitiveType:
		col, err := NewColumnDescriptor(node, dLevel, rLevel, path, root)
		if err != nil {
			return err
		}

		flatName := col.FlatName()
		if _, ok := d.byName[flatName]; ok {
			return errors.WithFields(
				errors.WithStack(parquet.ErrInvalidParameter),
				errors.Fields{
					"reason": "duplicate column",
					"name":   flatName,
				})
		}

		d.byName[flatName] = len(d.columns)
		d.columns = append(d.columns, col)
	}

	return nil
}

// Name returns the name of the schema root.
func (d *Descriptor) Name() string {
	return d.name
}

// Fields returns the top-level fields.
func (d *Descriptor) Fields() []Type {
	return d.fields
}

// Columns returns the leaf columns, depth first.
func (d *Descriptor) Columns() []*ColumnDescriptor {
	return d.columns
}

// Column returns the i-th leaf column.
func (d *Descriptor) Column(i int) *ColumnDescriptor {
	return d.columns[i]
}

// Lookup returns a leaf column by its dotted name.
func (d *Descriptor) Lookup(flatName string) (*ColumnDescriptor, bool) {
	i, ok := d.byName[flatName]
	if !ok {
		return nil, false
	}

	return d.columns[i], true
}
