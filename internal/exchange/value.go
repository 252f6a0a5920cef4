// Package exchange defines the nested, self-describing value used to move
// tensor data across the handle boundary.
//
// A Value is either a *Leaf, a flat homogeneous run of scalars, or a *Nested,
// an ordered list of child values. Nesting depth stands in for rank; there is
// no explicit rank field.
package exchange

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/born-ml/scortch/internal/tensor"
)

// Value is the closed set of exchange value kinds: *Leaf and *Nested.
type Value interface {
	// Len returns the number of scalars in a leaf or children in a nested node.
	Len() int
	String() string

	exchangeValue()
}

// Leaf is a flat sequence of scalars of one data type.
// Scalars are stored little-endian in a buffer owned by the leaf.
type Leaf struct {
	dtype tensor.DataType
	data  []byte
}

// NewLeaf creates a leaf from raw little-endian bytes. The bytes are copied.
// Returns an error if len(raw) is not a multiple of the type's size.
func NewLeaf(dtype tensor.DataType, raw []byte) (*Leaf, error) {
	if !dtype.Valid() {
		return nil, fmt.Errorf("invalid leaf data type %d", int(dtype))
	}
	if len(raw)%dtype.Size() != 0 {
		return nil, fmt.Errorf("leaf of %s: %d bytes is not a multiple of %d", dtype, len(raw), dtype.Size())
	}
	return &Leaf{dtype: dtype, data: append([]byte(nil), raw...)}, nil
}

// Float64s creates a float64 leaf holding a copy of values.
func Float64s(values ...float64) *Leaf {
	data := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[8*i:], math.Float64bits(v))
	}
	return &Leaf{dtype: tensor.Float64, data: data}
}

// Int64s creates an int64 leaf holding a copy of values.
func Int64s(values ...int64) *Leaf {
	data := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[8*i:], uint64(v))
	}
	return &Leaf{dtype: tensor.Int64, data: data}
}

// DType returns the leaf's scalar type.
func (l *Leaf) DType() tensor.DataType {
	return l.dtype
}

// Len returns the number of scalars in the leaf.
func (l *Leaf) Len() int {
	return len(l.data) / l.dtype.Size()
}

// Bytes returns the leaf's little-endian payload.
// WARNING: the slice aliases the leaf's storage.
func (l *Leaf) Bytes() []byte {
	return l.data
}

// Float64s returns a copy of the leaf's values. Panics unless DType is Float64.
func (l *Leaf) Float64s() []float64 {
	if l.dtype != tensor.Float64 {
		panic(fmt.Sprintf("leaf dtype is %s, not float64", l.dtype))
	}
	out := make([]float64, l.Len())
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(l.data[8*i:]))
	}
	return out
}

// Int64s returns a copy of the leaf's values. Panics unless DType is Int64.
func (l *Leaf) Int64s() []int64 {
	if l.dtype != tensor.Int64 {
		panic(fmt.Sprintf("leaf dtype is %s, not int64", l.dtype))
	}
	out := make([]int64, l.Len())
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(l.data[8*i:]))
	}
	return out
}

func (l *Leaf) String() string {
	return fmt.Sprintf("Leaf[%s](%d)", l.dtype, l.Len())
}

func (*Leaf) exchangeValue() {}

// Nested is an ordered list of child values.
//
// Children are expected to share one shape and data type, but this is not
// checked: readers only consult the first child.
type Nested struct {
	children []Value
}

// NewNested creates a nested value from children.
func NewNested(children ...Value) *Nested {
	return &Nested{children: append([]Value(nil), children...)}
}

// Len returns the number of children.
func (n *Nested) Len() int {
	return len(n.children)
}

// Child returns the i-th child.
func (n *Nested) Child(i int) Value {
	return n.children[i]
}

// Children returns the children. The slice must not be modified.
func (n *Nested) Children() []Value {
	return n.children
}

func (n *Nested) String() string {
	return fmt.Sprintf("Nested(%d)", len(n.children))
}

func (*Nested) exchangeValue() {}

// Equal reports whether a and b have the same structure, types and payload.
// Float payloads are compared bitwise.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Leaf:
		y, ok := b.(*Leaf)
		return ok && x.dtype == y.dtype && bytes.Equal(x.data, y.data)
	case *Nested:
		y, ok := b.(*Nested)
		if !ok || len(x.children) != len(y.children) {
			return false
		}
		for i := range x.children {
			if !Equal(x.children[i], y.children[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
