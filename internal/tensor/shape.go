package tensor

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrShapeTooLarge is returned when a shape's storage size does not fit in an int.
var ErrShapeTooLarge = errors.New("shape too large")

// Shape represents the dimensions of a dense array, outermost first.
type Shape []int

// NumElements returns the total number of elements described by the shape.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// ByteSize returns the storage size in bytes of the shape with elements of
// elemSize bytes. Fails with ErrShapeTooLarge instead of wrapping around.
func (s Shape) ByteSize(elemSize int) (int, error) {
	if slices.Contains(s, 0) {
		return 0, nil
	}
	n := elemSize
	for _, dim := range s {
		if dim < 0 {
			return 0, fmt.Errorf("negative dimension %d", dim)
		}
		if n > math.MaxInt/dim {
			return 0, fmt.Errorf("%w: %v", ErrShapeTooLarge, s)
		}
		n *= dim
	}
	return n, nil
}

// Validate checks that the shape has rank >= 1 and no negative dimensions.
// Zero-sized dimensions are allowed.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("shape must have at least one dimension")
	}
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Int64s converts the shape to the int64 vector used on the wire.
func (s Shape) Int64s() []int64 {
	out := make([]int64, len(s))
	for i, dim := range s {
		out[i] = int64(dim)
	}
	return out
}

// ShapeFromInt64s converts a wire dimension vector back into a Shape.
func ShapeFromInt64s(dims []int64) Shape {
	out := make(Shape, len(dims))
	for i, dim := range dims {
		out[i] = int(dim)
	}
	return out
}
