package tensor

import (
	"fmt"
	"unsafe"
)

// RawTensor is a dense, row-major array of a single data type.
//
// A RawTensor either owns its buffer or is a sub-view produced by Index,
// in which case it aliases a slice of its parent's storage. Views must not
// outlive the operation that created them and cannot be resized.
type RawTensor struct {
	buffer []byte   // Backing storage, shared with views
	shape  Shape    // Tensor dimensions
	stride []int    // Memory strides (row-major)
	dtype  DataType // Runtime type information
	offset int      // Byte offset for views
	view   bool
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated and zero-filled.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("invalid data type %d", int(dtype))
	}
	byteSize, err := shape.ByteSize(dtype.Size())
	if err != nil {
		return nil, err
	}

	return &RawTensor{
		buffer: make([]byte, byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Rank returns the number of dimensions.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// IsView reports whether r aliases another tensor's storage.
func (r *RawTensor) IsView() bool {
	return r.view
}

// Data returns the raw bytes covered by this tensor.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.buffer[r.offset : r.offset+r.ByteSize()]
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	n := r.NumElements()
	if n == 0 {
		return []float64{}
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.buffer[r.offset])), n)
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("tensor dtype is %s, not int64", r.dtype))
	}
	n := r.NumElements()
	if n == 0 {
		return []int64{}
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*int64)(unsafe.Pointer(&r.buffer[r.offset])), n)
}

// Index returns the i-th slice along the outermost dimension as a view of
// rank-1 fewer dimensions. The view shares storage with r.
// Panics if r has rank 1 or i is out of bounds.
func (r *RawTensor) Index(i int) *RawTensor {
	if len(r.shape) < 2 {
		panic(fmt.Sprintf("cannot index a rank-%d tensor", len(r.shape)))
	}
	if i < 0 || i >= r.shape[0] {
		panic(fmt.Sprintf("index %d out of bounds for dimension 0 (size %d)", i, r.shape[0]))
	}

	inner := r.shape[1:].Clone()
	return &RawTensor{
		buffer: r.buffer,
		shape:  inner,
		stride: inner.ComputeStrides(),
		dtype:  r.dtype,
		offset: r.offset + i*r.stride[0]*r.dtype.Size(),
		view:   true,
	}
}

// Resize changes the tensor's shape, reallocating storage. On error the
// tensor is unchanged.
//
// The first min(old, new) elements in flat order are preserved. Elements past
// the old size have unspecified values.
func (r *RawTensor) Resize(shape Shape) error {
	if r.view {
		return fmt.Errorf("cannot resize a view")
	}
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("invalid shape: %w", err)
	}

	byteSize, err := shape.ByteSize(r.dtype.Size())
	if err != nil {
		return err
	}
	if byteSize != len(r.buffer) {
		buffer := make([]byte, byteSize)
		copy(buffer, r.buffer)
		r.buffer = buffer
	}
	r.shape = shape.Clone()
	r.stride = shape.ComputeStrides()
	return nil
}

// Clone creates a deep copy of the tensor. Cloning a view yields an owning tensor.
func (r *RawTensor) Clone() *RawTensor {
	buffer := make([]byte, r.ByteSize())
	copy(buffer, r.Data())
	return &RawTensor{
		buffer: buffer,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
	}
}

// Release drops the tensor's storage. The tensor must not be used afterwards.
func (r *RawTensor) Release() {
	r.buffer = nil
	r.shape = nil
	r.stride = nil
}

// String returns a human-readable representation of the tensor.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v", r.dtype, r.shape)
}
