// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/scortch/internal/codec"
	"github.com/born-ml/scortch/internal/exchange"
	"github.com/born-ml/scortch/internal/handle"
	"github.com/born-ml/scortch/internal/logging"
	"github.com/born-ml/scortch/internal/property"
	"github.com/born-ml/scortch/internal/tensor"
)

// Type aliases for public API

// DataType represents the underlying data type of a dense array.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of a tensor, outermost first.
// Example: Shape{2, 3, 4} has 2 rows, 3 columns and 4 stacks.
type Shape = tensor.Shape

// Value is a nested exchange value: a *Leaf or a *Nested.
type Value = exchange.Value

// Leaf is a flat, homogeneous run of scalars.
type Leaf = exchange.Leaf

// Nested is an ordered list of child values.
type Nested = exchange.Nested

// Handle owns one dense array and its staged construction state.
type Handle = handle.Handle

// State is a handle's lifecycle state.
type State = handle.State

// Lifecycle states.
const (
	Uninit    State = handle.Uninit
	Allocated State = handle.Allocated
	Ready     State = handle.Ready
	Destroyed State = handle.Destroyed
)

// HandleOption configures a Handle.
type HandleOption = handle.Option

// Object exposes a handle through the named properties "dimensions" and
// "data". Accessor failures are reported by LastError rather than returned.
type Object = property.Object

// Param is a construct-time property value.
type Param = property.Param

// ErrorInfo is the failure recorded by the most recent Object accessor.
type ErrorInfo = property.ErrorInfo

// ErrorCode classifies an ErrorInfo.
type ErrorCode = property.Code

// Object error codes.
const (
	CodeInternal        ErrorCode = property.CodeInternal
	CodeInvalidDataType ErrorCode = property.CodeInvalidDataType
	CodeInvalidProperty ErrorCode = property.CodeInvalidProperty
)

// Property names.
const (
	PropertyDimensions = property.Dimensions
	PropertyData       = property.Data
)

// Errors. Use errors.Is to test for them.
var (
	ErrUnsupportedScalarType = codec.ErrUnsupportedScalarType
	ErrInvalidContainerType  = codec.ErrInvalidContainerType
	ErrInternal              = codec.ErrInternal
	ErrDestroyed             = handle.ErrDestroyed
	ErrAlreadyConstructed    = handle.ErrAlreadyConstructed
	ErrInvalidShape          = handle.ErrInvalidShape
	ErrShapeTooLarge         = tensor.ErrShapeTooLarge
	ErrUnknownProperty       = property.ErrUnknownProperty
)

// NewHandle creates an Uninit handle with dimensions [0].
func NewHandle(opts ...HandleOption) *Handle {
	return handle.New(opts...)
}

// WithDType sets the element type allocated by Finalize when no data is staged.
func WithDType(dt DataType) HandleOption {
	return handle.WithDType(dt)
}

// NewObject constructs a ready Object, applying params in order before
// finalizing. Failures are returned and no object is produced.
func NewObject(params ...Param) (*Object, error) {
	return property.New(params...)
}

// NewObjectWithOptions is NewObject with handle options, such as WithDType.
func NewObjectWithOptions(opts []HandleOption, params ...Param) (*Object, error) {
	return property.Construct(logging.Logger(), opts, params)
}

// Float64s creates a float64 leaf.
func Float64s(values ...float64) *Leaf {
	return exchange.Float64s(values...)
}

// Int64s creates an int64 leaf.
func Int64s(values ...int64) *Leaf {
	return exchange.Int64s(values...)
}

// NewLeaf creates a leaf from little-endian bytes of any data type.
func NewLeaf(dtype DataType, raw []byte) (*Leaf, error) {
	return exchange.NewLeaf(dtype, raw)
}

// NewNested creates a nested value.
func NewNested(children ...Value) *Nested {
	return exchange.NewNested(children...)
}

// Equal reports whether two values have identical structure, types and payload.
func Equal(a, b Value) bool {
	return exchange.Equal(a, b)
}

// Infer returns the data type and shape a value would decode to.
func Infer(v Value) (DataType, Shape, error) {
	return codec.Infer(v)
}
