// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/scortch/internal/codec"
	"github.com/born-ml/scortch/internal/tensor"
)

// RawTensor is the dense array owned by a Handle.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType()
//   - Zero-copy typed access via AsFloat64(), AsInt64()
//   - Sub-views along the outermost dimension via Index()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Int64)
//	row := raw.Index(1).AsInt64() // aliases raw's storage
type RawTensor = tensor.RawTensor

// NewRaw allocates a zero-filled dense array.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// Encode converts a dense array into a nested exchange value.
func Encode(raw *RawTensor) (Value, error) {
	return codec.Encode(raw)
}

// Decode builds a new dense array from a nested exchange value.
func Decode(v Value) (*RawTensor, error) {
	return codec.NewFromValue(v)
}
