// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/scortch/tensor"
)

// TestHandleAPI walks a handle through its public lifecycle.
func TestHandleAPI(t *testing.T) {
	h := tensor.NewHandle()
	if h.State() != tensor.Uninit {
		t.Fatalf("State() = %v, want uninit", h.State())
	}

	if err := h.SetDimensions(tensor.Shape{2}); err != nil {
		t.Fatalf("SetDimensions failed: %v", err)
	}
	if err := h.SetData(tensor.Int64s(7, 9)); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	if err := h.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if !h.Dimensions().Equal(tensor.Shape{2}) {
		t.Errorf("Dimensions() = %v, want [2]", h.Dimensions())
	}
	v, err := h.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if !tensor.Equal(v, tensor.Int64s(7, 9)) {
		t.Errorf("Data() = %v, want Leaf(int64, [7 9])", v)
	}

	h.Destroy()
	if _, err := h.Data(); !errors.Is(err, tensor.ErrDestroyed) {
		t.Errorf("Data() after Destroy error = %v, want ErrDestroyed", err)
	}
}

// TestRawTensorAPI verifies the RawTensor alias and the codec entry points.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float64)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	data := raw.AsFloat64()
	for i := range data {
		data[i] = float64(i)
	}

	v, err := tensor.Encode(raw)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	dtype, shape, err := tensor.Infer(v)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if dtype != tensor.Float64 || !shape.Equal(tensor.Shape{2, 3}) {
		t.Errorf("Infer() = %v %v, want float64 [2 3]", dtype, shape)
	}

	back, err := tensor.Decode(v)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	for i, got := range back.AsFloat64() {
		if got != float64(i) {
			t.Errorf("element %d = %v, want %v", i, got, float64(i))
		}
	}
}

// TestUnsupportedType verifies that non-exchangeable types are rejected.
func TestUnsupportedType(t *testing.T) {
	leaf, err := tensor.NewLeaf(tensor.Bool, []byte{1, 0, 1})
	if err != nil {
		t.Fatalf("NewLeaf failed: %v", err)
	}
	if _, err := tensor.Decode(leaf); !errors.Is(err, tensor.ErrUnsupportedScalarType) {
		t.Errorf("Decode error = %v, want ErrUnsupportedScalarType", err)
	}
}

// TestObjectAPI drives the property surface through the public package.
func TestObjectAPI(t *testing.T) {
	obj, err := tensor.NewObjectWithOptions(
		[]tensor.HandleOption{tensor.WithDType(tensor.Int64)},
		tensor.Param{Name: tensor.PropertyDimensions, Value: []int{2}},
	)
	if err != nil {
		t.Fatalf("NewObjectWithOptions failed: %v", err)
	}
	defer obj.Close()

	if got, ok := obj.Get(tensor.PropertyData).(tensor.Value); !ok || !tensor.Equal(got, tensor.Int64s(0, 0)) {
		t.Errorf("Get(data) = %v, want int64 zeros", got)
	}

	obj.Set(tensor.PropertyData, tensor.NewNested())
	info := obj.LastError()
	if info == nil || info.Code != tensor.CodeInvalidDataType {
		t.Errorf("LastError() = %v, want invalid_data_type", info)
	}

	obj.Set(tensor.PropertyDimensions, []int64{3})
	if info := obj.LastError(); info != nil {
		t.Errorf("LastError() = %v after valid Set, want nil", info)
	}
	if got := obj.Get(tensor.PropertyDimensions); !got.(tensor.Shape).Equal(tensor.Shape{3}) {
		t.Errorf("Get(dimensions) = %v, want [3]", got)
	}
}

// TestNewObjectErrors checks construct failures surface as errors.
func TestNewObjectErrors(t *testing.T) {
	if _, err := tensor.NewObject(tensor.Param{Name: "rank"}); !errors.Is(err, tensor.ErrUnknownProperty) {
		t.Errorf("NewObject(rank) error = %v, want ErrUnknownProperty", err)
	}

	obj, err := tensor.NewObject()
	if err != nil {
		t.Fatalf("NewObject failed: %v", err)
	}
	defer obj.Close()
	obj.Set("rank", 3)
	if info := obj.LastError(); info == nil || info.Code != tensor.CodeInvalidProperty {
		t.Errorf("LastError() = %v, want invalid_property", info)
	}
}
