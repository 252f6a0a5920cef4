// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for scortch tensor handles.
//
// # Overview
//
// A Handle owns a dense, row-major array of one scalar type and exposes two
// properties: its dimensions and its data. Data crosses the handle boundary as
// a nested exchange Value:
//   - a Leaf is a flat run of float64 or int64 scalars (rank 1)
//   - a Nested value holds one child per index of the outermost dimension
//
// # Basic Usage
//
//	h := tensor.NewHandle()
//	_ = h.SetDimensions(tensor.Shape{2})       // staged until Finalize
//	_ = h.SetData(tensor.Int64s(7, 9))         // staged as well
//	if err := h.Finalize(); err != nil {
//	    log.Fatal(err)
//	}
//	v, _ := h.Data()                           // Leaf(int64, [7 9])
//
// # Lifecycle
//
// A new handle is Uninit: dimensions and data writes are recorded without
// allocating storage. Finalize allocates the array at the staged shape,
// applies any staged data and leaves the handle Ready. Destroy releases
// everything. A failed Finalize destroys the handle.
//
// # Supported Data Types
//
// Only float64 and int64 can be exchanged. The array layer knows other types
// (float32, int32, uint8, bool); values of those types are rejected with
// ErrUnsupportedScalarType at the boundary.
//
// # Limitations
//
// The shape of a nested value is taken from its first child at every level.
// Siblings are never checked: extra elements are dropped and missing ones
// read as zero.
package tensor
