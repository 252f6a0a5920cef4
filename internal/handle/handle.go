// Package handle owns a dense array and exposes it through the dimensions and
// data properties, including the staged state that exists before the array
// can be allocated.
//
// Lifecycle:
//
//	Uninit ──Finalize──▶ Allocated ──(staged data applied)──▶ Ready
//	   │                     │                                 │
//	   └────────Destroy──────┴──────────────Destroy────────────┴──▶ Destroyed
//
// While Uninit, dimensions and data writes are only recorded. Finalize
// allocates a zero-filled array at the staged shape and then applies any
// staged data. A Handle is not safe for concurrent use.
package handle

import (
	"fmt"

	"github.com/born-ml/scortch/internal/codec"
	"github.com/born-ml/scortch/internal/exchange"
	"github.com/born-ml/scortch/internal/tensor"
)

// State is a handle's lifecycle state.
type State int

// Lifecycle states.
const (
	Uninit State = iota
	Allocated
	Ready
	Destroyed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Uninit:
		return "uninit"
	case Allocated:
		return "allocated"
	case Ready:
		return "ready"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// DefaultShape is the staged shape of a handle whose dimensions were never set:
// a single empty dimension.
var DefaultShape = tensor.Shape{0}

// DefaultDType is the element type of the array allocated by Finalize.
const DefaultDType = tensor.Float64

// Handle errors.
var (
	ErrDestroyed          = fmt.Errorf("%w: handle destroyed", codec.ErrInternal)
	ErrAlreadyConstructed = fmt.Errorf("%w: handle already constructed", codec.ErrInternal)
	ErrInvalidShape       = fmt.Errorf("%w: invalid shape", codec.ErrInvalidContainerType)
)

// Option configures a Handle.
type Option func(*Handle)

// WithDType sets the element type of the zero-filled array allocated by
// Finalize. Staged data, if any, replaces it with its own type.
func WithDType(dt tensor.DataType) Option {
	return func(h *Handle) {
		h.dtype = dt
	}
}

// Handle owns one dense array, or the staged shape and payload that will
// build it.
type Handle struct {
	state State
	dtype tensor.DataType

	stagedShape tensor.Shape
	stagedData  exchange.Value

	array *tensor.RawTensor
}

// New creates an Uninit handle with the default staged shape.
func New(opts ...Option) *Handle {
	h := &Handle{
		state:       Uninit,
		dtype:       DefaultDType,
		stagedShape: DefaultShape.Clone(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// State returns the handle's lifecycle state.
func (h *Handle) State() State {
	return h.state
}

// DType returns the live array's element type, or the type Finalize will
// allocate if the handle is still Uninit.
func (h *Handle) DType() tensor.DataType {
	if h.array != nil {
		return h.array.DType()
	}
	return h.dtype
}

// Raw returns the live array, or nil before Finalize and after Destroy.
// WARNING: the array is owned by the handle.
func (h *Handle) Raw() *tensor.RawTensor {
	return h.array
}

// Dimensions returns a copy of the current shape: the staged shape while
// Uninit, the live array's shape afterwards, nil once destroyed.
func (h *Handle) Dimensions() tensor.Shape {
	switch h.state {
	case Uninit:
		return h.stagedShape.Clone()
	case Allocated, Ready:
		return h.array.Shape().Clone()
	default:
		return nil
	}
}

// SetDimensions sets the shape. An empty shape resets to DefaultShape.
//
// While Uninit only the staged shape changes. Otherwise the live array is
// resized: the leading elements in flat order are kept, and elements past the
// old size have unspecified values.
func (h *Handle) SetDimensions(shape tensor.Shape) error {
	if h.state == Destroyed {
		return ErrDestroyed
	}
	if len(shape) == 0 {
		shape = DefaultShape
	}
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	if h.state == Uninit {
		h.stagedShape = shape.Clone()
		return nil
	}
	if err := h.array.Resize(shape); err != nil {
		return fmt.Errorf("%w: resize: %w", codec.ErrInternal, err)
	}
	return nil
}

// Data returns the tensor contents as a nested exchange value.
//
// While Uninit it returns the staged payload as given, unvalidated, or nil if
// there is none.
func (h *Handle) Data() (exchange.Value, error) {
	switch h.state {
	case Uninit:
		return h.stagedData, nil
	case Allocated, Ready:
		v, err := codec.Encode(h.array)
		if err != nil {
			return nil, fmt.Errorf("get data: %w", err)
		}
		return v, nil
	default:
		return nil, ErrDestroyed
	}
}

// SetData replaces the tensor contents. A nil value is ignored.
//
// While Uninit the value is staged without validation. Otherwise the array
// adopts the value's inferred shape and type, overriding any earlier
// SetDimensions. On error the previous array is left untouched.
func (h *Handle) SetData(v exchange.Value) error {
	if h.state == Destroyed {
		return ErrDestroyed
	}
	if v == nil {
		return nil
	}
	if h.state == Uninit {
		h.stagedData = v
		return nil
	}
	return h.replaceData(v)
}

// replaceData decodes into a scratch array and swaps it in only on success.
func (h *Handle) replaceData(v exchange.Value) error {
	scratch, err := codec.NewFromValue(v)
	if err != nil {
		return fmt.Errorf("set data: %w", err)
	}
	h.array.Release()
	h.array = scratch
	return nil
}

// Finalize completes construction: it allocates a zero-filled array at the
// staged shape and applies the staged payload, if any.
//
// A failure is fatal: the handle is destroyed and the error returned.
func (h *Handle) Finalize() error {
	switch h.state {
	case Uninit:
	case Destroyed:
		return ErrDestroyed
	default:
		return ErrAlreadyConstructed
	}

	raw, err := tensor.NewRaw(h.stagedShape, h.dtype)
	if err != nil {
		h.Destroy()
		return fmt.Errorf("construct: %w: %w", codec.ErrInternal, err)
	}
	h.array = raw
	h.state = Allocated

	staged := h.stagedData
	h.stagedData = nil
	h.stagedShape = nil
	if staged != nil {
		if err := h.replaceData(staged); err != nil {
			h.Destroy()
			return fmt.Errorf("construct: %w", err)
		}
	}

	h.state = Ready
	return nil
}

// Destroy releases the live array and any staged state. It is safe to call
// more than once.
func (h *Handle) Destroy() {
	if h.array != nil {
		h.array.Release()
		h.array = nil
	}
	h.stagedShape = nil
	h.stagedData = nil
	h.state = Destroyed
}
