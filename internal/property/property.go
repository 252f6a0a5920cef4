// Package property exposes a tensor handle through named, dynamically typed
// properties, the way an embedding object framework sees it.
//
// Property accessors cannot return structured errors. A failed Get returns nil
// and a failed Set does nothing; in both cases the failure is logged as a
// warning and recorded for LastError. Callers that need the error itself
// should use Handle directly.
package property

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/born-ml/scortch/internal/codec"
	"github.com/born-ml/scortch/internal/exchange"
	"github.com/born-ml/scortch/internal/handle"
	"github.com/born-ml/scortch/internal/logging"
	"github.com/born-ml/scortch/internal/tensor"
)

// Property names.
const (
	Dimensions = "dimensions"
	Data       = "data"
)

// Code is the out-of-band error code reported by LastError.
type Code int

// Error codes.
const (
	CodeInternal Code = iota
	CodeInvalidDataType
	CodeInvalidProperty
)

// String returns the code's name.
func (c Code) String() string {
	switch c {
	case CodeInternal:
		return "internal"
	case CodeInvalidDataType:
		return "invalid_data_type"
	case CodeInvalidProperty:
		return "invalid_property"
	default:
		return "unknown"
	}
}

// ErrorInfo is the error recorded by the most recent failed accessor.
type ErrorInfo struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *ErrorInfo) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrUnknownProperty is returned by New for a parameter naming no property.
var ErrUnknownProperty = errors.New("unknown property")

// ParamSpec describes an installed property.
type ParamSpec struct {
	Name  string
	Nick  string
	Blurb string
}

var paramSpecs = []ParamSpec{
	{Name: Dimensions, Nick: "Dimensions", Blurb: "Dimensions of the Tensor"},
	{Name: Data, Nick: "Data", Blurb: "Data of the Tensor"},
}

// ListProperties returns the installed properties in construction order.
func ListProperties() []ParamSpec {
	return append([]ParamSpec(nil), paramSpecs...)
}

// Param is a construct-time property value.
type Param struct {
	Name  string
	Value any
}

// Object is a tensor handle behind the property surface.
type Object struct {
	handle  *handle.Handle
	logger  zerolog.Logger
	lastErr *ErrorInfo
}

// New constructs an Object with the shared logger. See NewWithLogger.
func New(params ...Param) (*Object, error) {
	return NewWithLogger(logging.Logger(), params...)
}

// NewWithLogger constructs an Object with default handle options.
func NewWithLogger(logger zerolog.Logger, params ...Param) (*Object, error) {
	return Construct(logger, nil, params)
}

// Construct builds an Object: construct-time params are staged on a fresh
// handle created with opts, then the handle is finalized. Any failure is
// returned and no object is produced.
func Construct(logger zerolog.Logger, opts []handle.Option, params []Param) (*Object, error) {
	h := handle.New(opts...)
	for _, p := range params {
		var err error
		switch p.Name {
		case Dimensions:
			err = setDimensions(h, p.Value)
		case Data:
			err = setData(h, p.Value)
		default:
			err = fmt.Errorf("%w %q", ErrUnknownProperty, p.Name)
		}
		if err != nil {
			h.Destroy()
			return nil, fmt.Errorf("construct: %w", err)
		}
	}

	if err := h.Finalize(); err != nil {
		return nil, err
	}
	return &Object{handle: h, logger: logger}, nil
}

// Handle returns the underlying handle for callers that need structured errors.
func (o *Object) Handle() *handle.Handle {
	return o.handle
}

// LastError returns the failure recorded by the most recent Get or Set, or
// nil if it succeeded.
func (o *Object) LastError() *ErrorInfo {
	return o.lastErr
}

// Get returns the named property's value: a tensor.Shape for dimensions, an
// exchange.Value for data. Failures yield nil.
func (o *Object) Get(name string) any {
	o.lastErr = nil
	switch name {
	case Dimensions:
		return o.handle.Dimensions()
	case Data:
		v, err := o.handle.Data()
		if err != nil {
			o.fail("get 'data' property", err)
			return nil
		}
		return v
	default:
		o.invalidProperty(name)
		return nil
	}
}

// Set assigns the named property. dimensions accepts tensor.Shape, []int or
// []int64; data accepts an exchange.Value. nil resets dimensions to the
// default and is ignored for data.
func (o *Object) Set(name string, value any) {
	o.lastErr = nil
	switch name {
	case Dimensions:
		if err := setDimensions(o.handle, value); err != nil {
			o.fail("set 'dimensions' property", err)
		}
	case Data:
		if err := setData(o.handle, value); err != nil {
			o.fail("set 'data' property", err)
		}
	default:
		o.invalidProperty(name)
	}
}

// Close destroys the underlying handle.
func (o *Object) Close() {
	o.handle.Destroy()
}

func (o *Object) fail(operation string, err error) {
	o.lastErr = &ErrorInfo{Code: codeFor(err), Message: err.Error()}
	o.logger.Warn().Err(err).Str("code", o.lastErr.Code.String()).Msgf("Could not %s", operation)
}

func (o *Object) invalidProperty(name string) {
	o.lastErr = &ErrorInfo{Code: CodeInvalidProperty, Message: fmt.Sprintf("invalid property %q", name)}
	o.logger.Warn().Str("property", name).Msg("invalid property id")
}

func codeFor(err error) Code {
	switch codec.KindOf(err) {
	case codec.KindUnsupportedScalarType, codec.KindInvalidContainerType:
		return CodeInvalidDataType
	default:
		return CodeInternal
	}
}

func setDimensions(h *handle.Handle, value any) error {
	switch dims := value.(type) {
	case nil:
		return h.SetDimensions(nil)
	case tensor.Shape:
		return h.SetDimensions(dims)
	case []int:
		return h.SetDimensions(tensor.Shape(dims))
	case []int64:
		return h.SetDimensions(tensor.ShapeFromInt64s(dims))
	default:
		return fmt.Errorf("%w: dimensions must be an integer vector, got %T", codec.ErrInvalidContainerType, value)
	}
}

func setData(h *handle.Handle, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case exchange.Value:
		return h.SetData(v)
	default:
		return fmt.Errorf("%w: data must be an exchange value, got %T", codec.ErrInvalidContainerType, value)
	}
}
