// Package codec converts between dense arrays and nested exchange values.
//
// The package has four parts: a type registry that decides which scalar types
// may cross the boundary, a shape inferer, a decoder that fills a dense array
// from a nested value, and an encoder that builds a nested value from an array.
package codec

import "github.com/born-ml/scortch/internal/tensor"

// WireTag identifies a leaf's scalar type on the wire.
type WireTag byte

// Leaf tags for the registered scalar types.
const (
	TagFloat64 WireTag = 'd'
	TagInt64   WireTag = 'x'
)

type registryEntry struct {
	tag   WireTag
	width int
}

// No widening or narrowing: a type is either listed here or rejected.
var registry = map[tensor.DataType]registryEntry{
	tensor.Float64: {tag: TagFloat64, width: 8},
	tensor.Int64:   {tag: TagInt64, width: 8},
}

// WireTagFor returns the leaf tag and byte width for dt.
// Fails with ErrUnsupportedScalarType for unregistered types.
func WireTagFor(dt tensor.DataType) (WireTag, int, error) {
	e, ok := registry[dt]
	if !ok {
		return 0, 0, newError(KindUnsupportedScalarType, "registry", "cannot handle scalar type %s", dt)
	}
	return e.tag, e.width, nil
}

// DataTypeForTag is the inverse of WireTagFor.
func DataTypeForTag(tag WireTag) (tensor.DataType, error) {
	for dt, e := range registry {
		if e.tag == tag {
			return dt, nil
		}
	}
	return tensor.Unknown, newError(KindUnsupportedScalarType, "registry", "unknown leaf tag %q", byte(tag))
}

// Supported reports whether dt is registered.
func Supported(dt tensor.DataType) bool {
	_, ok := registry[dt]
	return ok
}

func checkSupported(op string, dt tensor.DataType) error {
	if !Supported(dt) {
		return newError(KindUnsupportedScalarType, op, "cannot handle scalar type %s", dt)
	}
	return nil
}
