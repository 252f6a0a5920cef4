package codec

import (
	"github.com/born-ml/scortch/internal/exchange"
	"github.com/born-ml/scortch/internal/tensor"
)

// Decode copies v into dst, which must already be allocated at the shape
// Infer reports for v.
//
// Each nested child i is decoded into dst.Index(i). Children beyond dst's
// outermost dimension and leaf elements beyond its innermost dimension are
// dropped; missing ones leave dst untouched. Decode is not atomic: on error dst
// may be partially written.
func Decode(dst *tensor.RawTensor, v exchange.Value) error {
	switch node := v.(type) {
	case *exchange.Leaf:
		return decodeLeaf(dst, node)
	case *exchange.Nested:
		if dst.Rank() < 2 {
			return newError(KindInvalidContainerType, "decode", "nested value where a %s leaf was expected", dst.DType())
		}
		n := min(node.Len(), dst.Shape()[0])
		for i := 0; i < n; i++ {
			if err := Decode(dst.Index(i), node.Child(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return newError(KindInvalidContainerType, "decode", "missing value")
	}
}

func decodeLeaf(dst *tensor.RawTensor, leaf *exchange.Leaf) error {
	if err := checkSupported("decode", leaf.DType()); err != nil {
		return err
	}
	if leaf.DType() != dst.DType() {
		return newError(KindInvalidContainerType, "decode", "%s leaf cannot fill a %s array", leaf.DType(), dst.DType())
	}
	if dst.Rank() != 1 {
		return newError(KindInvalidContainerType, "decode", "leaf where a rank-%d value was expected", dst.Rank())
	}

	switch dst.DType() {
	case tensor.Float64:
		copy(dst.AsFloat64(), leaf.Float64s())
	case tensor.Int64:
		copy(dst.AsInt64(), leaf.Int64s())
	default:
		return newError(KindInternal, "decode", "no decoder for %s", dst.DType())
	}
	return nil
}

// NewFromValue allocates a zero-filled array at v's inferred shape and type
// and decodes v into it. The returned array is owned by the caller.
func NewFromValue(v exchange.Value) (*tensor.RawTensor, error) {
	dtype, shape, err := Infer(v)
	if err != nil {
		return nil, err
	}

	raw, err := tensor.NewRaw(shape, dtype)
	if err != nil {
		return nil, newError(KindInternal, "decode", "allocate %v: %v", shape, err)
	}

	if err := Decode(raw, v); err != nil {
		raw.Release()
		return nil, err
	}
	return raw, nil
}
