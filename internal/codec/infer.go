package codec

import (
	"slices"

	"github.com/born-ml/scortch/internal/exchange"
	"github.com/born-ml/scortch/internal/tensor"
)

// EmptyShape is returned by Infer when no leaf can be reached.
var EmptyShape = tensor.Shape{0}

// Infer derives the scalar type and shape (outermost first) of v without
// materializing an array.
//
// Only the first child of each nested node is inspected; siblings are assumed
// to match it. A nested node with no children has no leaf to take a type from
// and yields (tensor.Unknown, EmptyShape, ErrUnsupportedScalarType).
func Infer(v exchange.Value) (tensor.DataType, tensor.Shape, error) {
	dtype, dims, err := inferInnermostFirst(v)
	if err != nil {
		return tensor.Unknown, EmptyShape.Clone(), err
	}
	slices.Reverse(dims)
	return dtype, dims, nil
}

// inferInnermostFirst builds the shape while unwinding, so the leaf length
// comes first and the root's child count last.
func inferInnermostFirst(v exchange.Value) (tensor.DataType, tensor.Shape, error) {
	switch node := v.(type) {
	case *exchange.Leaf:
		if err := checkSupported("infer", node.DType()); err != nil {
			return tensor.Unknown, nil, err
		}
		return node.DType(), tensor.Shape{node.Len()}, nil
	case *exchange.Nested:
		if node.Len() == 0 {
			return tensor.Unknown, nil, newError(KindUnsupportedScalarType, "infer", "nested value has no children")
		}
		dtype, dims, err := inferInnermostFirst(node.Child(0))
		if err != nil {
			return tensor.Unknown, nil, err
		}
		return dtype, append(dims, node.Len()), nil
	default:
		return tensor.Unknown, nil, newError(KindInvalidContainerType, "infer", "missing value")
	}
}
