package codec

import (
	"github.com/born-ml/scortch/internal/exchange"
	"github.com/born-ml/scortch/internal/tensor"
)

// Encode builds a nested exchange value from src.
//
// A rank-1 array becomes a leaf holding a copy of its elements; higher ranks
// become a nested value with one child per index along the outermost dimension.
func Encode(src *tensor.RawTensor) (exchange.Value, error) {
	if err := checkSupported("encode", src.DType()); err != nil {
		return nil, err
	}
	return encode(src)
}

func encode(src *tensor.RawTensor) (exchange.Value, error) {
	if src.Rank() == 1 {
		switch src.DType() {
		case tensor.Float64:
			return exchange.Float64s(src.AsFloat64()...), nil
		case tensor.Int64:
			return exchange.Int64s(src.AsInt64()...), nil
		default:
			return nil, newError(KindInternal, "encode", "no encoder for %s", src.DType())
		}
	}

	children := make([]exchange.Value, src.Shape()[0])
	for i := range children {
		child, err := encode(src.Index(i))
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return exchange.NewNested(children...), nil
}
