package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/born-ml/scortch/internal/codec"
	"github.com/born-ml/scortch/internal/exchange"
	"github.com/born-ml/scortch/internal/tensor"
)

// MaxDepth bounds the nesting depth accepted by the decoders.
const MaxDepth = 64

// jsonLeaf is the JSON object form of a leaf.
type jsonLeaf struct {
	Type   string            `json:"type"`
	Values []json.RawMessage `json:"values"`
}

// EncodeJSON writes v in the JSON form.
func EncodeJSON(v exchange.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, v, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v exchange.Value, depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}
	switch node := v.(type) {
	case *exchange.Leaf:
		tag, _, err := codec.WireTagFor(node.DType())
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, `{"type":%q,"values":[`, string(rune(tag)))
		switch node.DType() {
		case tensor.Float64:
			for i, f := range node.Float64s() {
				if math.IsNaN(f) || math.IsInf(f, 0) {
					return fmt.Errorf("%w: %v", ErrNotFinite, f)
				}
				if i > 0 {
					buf.WriteByte(',')
				}
				buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
			}
		case tensor.Int64:
			for i, n := range node.Int64s() {
				if i > 0 {
					buf.WriteByte(',')
				}
				buf.WriteString(strconv.FormatInt(n, 10))
			}
		}
		buf.WriteString("]}")
		return nil
	case *exchange.Nested:
		buf.WriteByte('[')
		for i, child := range node.Children() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, child, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return fmt.Errorf("%w: missing value", ErrMalformed)
	}
}

// DecodeJSON parses the JSON form.
func DecodeJSON(data []byte) (exchange.Value, error) {
	return decodeJSON(json.RawMessage(bytes.TrimSpace(data)), 0)
}

func decodeJSON(raw json.RawMessage, depth int) (exchange.Value, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		children := make([]exchange.Value, len(items))
		for i, item := range items {
			child, err := decodeJSON(bytes.TrimSpace(item), depth+1)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return exchange.NewNested(children...), nil
	case '{':
		var leaf jsonLeaf
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&leaf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return leafFromJSON(leaf)
	default:
		return nil, fmt.Errorf("%w: expected array or object", ErrMalformed)
	}
}

func leafFromJSON(leaf jsonLeaf) (exchange.Value, error) {
	if len(leaf.Type) != 1 {
		return nil, fmt.Errorf("%w: leaf type %q", ErrMalformed, leaf.Type)
	}
	dtype, err := codec.DataTypeForTag(codec.WireTag(leaf.Type[0]))
	if err != nil {
		return nil, err
	}

	switch dtype {
	case tensor.Float64:
		values := make([]float64, len(leaf.Values))
		for i, raw := range leaf.Values {
			if err := json.Unmarshal(raw, &values[i]); err != nil {
				return nil, fmt.Errorf("%w: values[%d]: %v", ErrMalformed, i, err)
			}
		}
		return exchange.Float64s(values...), nil
	case tensor.Int64:
		values := make([]int64, len(leaf.Values))
		for i, raw := range leaf.Values {
			if err := json.Unmarshal(raw, &values[i]); err != nil {
				return nil, fmt.Errorf("%w: values[%d]: %v", ErrMalformed, i, err)
			}
		}
		return exchange.Int64s(values...), nil
	default:
		return nil, fmt.Errorf("%w: no JSON form for %s", ErrMalformed, dtype)
	}
}
