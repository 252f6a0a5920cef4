package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/born-ml/scortch/internal/codec"
	"github.com/born-ml/scortch/internal/exchange"
	"github.com/born-ml/scortch/internal/tensor"
)

// Format constants.
const (
	MagicBytes    = "SCXV"
	FormatVersion = 1

	// TagNested marks a nested node in the binary form.
	TagNested byte = 'a'

	// MaxCount bounds the child or scalar count of a single node.
	MaxCount = 1 << 28
)

// WriteBinary writes v in the binary form.
func WriteBinary(w io.Writer, v exchange.Value) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(MagicBytes); err != nil {
		return fmt.Errorf("failed to write magic: %w", err)
	}
	if err := bw.WriteByte(FormatVersion); err != nil {
		return fmt.Errorf("failed to write version: %w", err)
	}
	if err := writeNode(bw, v, 0); err != nil {
		return err
	}
	return bw.Flush()
}

func writeNode(w *bufio.Writer, v exchange.Value, depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}

	var scratch [binary.MaxVarintLen64]byte
	switch node := v.(type) {
	case *exchange.Leaf:
		tag, _, err := codec.WireTagFor(node.DType())
		if err != nil {
			return err
		}
		if err := w.WriteByte(byte(tag)); err != nil {
			return err
		}
		n := binary.PutUvarint(scratch[:], uint64(node.Len()))
		if _, err := w.Write(scratch[:n]); err != nil {
			return err
		}
		// Leaf payloads are already little-endian.
		_, err = w.Write(node.Bytes())
		return err
	case *exchange.Nested:
		if err := w.WriteByte(TagNested); err != nil {
			return err
		}
		n := binary.PutUvarint(scratch[:], uint64(node.Len()))
		if _, err := w.Write(scratch[:n]); err != nil {
			return err
		}
		for _, child := range node.Children() {
			if err := writeNode(w, child, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: missing value", ErrMalformed)
	}
}

// ReadBinary reads a value in the binary form.
func ReadBinary(r io.Reader) (exchange.Value, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if string(magic) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	version, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	return readNode(br, 0)
}

func readNode(r *bufio.Reader, depth int) (exchange.Value, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}

	tag, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: tag: %v", ErrMalformed, err)
	}
	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: count: %v", ErrMalformed, err)
	}
	if count > MaxCount {
		return nil, fmt.Errorf("%w: count %d", ErrTooLarge, count)
	}

	if tag == TagNested {
		// count is untrusted until the children actually arrive.
		children := make([]exchange.Value, 0, min(count, 1024))
		for i := uint64(0); i < count; i++ {
			child, err := readNode(r, depth+1)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return exchange.NewNested(children...), nil
	}

	dtype, err := codec.DataTypeForTag(codec.WireTag(tag))
	if err != nil {
		return nil, err
	}
	return readLeaf(r, dtype, int(count))
}

func readLeaf(r io.Reader, dtype tensor.DataType, count int) (exchange.Value, error) {
	size := int64(count) * int64(dtype.Size())
	payload, err := io.ReadAll(io.LimitReader(r, size))
	if err != nil {
		return nil, fmt.Errorf("%w: leaf payload: %v", ErrMalformed, err)
	}
	if int64(len(payload)) != size {
		return nil, fmt.Errorf("%w: leaf payload: %v", ErrMalformed, io.ErrUnexpectedEOF)
	}
	return exchange.NewLeaf(dtype, payload)
}
