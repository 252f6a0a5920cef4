package wire

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/born-ml/scortch/internal/exchange"
)

// ReadFile reads a value from path. Files ending in .json use the JSON form;
// anything else is read as binary.
func ReadFile(path string) (exchange.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var v exchange.Value
	if isJSON(path) {
		v, err = DecodeJSON(data)
	} else {
		v, err = ReadBinary(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return v, nil
}

// WriteFile writes v to path, choosing the form the same way as ReadFile.
func WriteFile(path string, v exchange.Value) error {
	var data []byte
	if isJSON(path) {
		encoded, err := EncodeJSON(v)
		if err != nil {
			return err
		}
		data = append(encoded, '\n')
	} else {
		var buf bytes.Buffer
		if err := WriteBinary(&buf, v); err != nil {
			return err
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: output files are not secrets
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
