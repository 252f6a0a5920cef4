package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scortch/internal/tensor"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)

	assert.Equal(t, "float64", cfg.Tensor.DType)
	assert.Equal(t, tensor.Float64, cfg.Tensor.DataType())
	assert.Nil(t, cfg.Tensor.Shape())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParseTensorSection(t *testing.T) {
	cfg, err := Parse(`
[tensor]
dtype = "int64"
dimensions = [2, 3]

[log]
level = "debug"
no_color = true
`)
	require.NoError(t, err)

	assert.Equal(t, tensor.Int64, cfg.Tensor.DataType())
	assert.Equal(t, tensor.Shape{2, 3}, cfg.Tensor.Shape())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.NoColor)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown dtype", "[tensor]\ndtype = \"complex128\""},
		{"unregistered dtype", "[tensor]\ndtype = \"float32\""},
		{"negative dimension", "[tensor]\ndimensions = [2, -1]"},
		{"unknown level", "[log]\nlevel = \"shouty\""},
		{"unknown key", "[tensor]\nrank = 3"},
		{"bad syntax", "[tensor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.toml)
			assert.Error(t, err)
		})
	}
}

func TestLoadResolvesDataFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tensor.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tensor]\ndata_file = \"data.json\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data.json"), cfg.Tensor.DataFile)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
