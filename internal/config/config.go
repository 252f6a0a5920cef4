// Package config loads the TOML configuration used by the scortch CLI.
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/born-ml/scortch/internal/codec"
	"github.com/born-ml/scortch/internal/tensor"
)

type Config struct {
	Tensor TensorConfig `toml:"tensor"`
	Log    LogConfig    `toml:"log"`
}

// TensorConfig describes a handle to construct. Dimensions and the data file
// are staged before construction, like construct-time properties.
type TensorConfig struct {
	DType      string  `toml:"dtype"`
	Dimensions []int64 `toml:"dimensions"`
	DataFile   string  `toml:"data_file"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	NoColor   bool   `toml:"no_color"`
	Timestamp bool   `toml:"timestamp"`
}

// Load reads and validates the config at path. A relative data_file is
// resolved against the config file's directory.
func Load(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if cfg.Tensor.DataFile != "" && !filepath.IsAbs(cfg.Tensor.DataFile) {
		cfg.Tensor.DataFile = filepath.Join(filepath.Dir(path), cfg.Tensor.DataFile)
	}
	return finish(cfg)
}

// Parse decodes a config from TOML text.
func Parse(data string) (Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	return finish(cfg)
}

func finish(cfg Config) (Config, error) {
	if cfg.Tensor.DType == "" {
		cfg.Tensor.DType = tensor.Float64.String()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

func Validate(cfg Config) error {
	dt, ok := tensor.ParseDataType(cfg.Tensor.DType)
	if !ok {
		return fmt.Errorf("tensor config: unknown dtype %q", cfg.Tensor.DType)
	}
	if !codec.Supported(dt) {
		return fmt.Errorf("tensor config: dtype %s cannot be exchanged", dt)
	}
	for i, dim := range cfg.Tensor.Dimensions {
		if dim < 0 {
			return fmt.Errorf("tensor config: dimensions[%d] is negative (%d)", i, dim)
		}
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "disable", "off", "none":
	default:
		return fmt.Errorf("log config: unknown level %q", cfg.Log.Level)
	}
	return nil
}

// DataType returns the parsed dtype. Only valid on a validated config.
func (c TensorConfig) DataType() tensor.DataType {
	dt, _ := tensor.ParseDataType(c.DType)
	return dt
}

// Shape returns the configured dimensions, or nil when unset.
func (c TensorConfig) Shape() tensor.Shape {
	if len(c.Dimensions) == 0 {
		return nil
	}
	return tensor.ShapeFromInt64s(c.Dimensions)
}
