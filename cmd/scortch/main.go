// Package main provides the scortch CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/scortch/internal/codec"
	"github.com/born-ml/scortch/internal/config"
	"github.com/born-ml/scortch/internal/exchange"
	"github.com/born-ml/scortch/internal/handle"
	"github.com/born-ml/scortch/internal/logging"
	"github.com/born-ml/scortch/internal/property"
	"github.com/born-ml/scortch/internal/tensor"
	"github.com/born-ml/scortch/internal/wire"
)

const version = "v0.0.1-dev"

var errUsage = errors.New("usage")

func main() {
	logging.ConfigureRuntime()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			usage(os.Stderr)
			os.Exit(2)
		}
		log := logging.Logger()
		log.Error().Err(err).Str("kind", codec.KindOf(err).String()).Msg("scortch failed")
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "scortch - dense tensor handles with a nested exchange codec")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                 Show version")
	fmt.Fprintln(w, "  inspect FILE            Print the dtype and shape of an exchange value")
	fmt.Fprintln(w, "  build -config FILE      Construct a tensor from a TOML config and print it")
	fmt.Fprintln(w, "  convert IN OUT          Convert between .json and binary exchange files")
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "scortch %s\n", version)
		return nil
	case "inspect":
		if len(args) != 2 {
			return errUsage
		}
		return inspect(args[1], stdout)
	case "build":
		return build(args[1:], stdout)
	case "convert":
		if len(args) != 3 {
			return errUsage
		}
		return convert(args[1], args[2])
	default:
		return errUsage
	}
}

func inspect(path string, stdout io.Writer) error {
	v, err := wire.ReadFile(path)
	if err != nil {
		return err
	}
	dtype, shape, err := codec.Infer(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "dtype: %s\nshape: %v\n", dtype, []int(shape))
	return nil
}

func build(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "path to the tensor config (TOML)")
	if err := fs.Parse(args); err != nil || *configPath == "" {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	applyLogConfig(cfg.Log)
	log := logging.Logger()

	params := []property.Param{{Name: property.Dimensions, Value: cfg.Tensor.Shape()}}
	if cfg.Tensor.DataFile != "" {
		v, err := wire.ReadFile(cfg.Tensor.DataFile)
		if err != nil {
			return err
		}
		params = append(params, property.Param{Name: property.Data, Value: v})
	}

	obj, err := property.Construct(log, []handle.Option{handle.WithDType(cfg.Tensor.DataType())}, params)
	if err != nil {
		return err
	}
	defer obj.Close()

	dims, _ := obj.Get(property.Dimensions).(tensor.Shape)
	log.Debug().Str("dtype", obj.Handle().DType().String()).Ints("dimensions", dims).Msg("tensor constructed")

	v, ok := obj.Get(property.Data).(exchange.Value)
	if !ok {
		if info := obj.LastError(); info != nil {
			return info
		}
		return fmt.Errorf("%w: data property unavailable", codec.ErrInternal)
	}
	data, err := wire.EncodeJSON(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "dimensions: %v\ndata: %s\n", []int(dims), data)
	return nil
}

func applyLogConfig(cfg config.LogConfig) {
	lc := logging.DefaultConfig(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(cfg.Level); ok {
		lc.Level = lvl
	}
	lc.NoColor = cfg.NoColor
	lc.Timestamp = cfg.Timestamp
	logging.ApplyEnvOverrides(&lc)
	logging.Apply(lc)
}

func convert(in, out string) error {
	v, err := wire.ReadFile(in)
	if err != nil {
		return err
	}
	return wire.WriteFile(out, v)
}
