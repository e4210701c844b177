// Package config loads lathe settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/chazu/lathe/pkg/curve"
	"github.com/chazu/lathe/pkg/kernel"
	"github.com/chazu/lathe/pkg/kernel/lathe"
	"github.com/chazu/lathe/pkg/kernel/sdfx"
	"github.com/chazu/lathe/pkg/sketch"
)

// Kernel backend names.
const (
	KernelLathe = "lathe"
	KernelSdfx  = "sdfx"
)

// Config is the top-level configuration.
type Config struct {
	Curve  Curve  `toml:"curve"`
	Mesh   Mesh   `toml:"mesh"`
	Window Window `toml:"window"`
}

// Curve controls fitting and sampling.
type Curve struct {
	Resolution int     `toml:"resolution"`
	Tension    float64 `toml:"tension"`
}

// Mesh controls the revolution.
type Mesh struct {
	Rings  int    `toml:"rings"`
	Kernel string `toml:"kernel"`
	Cells  int    `toml:"cells"` // marching cubes cells, sdfx only
}

// Window sizes the desktop shell.
type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Curve: Curve{
			Resolution: curve.DefaultResolution,
			Tension:    curve.DefaultTension,
		},
		Mesh: Mesh{
			Rings:  kernel.DefaultRings,
			Kernel: KernelLathe,
			Cells:  200,
		},
		Window: Window{
			Title:  "Lathe",
			Width:  1024,
			Height: 768,
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file yields
// the defaults; keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Curve.Resolution < 1 {
		errs = append(errs, fmt.Errorf("curve.resolution %d: %w", c.Curve.Resolution, curve.ErrInvalidResolution))
	}
	if c.Curve.Tension <= 0 {
		errs = append(errs, fmt.Errorf("curve.tension must be positive, got %g", c.Curve.Tension))
	}
	if c.Mesh.Rings < kernel.MinRings {
		errs = append(errs, fmt.Errorf("mesh.rings %d: %w", c.Mesh.Rings, kernel.ErrInvalidRings))
	}
	switch c.Mesh.Kernel {
	case KernelLathe, KernelSdfx:
	default:
		errs = append(errs, fmt.Errorf("mesh.kernel %q is not one of %q, %q", c.Mesh.Kernel, KernelLathe, KernelSdfx))
	}
	if c.Mesh.Cells < 1 {
		errs = append(errs, fmt.Errorf("mesh.cells must be positive, got %d", c.Mesh.Cells))
	}
	if c.Window.Width < 1 || c.Window.Height < 1 {
		errs = append(errs, fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

// Kernel returns the configured revolution backend.
func (c Config) Kernel() kernel.Kernel {
	if c.Mesh.Kernel == KernelSdfx {
		return sdfx.NewWithCells(c.Mesh.Cells)
	}
	return lathe.New()
}

// SessionOptions converts the configuration into sketch options.
func (c Config) SessionOptions() sketch.Options {
	return sketch.Options{
		Resolution: c.Curve.Resolution,
		Tension:    c.Curve.Tension,
		Rings:      c.Mesh.Rings,
		Kernel:     c.Kernel(),
	}
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}
