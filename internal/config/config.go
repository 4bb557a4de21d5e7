package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/fdprop/internal/grid"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel  = "gaussian"
	DefaultDims   = 1
	DefaultN      = 256
	DefaultExtent = 20.0
	DefaultDz     = 0.5
	DefaultSteps  = 200
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Model       string             `yaml:"model"`
	Dims        int                `yaml:"dims"`
	X           AxisConfig         `yaml:"x"`
	Y           AxisConfig         `yaml:"y"`
	Z0          float64            `yaml:"z0"`
	Dz          float64            `yaml:"dz"`
	Steps       int                `yaml:"steps"`
	SampleEvery int                `yaml:"sample_every"`
	Parallel    bool               `yaml:"parallel"`
	Workers     int                `yaml:"workers"`
	CheckField  bool               `yaml:"check_field"`
	Params      map[string]float64 `yaml:"params,omitempty"`
}

type AxisConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
	N   int     `yaml:"n"`
}

func (a AxisConfig) axis() grid.Axis {
	return grid.Axis{Min: a.Min, Max: a.Max, N: a.N}
}

func DefaultConfig() *Config {
	axis := AxisConfig{Min: -DefaultExtent, Max: DefaultExtent, N: DefaultN}
	return &Config{
		Model:       DefaultModel,
		Dims:        DefaultDims,
		X:           axis,
		Y:           axis,
		Dz:          DefaultDz,
		Steps:       DefaultSteps,
		SampleEvery: 1,
		CheckField:  true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dims != 1 && c.Dims != 2 {
		return fmt.Errorf("%w: dims must be 1 or 2, got %d", ErrInvalid, c.Dims)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalid, c.Steps)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("%w: sample_every must not be negative", ErrInvalid)
	}
	return nil
}

// Grid builds the propagation grid described by c.
func (c *Config) Grid() (*grid.Grid, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Dims == 1 {
		return grid.New1D(c.X.axis(), c.Z0, c.Dz)
	}
	return grid.New2D(c.X.axis(), c.Y.axis(), c.Z0, c.Dz)
}
