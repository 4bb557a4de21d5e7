package config

import "sort"

func axis(extent float64, n int) AxisConfig {
	return AxisConfig{Min: -extent, Max: extent, N: n}
}

var Presets = map[string]map[string]*Config{
	"gaussian": {
		"narrow": {
			Model: "gaussian", Dims: 1, X: axis(20, 401), Dz: 0.25, Steps: 400, SampleEvery: 4,
			Params: map[string]float64{"waist": 1.5},
		},
		"beam2d": {
			Model: "gaussian", Dims: 2, X: axis(20, 128), Y: axis(20, 128), Dz: 0.5, Steps: 100, SampleEvery: 5,
			Parallel: true, Params: map[string]float64{"waist": 3},
		},
	},
	"waveguide": {
		"slab": {
			Model: "waveguide", Dims: 1, X: axis(20, 401), Dz: 1, Steps: 1000, SampleEvery: 10,
			Params: map[string]float64{"core_radius": 3, "waist": 2},
		},
		"fiber": {
			Model: "waveguide", Dims: 2, X: axis(15, 151), Y: axis(15, 151), Dz: 1, Steps: 300, SampleEvery: 10,
			Parallel: true,
		},
	},
	"absorber": {
		"thin": {
			Model: "absorber", Dims: 1, X: axis(20, 257), Dz: 0.5, Steps: 200, SampleEvery: 2,
			Params: map[string]float64{"z_start": 20, "beta": 5e-3},
		},
	},
	"planewave": {
		"tilted": {
			Model: "planewave", Dims: 2, X: axis(10, 101), Y: axis(10, 101), Dz: 0.5, Steps: 50, SampleEvery: 5,
			Params: map[string]float64{"kx": 0.6, "ky": 0.2},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	if c.Params != nil {
		c.Params = make(map[string]float64, len(cfg.Params))
		for k, v := range cfg.Params {
			c.Params[k] = v
		}
	}
	if c.SampleEvery == 0 {
		c.SampleEvery = 1
	}
	c.CheckField = true
	return &c
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
