package config

import "slices"

func preset(scene string, modify func(c *Config)) *Config {
	cfg := DefaultConfig()
	cfg.Scene = scene
	modify(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"intro": {
		"soft": preset("intro", func(c *Config) {
			c.Intro.SpringConstant = 100
		}),
		"stiff": preset("intro", func(c *Config) {
			c.Intro.SpringConstant = 1000
		}),
		"short": preset("intro", func(c *Config) {
			c.Intro.EquilibriumLength = 1.0
			c.Intro.SpringConstant = 400
		}),
	},
	"systems": {
		"series": preset("systems", func(c *Config) {
			c.Systems.Configuration = "series"
		}),
		"parallel": preset("systems", func(c *Config) {
			c.Systems.Configuration = "parallel"
		}),
		"stiff_top": preset("systems", func(c *Config) {
			c.Systems.Configuration = "series"
			c.Series.Top.SpringConstant = 600
		}),
		"uneven": preset("systems", func(c *Config) {
			c.Systems.Configuration = "parallel"
			c.Parallel.Top.SpringConstant = 350
			c.Parallel.Bottom.SpringConstant = 120
		}),
	},
	"energy": {
		"soft": preset("energy", func(c *Config) {
			c.Energy.SpringConstant = 100
		}),
		"stiff": preset("energy", func(c *Config) {
			c.Energy.SpringConstant = 400
		}),
		"heavy_load": preset("energy", func(c *Config) {
			c.Sweep.Quantity = "displacement"
			c.Sweep.Steps = 101
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scene, name string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
