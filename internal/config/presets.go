package config

import "sort"

// Presets are named scenarios. Each one starts from DefaultConfig and
// overrides the inputs.
var Presets = map[string]func(*Config){
	"baseline": func(c *Config) {},
	"quarantine": func(c *Config) {
		c.Inputs.Phi = 0.5
	},
	"full_quarantine": func(c *Config) {
		c.Inputs.Phi = 1
	},
	"fast_quarantine": func(c *Config) {
		c.Inputs.Phi = 0.8
		c.Inputs.Quarantine = 1
	},
	"distancing": func(c *Config) {
		c.Inputs.Beta = 0.9
	},
	"long_incubation": func(c *Config) {
		c.Inputs.Incubation = 7
	},
	"slow_recovery": func(c *Config) {
		c.Inputs.Recovery = 10
		c.Inputs.RecoveryQ = 7
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
