package config

import "sort"

var Presets = map[string]func(*Config){
	"classic": func(c *Config) {
		c.Quality, c.Theme, c.SpeedMs = "high", "matrix", 50
	},
	"performance": func(c *Config) {
		c.Quality, c.Theme, c.SpeedMs = "auto", "matrix", 16
	},
	"rave": func(c *Config) {
		c.Quality, c.Theme, c.SpeedMs = "medium", "cycle", 16
	},
	"calm": func(c *Config) {
		c.Quality, c.Theme, c.SpeedMs = "low", "ice", 120
	},
	"terminal": func(c *Config) {
		c.Quality, c.Theme, c.SpeedMs = "high", "amber", 60
		c.Alphabet = "latin"
	},
}

// GetPreset returns the default config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset overlays the named preset on c and reports whether it exists.
func (c *Config) ApplyPreset(name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(c)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
