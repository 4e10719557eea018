package config

import "sort"

// Presets are named rollout settings selectable with `preset:` in the
// simulator section or a benchmark entry.
var Presets = map[string]SimConfig{
	"quick": {
		Horizon: 200, Episodes: 1, Dt: 0.01, Integrator: "rk4",
	},
	"standard": {
		Horizon: 1000, Episodes: 1, Dt: 0.01, Integrator: "rk4",
	},
	"thorough": {
		Horizon: 1000, Episodes: 5, Dt: 0.005, Integrator: "rk4",
	},
	"long": {
		Horizon: 3000, Episodes: 1, Dt: 0.01, Integrator: "rk4",
	},
	"coarse": {
		Horizon: 500, Episodes: 1, Dt: 0.02, Integrator: "euler",
	},
}

func GetPreset(name string) *SimConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
