package config

import "sort"

// Presets are built-in test bodies, keyed by name. Values follow the
// published bulk parameters; transition temperatures and pressures are
// representative hydrosphere models, not fits.
var Presets = map[string]*Config{
	"enceladus": DefaultConfig(),
	"titan": {
		Name: "titan",
		Bulk: BulkConfig{
			RadiusM:      2574.7e3,
			MassKg:       1.3452e23,
			TsurfK:       93.7,
			PsurfMPa:     0.15,
			CMeasured:    0.3414,
			CUncertainty: 0.0005,
		},
		Layers: []LayerConfig{
			{Phase: "Ih", Steps: 120, TbK: 255.0, PbMPa: 155.0},
			{Phase: "III", Steps: 40, TbK: 258.5, PbMPa: 350.0},
			{Phase: "V", Steps: 40, TbK: 268.0, PbMPa: 560.0},
		},
		EquilQ: true,
	},
	"ganymede": {
		Name: "ganymede",
		Bulk: BulkConfig{
			RadiusM:      2634.1e3,
			MassKg:       1.4819e23,
			TsurfK:       110.0,
			PsurfMPa:     0.0,
			CMeasured:    0.3115,
			CUncertainty: 0.0028,
		},
		Layers: []LayerConfig{
			{Phase: "Ih", Steps: 100, TbK: 254.0, PbMPa: 153.0},
			{Phase: "III", Steps: 40, TbK: 257.0, PbMPa: 355.0},
			{Phase: "V", Steps: 50, TbK: 267.5, PbMPa: 620.0},
		},
		EquilQ: false,
	},
}

// GetPreset returns the named preset body, or nil.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
