package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"icebody/internal/body"
	"icebody/internal/eos"
	"icebody/internal/ice"
)

// Config describes one test body: bulk observational constraints, the
// ice phase stack, and optional constant-property EOS overrides.
type Config struct {
	Name   string        `yaml:"name"`
	Bulk   BulkConfig    `yaml:"bulk"`
	Layers []LayerConfig `yaml:"layers"`
	EquilQ bool          `yaml:"equil_q"`
	// EOS maps phase names ("Ih", "III", "V") to constant material
	// properties, overriding the built-in analytic ice fits.
	EOS map[string]EOSConfig `yaml:"eos"`
}

type BulkConfig struct {
	RadiusM      float64 `yaml:"radius_m"`
	MassKg       float64 `yaml:"mass_kg"`
	TsurfK       float64 `yaml:"tsurf_k"`
	PsurfMPa     float64 `yaml:"psurf_mpa"`
	CMeasured    float64 `yaml:"c_measured"`
	CUncertainty float64 `yaml:"c_uncertainty"`
}

type LayerConfig struct {
	Phase string  `yaml:"phase"`
	Steps int     `yaml:"steps"`
	TbK   float64 `yaml:"tb_k"`
	PbMPa float64 `yaml:"pb_mpa"`
}

type EOSConfig struct {
	RhoKgm3   float64 `yaml:"rho_kgm3"`
	CpJkgK    float64 `yaml:"cp_jkgk"`
	AlphaPK   float64 `yaml:"alpha_pk"`
	KThermWmK float64 `yaml:"ktherm_wmk"`
}

// DefaultConfig returns the Enceladus-like reference body.
func DefaultConfig() *Config {
	return &Config{
		Name: "enceladus",
		Bulk: BulkConfig{
			RadiusM:      252.1e3,
			MassKg:       1.08022e20,
			TsurfK:       75.0,
			PsurfMPa:     0.0,
			CMeasured:    0.335,
			CUncertainty: 0.001,
		},
		Layers: []LayerConfig{
			{Phase: "Ih", Steps: 100, TbK: 272.356, PbMPa: 20.0},
		},
		EquilQ: true,
	}
}

// Load reads a body config from a yaml file, applied over the defaults.
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

// Save writes the config to a yaml file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParsePhase maps a config phase name to its tag.
func ParsePhase(name string) (ice.Phase, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ih", "i", "1":
		return ice.I, nil
	case "iii", "3":
		return ice.III, nil
	case "v", "5":
		return ice.V, nil
	}
	return 0, fmt.Errorf("unknown ice phase %q", name)
}

// Body converts the config into a driver body.
func (c *Config) Body() (*body.Body, error) {
	b := &body.Body{
		Name: c.Name,
		Bulk: body.Bulk{
			Radius:         c.Bulk.RadiusM,
			Mass:           c.Bulk.MassKg,
			TSurf:          c.Bulk.TsurfK,
			PSurf:          c.Bulk.PsurfMPa,
			MoI:            c.Bulk.CMeasured,
			MoIUncertainty: c.Bulk.CUncertainty,
		},
		EquilibriumHeat: c.EquilQ,
	}
	for _, l := range c.Layers {
		p, err := ParsePhase(l.Phase)
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", c.Name, err)
		}
		b.Layers = append(b.Layers, body.PhaseSetup{
			Phase: p,
			Steps: l.Steps,
			TBot:  l.TbK,
			PBot:  l.PbMPa,
		})
	}
	return b, b.Validate()
}

// Oracles builds the per-phase EOS bindings: constant-property overrides
// where configured, the analytic ice fits otherwise.
func (c *Config) Oracles() (body.Oracles, error) {
	oracles := body.Oracles{}
	for name, e := range c.EOS {
		p, err := ParsePhase(name)
		if err != nil {
			return nil, fmt.Errorf("body %s eos: %w", c.Name, err)
		}
		oracles[p] = eos.NewConstant(e.RhoKgm3, e.CpJkgK, e.AlphaPK, e.KThermWmK)
	}
	return oracles, nil
}
