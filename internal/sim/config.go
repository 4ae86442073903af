package sim

import (
	"fmt"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/traffic"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/util"
)

type Config struct {
	Simulation struct {
		DtS            float64            `yaml:"dt_s"`
		DurationS      float64            `yaml:"duration_s"`
		Scenario       string             `yaml:"scenario"`
		Paused         bool               `yaml:"paused"`
		ManualOverride bool               `yaml:"manual_override"`
		LogPath        string             `yaml:"log_path"`
		AltBiasFt      map[string]float64 `yaml:"alt_bias_ft"`
	} `yaml:"simulation"`
}

func DefaultConfig() Config {
	var c Config
	c.Simulation.DtS = 1.0 / 30.0
	c.Simulation.DurationS = 120
	c.Simulation.Scenario = "head_on_low_sep"
	c.Simulation.LogPath = "logs/tcas_log.csv"
	return c
}

// LoadConfig reads the simulation section of a YAML file over the defaults.
func LoadConfig(cfgPath string) (Config, error) {
	c := DefaultConfig()
	if err := util.LoadConfigInto(cfgPath, &c); err != nil {
		return Config{}, fmt.Errorf("error reading simulation configuration: %w", err)
	}
	if c.Simulation.DtS <= 0 {
		return Config{}, fmt.Errorf("invalid simulation config: dt_s must be positive, got %v", c.Simulation.DtS)
	}
	if c.Simulation.DurationS < 0 {
		return Config{}, fmt.Errorf("invalid simulation config: duration_s must not be negative, got %v", c.Simulation.DurationS)
	}

	// Bias keys must match callsigns as ingestion normalises them.
	if len(c.Simulation.AltBiasFt) > 0 {
		bias := make(map[string]float64, len(c.Simulation.AltBiasFt))
		for cs, ft := range c.Simulation.AltBiasFt {
			key := traffic.NormalizeCallsign(cs)
			if _, dup := bias[key]; dup {
				return Config{}, fmt.Errorf("invalid simulation config: alt_bias_ft lists %q more than once", key)
			}
			bias[key] = ft
		}
		c.Simulation.AltBiasFt = bias
	}
	return c, nil
}
