package monitor

import (
	"fmt"
	"math"

	"github.com/AbhiramSankar/Simplified-TCAS/pkg/geometry"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/util"
)

// Config holds the NMAC thresholds.
type Config struct {
	HorzNM float64 `yaml:"horz_nm"`
	VertFt float64 `yaml:"vert_ft"`
}

type fileConfig struct {
	NMAC Config `yaml:"nmac"`
}

func DefaultConfig() Config {
	return Config{HorzNM: 0.3, VertFt: 300}
}

func (c Config) HorzM() float64 { return geometry.NMToMeters(c.HorzNM) }

// LoadConfig reads the nmac section of a YAML file over the defaults.
func LoadConfig(cfgPath string) (Config, error) {
	fc := fileConfig{NMAC: DefaultConfig()}
	if err := util.LoadConfigInto(cfgPath, &fc); err != nil {
		return Config{}, fmt.Errorf("error reading nmac configuration: %w", err)
	}
	if fc.NMAC.HorzNM <= 0 || fc.NMAC.VertFt <= 0 {
		return Config{}, fmt.Errorf("invalid nmac config: thresholds must be positive, got horz_nm=%v vert_ft=%v", fc.NMAC.HorzNM, fc.NMAC.VertFt)
	}
	return fc.NMAC, nil
}

// Stats accumulate over the lifetime of a monitor. The minima start at +Inf
// so the first recorded pair always sets them.
type Stats struct {
	NMACCount int     `json:"nmac_count"`
	MinHorzM  float64 `json:"min_horz_m"`
	MinVertFt float64 `json:"min_vert_ft"`
}

// Metrics are the live separation figures for one (own, intruder) pair.
type Metrics struct {
	HorizM float64
	VertFt float64
	Tau    float64
	DCPA   float64
	IsNMAC bool
}

// NMACMonitor is not safe for concurrent use; World serialises all calls.
type NMACMonitor struct {
	cfg   Config
	stats Stats
}

func New(cfg Config) *NMACMonitor {
	return &NMACMonitor{
		cfg: cfg,
		stats: Stats{
			MinHorzM:  math.Inf(1),
			MinVertFt: math.Inf(1),
		},
	}
}

// ComputeMetrics measures one pair and folds it into the running stats.
func (m *NMACMonitor) ComputeMetrics(relPos, relVel geometry.Vec2, relAltFt float64) Metrics {
	mt := Metrics{
		HorizM: relPos.Norm(),
		VertFt: math.Abs(relAltFt),
	}
	mt.Tau, mt.DCPA = geometry.ClosingTauAndDCPA(relPos, relVel)
	mt.IsNMAC = mt.HorizM < m.cfg.HorzM() && mt.VertFt < m.cfg.VertFt

	if mt.HorizM < m.stats.MinHorzM {
		m.stats.MinHorzM = mt.HorizM
	}
	if mt.VertFt < m.stats.MinVertFt {
		m.stats.MinVertFt = mt.VertFt
	}
	if mt.IsNMAC {
		m.stats.NMACCount++
	}
	return mt
}

func (m *NMACMonitor) Stats() Stats {
	return m.stats
}
