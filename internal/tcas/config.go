package tcas

import (
	"fmt"
	"math"

	"github.com/AbhiramSankar/Simplified-TCAS/pkg/util"
)

// SensitivityLevel is one altitude band of the SL table. RA fields are nil
// where RAs are inhibited for the band.
type SensitivityLevel struct {
	AltMinFt float64  `yaml:"alt_min_ft"`
	AltMaxFt float64  `yaml:"alt_max_ft"`
	Level    int      `yaml:"sl"`
	TATauS   float64  `yaml:"ta_tau_s"`
	RATauS   *float64 `yaml:"ra_tau_s"`
	TADMODNM float64  `yaml:"ta_dmod_nm"`
	RADMODNM *float64 `yaml:"ra_dmod_nm"`
	TAZTHRFt float64  `yaml:"ta_zthr_ft"`
	RAZTHRFt *float64 `yaml:"ra_zthr_ft"`
	RAALIMFt *float64 `yaml:"ra_alim_ft,omitempty"`
}

// LegacyThresholds are used when no SL band matches the ownship altitude.
type LegacyThresholds struct {
	TATauS   float64 `yaml:"ta_tau_s"`
	TAHorzM  float64 `yaml:"ta_horz_m"`
	TAVertFt float64 `yaml:"ta_vert_ft"`
	RATauS   float64 `yaml:"ra_tau_s"`
	RAHorzM  float64 `yaml:"ra_horz_m"`
	RAVertFt float64 `yaml:"ra_vert_ft"`
}

// ClearGate bounds the geometry that is considered at all.
type ClearGate struct {
	RangeNM float64 `yaml:"range_nm"`
	TauS    float64 `yaml:"tau_s"`
	AltFt   float64 `yaml:"alt_ft"`
}

// PreventivePolicy substitutes a preventive RA for a corrective one while the
// encounter is not yet urgent. It is a tunable heuristic, not derived from
// the TCAS II logic tables.
type PreventivePolicy struct {
	Enabled     bool    `yaml:"enabled"`
	TauRatioMin float64 `yaml:"tau_ratio_min"`
	TauRatioMax float64 `yaml:"tau_ratio_max"`
	AltRatioMin float64 `yaml:"alt_ratio_min"`
}

// CommandBands are the vertical-rate targets of the Command Mapper, in ft/min.
type CommandBands struct {
	ClimbFPM       float64 `yaml:"climb_fpm"`
	IncreaseFPM    float64 `yaml:"increase_fpm"`
	IncreaseMinFPM float64 `yaml:"increase_min_fpm"`
	IncreaseMaxFPM float64 `yaml:"increase_max_fpm"`
	ReduceFPM      float64 `yaml:"reduce_fpm"`
	MaintainMaxFPM float64 `yaml:"maintain_max_fpm"`
	DampingFactor  float64 `yaml:"damping_factor"`
	ManualBlend    float64 `yaml:"manual_blend"`
}

// Config is the full decision-logic configuration surface.
type Config struct {
	SensitivityLevels   []SensitivityLevel `yaml:"sensitivity_levels"`
	Legacy              LegacyThresholds   `yaml:"legacy"`
	Gate                ClearGate          `yaml:"clear_gate"`
	HMDNM               float64            `yaml:"hmd_nm"`
	GroundAltFt         float64            `yaml:"ground_alt_ft"`
	RATotalInhibitAltFt float64            `yaml:"ra_total_inhibit_alt_ft"`
	CrossingAltFt       float64            `yaml:"crossing_alt_ft"`
	StrengthenTauRatio  float64            `yaml:"strengthen_tau_ratio"`
	WeakenTauRatio      float64            `yaml:"weaken_tau_ratio"`
	Preventive          PreventivePolicy   `yaml:"preventive"`
	Command             CommandBands       `yaml:"command"`
}

func f64(v float64) *float64 { return &v }

// DefaultSensitivityLevels is the TCAS II v7.1 style table (Table 2 of the
// introductory booklet) with RAs inhibited in SL2.
func DefaultSensitivityLevels() []SensitivityLevel {
	return []SensitivityLevel{
		{AltMinFt: 0, AltMaxFt: 1000, Level: 2, TATauS: 20, TADMODNM: 0.30, TAZTHRFt: 850},
		{AltMinFt: 1000, AltMaxFt: 2350, Level: 3, TATauS: 25, RATauS: f64(15), TADMODNM: 0.33, RADMODNM: f64(0.20), TAZTHRFt: 850, RAZTHRFt: f64(600), RAALIMFt: f64(300)},
		{AltMinFt: 2350, AltMaxFt: 5000, Level: 4, TATauS: 30, RATauS: f64(20), TADMODNM: 0.48, RADMODNM: f64(0.35), TAZTHRFt: 850, RAZTHRFt: f64(600), RAALIMFt: f64(300)},
		{AltMinFt: 5000, AltMaxFt: 10000, Level: 5, TATauS: 40, RATauS: f64(25), TADMODNM: 0.75, RADMODNM: f64(0.55), TAZTHRFt: 850, RAZTHRFt: f64(600), RAALIMFt: f64(350)},
		{AltMinFt: 10000, AltMaxFt: 20000, Level: 6, TATauS: 45, RATauS: f64(30), TADMODNM: 1.00, RADMODNM: f64(0.80), TAZTHRFt: 850, RAZTHRFt: f64(600), RAALIMFt: f64(400)},
		{AltMinFt: 20000, AltMaxFt: 42000, Level: 7, TATauS: 48, RATauS: f64(35), TADMODNM: 1.30, RADMODNM: f64(1.10), TAZTHRFt: 850, RAZTHRFt: f64(700), RAALIMFt: f64(600)},
		{AltMinFt: 42000, AltMaxFt: math.Inf(1), Level: 7, TATauS: 48, RATauS: f64(35), TADMODNM: 1.30, RADMODNM: f64(1.10), TAZTHRFt: 1200, RAZTHRFt: f64(800), RAALIMFt: f64(700)},
	}
}

func DefaultConfig() Config {
	return Config{
		SensitivityLevels: DefaultSensitivityLevels(),
		Legacy: LegacyThresholds{
			TATauS: 35, TAHorzM: 1200, TAVertFt: 850,
			RATauS: 25, RAHorzM: 900, RAVertFt: 700,
		},
		Gate:                ClearGate{RangeNM: 13, TauS: 60, AltFt: 4000},
		HMDNM:               1.3,
		GroundAltFt:         50,
		RATotalInhibitAltFt: 1000,
		CrossingAltFt:       250,
		StrengthenTauRatio:  0.5,
		WeakenTauRatio:      1.2,
		Preventive: PreventivePolicy{
			Enabled:     true,
			TauRatioMin: 0.8,
			TauRatioMax: 1.2,
			AltRatioMin: 0.4,
		},
		Command: CommandBands{
			ClimbFPM:       1800,
			IncreaseFPM:    2500,
			IncreaseMinFPM: 1500,
			IncreaseMaxFPM: 4400,
			ReduceFPM:      500,
			MaintainMaxFPM: 2000,
			DampingFactor:  0.98,
			ManualBlend:    0.3,
		},
	}
}

func (c Config) HMDM() float64 { return c.HMDNM * nmToM }

func (c Config) ClearRangeM() float64 { return c.Gate.RangeNM * nmToM }

type fileConfig struct {
	TCAS Config `yaml:"tcas"`
}

// LoadConfig reads the tcas section of a YAML file over the defaults and
// validates the result.
func LoadConfig(cfgPath string) (Config, error) {
	fc := fileConfig{TCAS: DefaultConfig()}
	if err := util.LoadConfigInto(cfgPath, &fc); err != nil {
		return Config{}, fmt.Errorf("error reading tcas configuration: %w", err)
	}
	if err := fc.TCAS.Validate(); err != nil {
		return Config{}, err
	}
	return fc.TCAS, nil
}

// Validate checks that the SL table is ordered, contiguous from 0 ft and
// open-ended, and that each band defines its RA thresholds all-or-nothing.
func (c Config) Validate() error {
	sls := c.SensitivityLevels
	if len(sls) == 0 {
		return fmt.Errorf("invalid tcas config: sensitivity_levels is empty")
	}
	if sls[0].AltMinFt != 0 {
		return fmt.Errorf("invalid tcas config: sensitivity_levels[0].alt_min_ft must be 0, got %v", sls[0].AltMinFt)
	}
	for i, sl := range sls {
		if sl.AltMaxFt <= sl.AltMinFt {
			return fmt.Errorf("invalid tcas config: sensitivity_levels[%d] has alt_max_ft %v <= alt_min_ft %v", i, sl.AltMaxFt, sl.AltMinFt)
		}
		if i > 0 && sl.AltMinFt != sls[i-1].AltMaxFt {
			return fmt.Errorf("invalid tcas config: sensitivity_levels[%d].alt_min_ft %v does not continue previous alt_max_ft %v", i, sl.AltMinFt, sls[i-1].AltMaxFt)
		}
		n := 0
		for _, p := range []*float64{sl.RATauS, sl.RADMODNM, sl.RAZTHRFt} {
			if p != nil {
				n++
			}
		}
		if n != 0 && n != 3 {
			return fmt.Errorf("invalid tcas config: sensitivity_levels[%d] must define all or none of ra_tau_s, ra_dmod_nm, ra_zthr_ft", i)
		}
	}
	if last := sls[len(sls)-1]; !math.IsInf(last.AltMaxFt, 1) {
		return fmt.Errorf("invalid tcas config: last sensitivity level must have alt_max_ft .inf, got %v", last.AltMaxFt)
	}
	if c.Command.DampingFactor < 0 || c.Command.DampingFactor > 1 {
		return fmt.Errorf("invalid tcas config: command.damping_factor %v outside [0,1]", c.Command.DampingFactor)
	}
	if c.Command.ManualBlend < 0 || c.Command.ManualBlend > 1 {
		return fmt.Errorf("invalid tcas config: command.manual_blend %v outside [0,1]", c.Command.ManualBlend)
	}
	return nil
}
