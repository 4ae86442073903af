package tcas

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSLThresholds(t *testing.T) {
	c := DefaultConfig()

	tests := []struct {
		name      string
		altFt     float64
		wantLevel int
		wantRA    bool
		wantTau   float64
		wantDMODM float64
	}{
		{name: "surface", altFt: 0, wantLevel: 2, wantRA: false},
		{name: "band edge belongs to upper band", altFt: 1000, wantLevel: 3, wantRA: true, wantTau: 15, wantDMODM: 0.20 * 1852},
		{name: "mid altitude", altFt: 15000, wantLevel: 6, wantRA: true, wantTau: 30, wantDMODM: 0.80 * 1852},
		{name: "above FL420", altFt: 50000, wantLevel: 7, wantRA: true, wantTau: 35, wantDMODM: 1.10 * 1852},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			th := c.SLThresholds(tc.altFt)
			assert.Equal(t, tc.wantLevel, th.Level)
			if !tc.wantRA {
				assert.Nil(t, th.RA)
				return
			}
			require.NotNil(t, th.RA)
			assert.Equal(t, tc.wantTau, th.RA.TauS)
			assert.InDelta(t, tc.wantDMODM, th.RA.DMODM, 1e-9)
		})
	}

	th := c.SLThresholds(50000)
	assert.Equal(t, 1200.0, th.TAZTHRFt)
	assert.Equal(t, 800.0, th.RA.ZTHRFt)
	assert.Equal(t, 700.0, th.RA.ALIMFt)
}

func TestSLThresholdsLegacyFallback(t *testing.T) {
	c := DefaultConfig()
	c.SensitivityLevels = c.SensitivityLevels[1:]

	th := c.SLThresholds(500)
	assert.Equal(t, 0, th.Level)
	assert.Equal(t, 35.0, th.TATauS)
	require.NotNil(t, th.RA)
	assert.Equal(t, 25.0, th.RA.TauS)
	assert.Equal(t, 900.0, th.RA.DMODM)
	assert.Equal(t, 700.0, th.RA.ZTHRFt)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "empty table", mutate: func(c *Config) { c.SensitivityLevels = nil }, wantErr: "empty"},
		{name: "does not start at zero", mutate: func(c *Config) { c.SensitivityLevels = c.SensitivityLevels[1:] }, wantErr: "must be 0"},
		{name: "gap", mutate: func(c *Config) { c.SensitivityLevels[2].AltMinFt = 2400 }, wantErr: "sensitivity_levels[2]"},
		{name: "partial RA triple", mutate: func(c *Config) { c.SensitivityLevels[3].RAZTHRFt = nil }, wantErr: "all or none"},
		{name: "closed top", mutate: func(c *Config) {
			c.SensitivityLevels[len(c.SensitivityLevels)-1].AltMaxFt = 60000
		}, wantErr: ".inf"},
		{name: "damping", mutate: func(c *Config) { c.Command.DampingFactor = 1.5 }, wantErr: "damping_factor"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tcas:\n  hmd_nm: 1.0\n  command:\n    climb_fpm: 1500\n"), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.HMDNM)
	assert.Equal(t, 1500.0, c.Command.ClimbFPM)
	assert.Equal(t, 2500.0, c.Command.IncreaseFPM)
	assert.Len(t, c.SensitivityLevels, len(DefaultSensitivityLevels()))
	assert.True(t, math.IsInf(c.SensitivityLevels[len(c.SensitivityLevels)-1].AltMaxFt, 1))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tcas:\n  sensitivity_levels:\n    - {alt_min_ft: 0, alt_max_ft: 1000, sl: 2, ta_tau_s: 20}\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, ".inf")

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "error reading tcas configuration")
}
