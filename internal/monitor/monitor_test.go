package monitor

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/AbhiramSankar/Simplified-TCAS/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMetricsNMAC(t *testing.T) {
	m := New(DefaultConfig())

	mt := m.ComputeMetrics(geometry.Vec2{X: 200}, geometry.Vec2{}, 100)
	assert.True(t, mt.IsNMAC)
	assert.Equal(t, 200.0, mt.HorizM)
	assert.Equal(t, 100.0, mt.VertFt)
	assert.True(t, math.IsInf(mt.Tau, 1))
	assert.Equal(t, 200.0, mt.DCPA)
	assert.Equal(t, 1, m.Stats().NMACCount)
}

func TestComputeMetricsOutside(t *testing.T) {
	tests := []struct {
		name   string
		pos    geometry.Vec2
		relAlt float64
	}{
		{name: "horizontal", pos: geometry.Vec2{X: 1200}, relAlt: 0},
		{name: "vertical", pos: geometry.Vec2{}, relAlt: -600},
		{name: "on the horizontal threshold", pos: geometry.Vec2{X: 0.3 * 1852}, relAlt: 0},
		{name: "on the vertical threshold", pos: geometry.Vec2{}, relAlt: 300},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			m := New(DefaultConfig())
			mt := m.ComputeMetrics(tc.pos, geometry.Vec2{X: -10}, tc.relAlt)
			assert.False(t, mt.IsNMAC)
			assert.Equal(t, 0, m.Stats().NMACCount)
		})
	}
}

func TestStatsAreMonotonic(t *testing.T) {
	m := New(DefaultConfig())
	s := m.Stats()
	assert.True(t, math.IsInf(s.MinHorzM, 1))
	assert.True(t, math.IsInf(s.MinVertFt, 1))

	samples := []struct {
		x, alt float64
	}{
		{5000, 900}, {300, 1200}, {100, 50}, {8000, 10}, {50, 2000}, {100, 50},
	}
	prev := m.Stats()
	for _, smp := range samples {
		m.ComputeMetrics(geometry.Vec2{X: smp.x}, geometry.Vec2{}, smp.alt)
		cur := m.Stats()
		assert.GreaterOrEqual(t, cur.NMACCount, prev.NMACCount)
		assert.LessOrEqual(t, cur.MinHorzM, prev.MinHorzM)
		assert.LessOrEqual(t, cur.MinVertFt, prev.MinVertFt)
		prev = cur
	}
	assert.Equal(t, Stats{NMACCount: 2, MinHorzM: 50, MinVertFt: 10}, m.Stats())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nmac:\n  vert_ft: 100\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{HorzNM: 0.3, VertFt: 100}, cfg)

	require.NoError(t, os.WriteFile(path, []byte("nmac:\n  horz_nm: -1\n"), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "must be positive")
}
