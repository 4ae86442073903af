package tcas

import (
	"testing"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRA(cs string, altFt float64, kind model.AdvisoryType) *model.Aircraft {
	ac := model.NewAircraft(cs, geometry.Vec2{}, geometry.Vec2{}, altFt, 0)
	ac.Advisory = model.Advisory{Kind: kind, Reason: "RA"}
	return ac
}

func fleetOf(acs ...*model.Aircraft) map[string]*model.Aircraft {
	m := make(map[string]*model.Aircraft, len(acs))
	for _, ac := range acs {
		m[ac.Callsign] = ac
	}
	return m
}

func TestCoordinateFlipsHigherAircraft(t *testing.T) {
	fleet := fleetOf(withRA("A", 10000, model.RAClimb), withRA("B", 9000, model.RAClimb))

	flips := CoordinateVerticalRAs(fleet)
	require.Len(t, flips, 1)
	assert.Equal(t, Flip{Callsign: "A", Partner: "B", From: model.RAClimb, To: model.RADescend}, flips[0])
	assert.Equal(t, model.RADescend, fleet["A"].Advisory.Kind)
	assert.Equal(t, "RA [coordinated vertical RA flip]", fleet["A"].Advisory.Reason)
	assert.Equal(t, model.RAClimb, fleet["B"].Advisory.Kind)

	// Already coordinated, so a second pass is a no-op.
	assert.Empty(t, CoordinateVerticalRAs(fleet))
	assert.Equal(t, model.RADescend, fleet["A"].Advisory.Kind)
	assert.Equal(t, model.RAClimb, fleet["B"].Advisory.Kind)
}

func TestCoordinateNoAction(t *testing.T) {
	notEquipped := withRA("B", 9000, model.RAClimb)
	notEquipped.TCASEquipped = false
	onGround := withRA("B", 9000, model.RAClimb)
	onGround.OnGround = true

	tests := []struct {
		name  string
		fleet map[string]*model.Aircraft
	}{
		{name: "opposite senses", fleet: fleetOf(withRA("A", 10000, model.RADescend), withRA("B", 9000, model.RAClimb))},
		{name: "neutral RA", fleet: fleetOf(withRA("A", 10000, model.RAMaintain), withRA("B", 9000, model.RAClimb))},
		{name: "reduce is neutral", fleet: fleetOf(withRA("A", 10000, model.RAReduceClimb), withRA("B", 9000, model.RAReduceClimb))},
		{name: "TA only", fleet: fleetOf(withRA("A", 10000, model.TA), withRA("B", 9000, model.RAClimb))},
		{name: "not equipped", fleet: fleetOf(withRA("A", 10000, model.RAClimb), notEquipped)},
		{name: "on ground", fleet: fleetOf(withRA("A", 10000, model.RAClimb), onGround)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			before := map[string]model.Advisory{}
			for cs, ac := range tc.fleet {
				before[cs] = ac.Advisory
			}
			assert.Empty(t, CoordinateVerticalRAs(tc.fleet))
			for cs, ac := range tc.fleet {
				assert.Equal(t, before[cs], ac.Advisory, cs)
			}
		})
	}
}

func TestCoordinateUsesSensedAltitude(t *testing.T) {
	a := withRA("A", 10000, model.RAIncreaseDescend)
	a.AltBiasFt = -2000
	fleet := fleetOf(a, withRA("B", 9000, model.RADescend))

	flips := CoordinateVerticalRAs(fleet)
	require.Len(t, flips, 1)
	assert.Equal(t, "B", flips[0].Callsign)
	assert.Equal(t, model.RAClimb, fleet["B"].Advisory.Kind)
	assert.Equal(t, model.RAIncreaseDescend, fleet["A"].Advisory.Kind)
}

func TestCoordinateEqualAltitudeFlipsFirstCallsign(t *testing.T) {
	fleet := fleetOf(withRA("B", 9000, model.RACrossingClimb), withRA("A", 9000, model.RACrossingClimb))

	CoordinateVerticalRAs(fleet)
	assert.Equal(t, model.RACrossingDescend, fleet["A"].Advisory.Kind)
	assert.Equal(t, model.RACrossingClimb, fleet["B"].Advisory.Kind)
}

func TestCoordinateThreeAircraftInCallsignOrder(t *testing.T) {
	fleet := fleetOf(
		withRA("C", 10000, model.RAClimb),
		withRA("A", 12000, model.RAClimb),
		withRA("B", 11000, model.RAClimb),
	)

	flips := CoordinateVerticalRAs(fleet)
	require.Len(t, flips, 2)
	assert.Equal(t, "A", flips[0].Callsign)
	assert.Equal(t, "B", flips[1].Callsign)
	assert.Equal(t, model.RADescend, fleet["A"].Advisory.Kind)
	assert.Equal(t, model.RADescend, fleet["B"].Advisory.Kind)
	assert.Equal(t, model.RAClimb, fleet["C"].Advisory.Kind)
}
