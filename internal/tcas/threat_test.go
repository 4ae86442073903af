package tcas

import (
	"testing"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func headOn(ownAltFt, rangeM, closingMps, relAltFt float64) Contact {
	return Contact{
		OwnAltFt: ownAltFt,
		RelPos:   geometry.Vec2{X: rangeM},
		RelVel:   geometry.Vec2{X: -closingMps},
		RelAltFt: relAltFt,
	}
}

func TestClassifyContact(t *testing.T) {
	c := DefaultConfig()

	tests := []struct {
		name       string
		contact    Contact
		prev       model.AdvisoryType
		want       model.AdvisoryType
		wantReason string
	}{
		{name: "co-altitude head on", contact: headOn(15000, 1000, 50, 0), want: model.RACrossingClimb},
		{name: "intruder above", contact: headOn(15000, 1000, 50, 400), want: model.RADescend},
		{name: "intruder below", contact: headOn(15000, 1000, 50, -400), want: model.RAClimb},
		{name: "crossing, intruder stays above", contact: headOn(15000, 1000, 50, 100), want: model.RACrossingDescend},
		{name: "crossing, intruder descends through", contact: Contact{
			OwnAltFt: 15000, RelPos: geometry.Vec2{X: 1000}, RelVel: geometry.Vec2{X: -50}, RelAltFt: 100, RelClimbFps: -10,
		}, want: model.RACrossingClimb},
		{name: "preventive above", contact: headOn(15000, 1400, 50, 400), want: model.RADoNotClimb},
		{name: "preventive below", contact: headOn(15000, 1400, 50, -400), want: model.RADoNotDescend},
		{name: "TA only vertical", contact: headOn(15000, 1000, 50, 700), want: model.TA, wantReason: "TA"},
		{name: "TA only tau", contact: headOn(15000, 2200, 50, 700), want: model.TA},
		{name: "diverging", contact: headOn(15000, 1000, -50, 0), want: model.Clear, wantReason: "diverging"},
		{name: "far", contact: headOn(15000, 10000, 50, 0), want: model.Clear, wantReason: "out of range"},
		{name: "vertical gate", contact: headOn(15000, 1000, 50, 4500), want: model.Clear},
		{name: "non-closing", contact: headOn(15000, 1000, 0, 0), want: model.Clear},
		{name: "no conflict", contact: Contact{
			OwnAltFt: 15000, RelPos: geometry.Vec2{Y: 5000}, RelVel: geometry.Vec2{X: -50}, RelAltFt: 1000,
		}, want: model.Clear, wantReason: "no conflict"},
		{name: "SL2 issues TA only", contact: headOn(800, 1000, 50, 0), want: model.TA},

		{name: "hysteresis keeps RA", contact: headOn(15000, 3000, 100, 400), prev: model.RADescend, want: model.RADescend},
		{name: "hysteresis strengthens", contact: headOn(15000, 500, 50, -400), prev: model.RAClimb, want: model.RAIncreaseClimb},
		{name: "continued RA turns away from intruder above", contact: headOn(15000, 1000, 50, 400), prev: model.RAClimb, want: model.RADescend},
		{name: "strengthened RA turns away from intruder above", contact: headOn(15000, 500, 50, 400), prev: model.RAClimb, want: model.RAIncreaseDescend},
		{name: "continued RA crossing follows projection", contact: Contact{
			OwnAltFt: 15000, RelPos: geometry.Vec2{X: 1000}, RelVel: geometry.Vec2{X: -50}, RelAltFt: 100, RelClimbFps: -10,
		}, prev: model.RADescend, want: model.RACrossingClimb},
		{name: "hysteresis weakens", contact: headOn(15000, 2000, 50, 400), prev: model.RADescend, want: model.RAReduceDescend},
		{name: "hysteresis crossing", contact: headOn(15000, 1000, 50, 100), prev: model.RADescend, want: model.RACrossingDescend},
		{name: "neutral RA takes geometric sense", contact: headOn(15000, 1000, 50, -400), prev: model.RAMaintain, want: model.RAClimb},
		{name: "RA envelope ended", contact: headOn(15000, 3000, 100, 800), prev: model.RAClimb, want: model.RAMaintain, wantReason: "Maintain RA"},
		{name: "RA resolved", contact: Contact{
			OwnAltFt: 15000, RelPos: geometry.Vec2{Y: 1000}, RelVel: geometry.Vec2{X: -50}, RelAltFt: 1000,
		}, prev: model.RAClimb, want: model.Clear, wantReason: "RA resolved"},
		{name: "HMD filter", contact: Contact{
			OwnAltFt: 15000, RelPos: geometry.Vec2{Y: 2500}, RelVel: geometry.Vec2{X: -50},
		}, prev: model.RAClimb, want: model.Clear, wantReason: "HMD"},
		{name: "low altitude ends RA", contact: headOn(800, 1000, 50, 0), prev: model.RAClimb, want: model.Clear, wantReason: "low altitude"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := c.ClassifyContact(tc.contact, tc.prev)
			assert.Equal(t, tc.want, got.Kind, got.Reason)
			if tc.wantReason != "" {
				assert.Contains(t, got.Reason, tc.wantReason)
			}
		})
	}
}

func TestClassifyContactEncounterKeepsRA(t *testing.T) {
	c := DefaultConfig()

	first := c.ClassifyContact(headOn(15000, 1000, 50, 0), model.Clear)
	assert.True(t, first.Kind.IsRA(), first.Reason)
	assert.InDelta(t, 20.0, first.Tau, 1e-9)
	assert.InDelta(t, 0.0, first.DCPA, 1e-9)

	second := c.ClassifyContact(headOn(15000, 1000, 50, 700), first.Kind)
	assert.True(t, second.Kind.IsRA(), second.Reason)
	assert.Equal(t, model.RAMaintain, second.Kind)
	assert.Contains(t, second.Reason, "RA_MAINTAIN")
}

func TestClassifyContactIsDeterministic(t *testing.T) {
	c := DefaultConfig()
	ct := Contact{OwnAltFt: 12000, RelPos: geometry.Vec2{X: 1800, Y: -300}, RelVel: geometry.Vec2{X: -90, Y: 10}, RelAltFt: -350, RelClimbFps: 5}

	for _, prev := range model.AllAdvisoryTypes {
		a := c.ClassifyContact(ct, prev)
		b := c.ClassifyContact(ct, prev)
		assert.Equal(t, a, b, prev.String())
	}
}

func TestNoRAAtLowAltitude(t *testing.T) {
	c := DefaultConfig()

	for _, alt := range []float64{0, 40, 50, 500, 999, 1000} {
		for _, rangeM := range []float64{100, 500, 1000, 3000} {
			for _, relAlt := range []float64{-600, -100, 0, 100, 600} {
				for _, prev := range model.AllAdvisoryTypes {
					got := c.ClassifyContact(headOn(alt, rangeM, 60, relAlt), prev)
					assert.False(t, got.Kind.IsRA(), "alt=%v range=%v rel_alt=%v prev=%s: %s", alt, rangeM, relAlt, prev, got.Kind)
				}
			}
		}
	}
}

func TestHysteresisNeverDowngradesInsideTA(t *testing.T) {
	c := DefaultConfig()
	th := c.SLThresholds(15000)

	for _, rangeM := range []float64{200, 800, 1500, 2200} {
		for _, relAlt := range []float64{-800, -300, 0, 300, 800} {
			ct := headOn(15000, rangeM, 50, relAlt)
			for _, prev := range model.AllAdvisoryTypes {
				if !prev.IsRA() {
					continue
				}
				got := c.ClassifyContact(ct, prev)
				inTA := (got.Tau < th.TATauS || got.DCPA < th.TADMODM) && relAlt < th.TAZTHRFt && relAlt > -th.TAZTHRFt
				if inTA {
					assert.True(t, got.Kind.IsRA(), "range=%v rel_alt=%v prev=%s: %s", rangeM, relAlt, prev, got.Reason)
				}
			}
		}
	}
}

func TestPreventiveDisabled(t *testing.T) {
	c := DefaultConfig()
	c.Preventive.Enabled = false

	got := c.ClassifyContact(headOn(15000, 1400, 50, 400), model.Clear)
	assert.Equal(t, model.RADescend, got.Kind)
}
