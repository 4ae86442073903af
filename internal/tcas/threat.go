package tcas

import (
	"fmt"
	"math"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/geometry"
)

// Contact is one intruder as seen from an ownship, in sensed values.
type Contact struct {
	OwnAltFt    float64
	RelPos      geometry.Vec2 // intruder - own, m
	RelVel      geometry.Vec2 // m/s
	RelAltFt    float64       // intruder - own
	RelClimbFps float64
}

// Classification is the classifier verdict for one contact together with the
// geometry it was derived from.
type Classification struct {
	Kind   model.AdvisoryType
	Reason string
	Tau    float64
	DCPA   float64
}

// ClassifyContact runs the threat state machine for a single contact. prev is
// the hysteresis seed; Clear stands for "no previous advisory". Every input
// yields a defined result.
func (c Config) ClassifyContact(ct Contact, prev model.AdvisoryType) Classification {
	tau, dCPA := geometry.ClosingTauAndDCPA(ct.RelPos, ct.RelVel)
	res := Classification{Tau: tau, DCPA: dCPA}
	absAlt := math.Abs(ct.RelAltFt)

	if dCPA > c.ClearRangeM() || tau > c.Gate.TauS || absAlt > c.Gate.AltFt || tau < 0 {
		res.Kind, res.Reason = model.Clear, "Clear (out of range or diverging)"
		return res
	}

	ground := ct.OwnAltFt <= c.GroundAltFt
	lowAlt := ct.OwnAltFt <= c.RATotalInhibitAltFt
	th := c.SLThresholds(ct.OwnAltFt)

	isTA := (tau < th.TATauS || dCPA < th.TADMODM) && absAlt < th.TAZTHRFt

	baseIsRA := false
	if ra := th.RA; ra != nil && !ground && !lowAlt {
		baseIsRA = (tau < ra.TauS || dCPA < ra.DMODM) && absAlt < ra.ZTHRFt
	}
	hmdAllows := dCPA <= c.HMDM()
	isRA := baseIsRA && hmdAllows

	if prev.IsRA() {
		switch {
		case ground || lowAlt:
			res.Kind, res.Reason = model.Clear, "RA inhibited at low altitude/ground"
		case hmdAllows && baseIsRA:
			res.Kind = c.refineRA(ct, tau, th.RA.TauS)
			res.Reason = fmt.Sprintf("RA: %s continued (tau=%.1fs d_cpa=%.0fm rel_alt=%+.0fft)", res.Kind, tau, dCPA, ct.RelAltFt)
		case !hmdAllows:
			res.Kind = model.Clear
			res.Reason = fmt.Sprintf("Clear (HMD filter: d_cpa=%.0fm > %.0fm)", dCPA, c.HMDM())
		case !isTA:
			res.Kind, res.Reason = model.Clear, "Clear (RA resolved)"
		default:
			res.Kind = model.RAMaintain
			res.Reason = fmt.Sprintf("Maintain RA: %s, hold vertical speed (tau=%.1fs rel_alt=%+.0fft)", model.RAMaintain, tau, ct.RelAltFt)
		}
		return res
	}

	switch {
	case isRA:
		res.Kind = c.freshRA(ct, tau, th.RA)
		res.Reason = fmt.Sprintf("RA: %s (tau=%.1fs d_cpa=%.0fm rel_alt=%+.0fft SL%d)", res.Kind, tau, dCPA, ct.RelAltFt, th.Level)
	case isTA:
		res.Kind = model.TA
		res.Reason = fmt.Sprintf("TA (tau=%.1fs d_cpa=%.0fm rel_alt=%+.0fft)", tau, dCPA, ct.RelAltFt)
	default:
		res.Kind, res.Reason = model.Clear, "Clear (no conflict)"
	}
	return res
}

// freshRA picks the first RA of an encounter.
func (c Config) freshRA(ct Contact, tau float64, ra *RAThresholds) model.AdvisoryType {
	if math.Abs(ct.RelAltFt) < c.CrossingAltFt {
		return directional(c.sense(ct, tau), model.RACrossingClimb, model.RACrossingDescend)
	}

	if p := c.Preventive; p.Enabled &&
		tau >= p.TauRatioMin*ra.TauS && tau <= p.TauRatioMax*ra.TauS &&
		math.Abs(ct.RelAltFt) >= p.AltRatioMin*ra.ZTHRFt {
		if ct.RelAltFt > 0 {
			return model.RADoNotClimb
		}
		return model.RADoNotDescend
	}

	return directional(c.sense(ct, tau), model.RAClimb, model.RADescend)
}

// refineRA keeps an existing RA going. The sense always comes from this
// contact's geometry; tau decides whether it is strengthened or weakened.
func (c Config) refineRA(ct Contact, tau, raTau float64) model.AdvisoryType {
	sense := c.sense(ct, tau)

	switch {
	case tau < raTau*c.StrengthenTauRatio:
		return directional(sense, model.RAIncreaseClimb, model.RAIncreaseDescend)
	case tau > raTau*c.WeakenTauRatio:
		return directional(sense, model.RAReduceClimb, model.RAReduceDescend)
	case math.Abs(ct.RelAltFt) < c.CrossingAltFt:
		return directional(sense, model.RACrossingClimb, model.RACrossingDescend)
	}
	return directional(sense, model.RAClimb, model.RADescend)
}

// sense inside the crossing band follows where the intruder will be at CPA
// relative to us; outside it follows the current relative altitude.
func (c Config) sense(ct Contact, tau float64) model.Sense {
	if math.Abs(ct.RelAltFt) < c.CrossingAltFt {
		if ct.RelAltFt+ct.RelClimbFps*tau <= 0 {
			return model.SenseUp
		}
		return model.SenseDown
	}
	return geometricSense(ct.RelAltFt)
}

// geometricSense climbs away from an intruder below and descends away from
// one above. Co-altitude resolves to climb.
func geometricSense(relAltFt float64) model.Sense {
	if relAltFt > 0 {
		return model.SenseDown
	}
	return model.SenseUp
}

func directional(s model.Sense, up, down model.AdvisoryType) model.AdvisoryType {
	if s == model.SenseDown {
		return down
	}
	return up
}
