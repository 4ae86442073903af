package tcas

import (
	"math"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/util"
)

const fpmToFps = 1.0 / 60.0

// ApplyCommand converts the aircraft's advisory and control state into a new
// vertical rate. With overrideManual set, an aircraft in MANUAL mode with a
// manual command ignores its advisory entirely.
func (c Config) ApplyCommand(ac *model.Aircraft, overrideManual bool) {
	if !ac.TCASEquipped && ac.Advisory.Kind.IsRA() {
		ac.Advisory.Kind = model.TA
	}

	b := c.Command
	manual := ac.ControlMode == model.ControlManual && ac.ManualCmd != model.ManualNone

	if manual && overrideManual {
		ac.ClimbFps = c.manualTarget(ac)
		return
	}

	rate := ac.ClimbFps
	switch ac.Advisory.Kind {
	case model.RAClimb, model.RACrossingClimb:
		rate = math.Max(rate, b.ClimbFPM*fpmToFps)
	case model.RADescend, model.RACrossingDescend:
		rate = math.Min(rate, -b.ClimbFPM*fpmToFps)
	case model.RAIncreaseClimb:
		rate = util.Clamp(math.Max(rate, b.IncreaseFPM*fpmToFps), b.IncreaseMinFPM*fpmToFps, b.IncreaseMaxFPM*fpmToFps)
	case model.RAIncreaseDescend:
		rate = -util.Clamp(math.Max(-rate, b.IncreaseFPM*fpmToFps), b.IncreaseMinFPM*fpmToFps, b.IncreaseMaxFPM*fpmToFps)
	case model.RAReduceClimb:
		rate = math.Min(rate, b.ReduceFPM*fpmToFps)
	case model.RAReduceDescend:
		rate = math.Max(rate, -b.ReduceFPM*fpmToFps)
	case model.RADoNotClimb:
		rate = math.Min(rate, 0)
	case model.RADoNotDescend:
		rate = math.Max(rate, 0)
	case model.RAMaintain:
		if rate >= 0 {
			rate = util.Clamp(rate, 0, b.MaintainMaxFPM*fpmToFps)
		} else {
			rate = util.Clamp(rate, -b.MaintainMaxFPM*fpmToFps, 0)
		}
	case model.Clear, model.TA:
		if manual {
			rate = (1-b.ManualBlend)*rate + b.ManualBlend*c.manualTarget(ac)
		} else {
			rate *= b.DampingFactor
		}
	}
	ac.ClimbFps = rate
}

// manualTarget is the rate a manual command asks for, falling back to the
// nominal climb rate when no target is set.
func (c Config) manualTarget(ac *model.Aircraft) float64 {
	nominal := c.Command.ClimbFPM * fpmToFps
	if ac.TargetClimbFps != nil {
		nominal = math.Abs(*ac.TargetClimbFps)
	}
	switch ac.ManualCmd {
	case model.ManualClimb:
		return nominal
	case model.ManualDescend:
		return -nominal
	case model.ManualMaintain:
		return 0
	}
	return ac.ClimbFps
}
