package model

import (
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/geometry"
)

type ControlMode int

const (
	ControlAuto ControlMode = iota
	ControlManual
)

func (m ControlMode) String() string {
	switch m {
	case ControlManual:
		return "MANUAL"
	default:
		return "AUTO"
	}
}

type ManualCommand int

const (
	ManualNone ManualCommand = iota
	ManualClimb
	ManualDescend
	ManualMaintain
)

func (c ManualCommand) String() string {
	switch c {
	case ManualClimb:
		return "CLIMB"
	case ManualDescend:
		return "DESCEND"
	case ManualMaintain:
		return "MAINTAIN"
	default:
		return ""
	}
}

// Advisory is the single advisory currently held by an aircraft. Reason is
// diagnostic text only and never drives control.
type Advisory struct {
	Kind   AdvisoryType `json:"kind"`
	Reason string       `json:"reason"`
}

// Aircraft holds true physical state. Sensor bias is kept alongside it and the
// sensed values are derived on read, so the two can never drift apart.
type Aircraft struct {
	Callsign string
	ICAO24   string
	Mode     string
	Squawk   string
	Identity string

	PosM     geometry.Vec2 // meters
	VelMps   geometry.Vec2 // m/s
	AltFt    float64       // true altitude
	ClimbFps float64       // true vertical rate, ft/s

	TCASEquipped bool
	OnGround     bool

	ControlMode    ControlMode
	ManualCmd      ManualCommand
	TargetClimbFps *float64

	Advisory Advisory

	AltBiasFt    float64 // +ve = reported altitude too high
	ClimbBiasFps float64 // +ve = reported vertical rate too high
}

// NewAircraft returns an airborne, TCAS-equipped aircraft under automatic
// control with no sensor bias.
func NewAircraft(callsign string, pos, vel geometry.Vec2, altFt, climbFps float64) *Aircraft {
	return &Aircraft{
		Callsign:     callsign,
		PosM:         pos,
		VelMps:       vel,
		AltFt:        altFt,
		ClimbFps:     climbFps,
		TCASEquipped: true,
		ControlMode:  ControlAuto,
		Advisory:     Advisory{Kind: Clear},
	}
}

func (ac *Aircraft) SensedAltFt() float64 { return ac.AltFt + ac.AltBiasFt }

func (ac *Aircraft) SensedClimbFps() float64 { return ac.ClimbFps + ac.ClimbBiasFps }

// Step integrates horizontal and vertical motion over dt seconds.
func (ac *Aircraft) Step(dt float64) {
	ac.PosM = ac.PosM.Add(ac.VelMps.Scale(dt))
	ac.AltFt += ac.ClimbFps * dt
}

// RelativeTrack is the intruder-relative view of one ordered (own, intruder)
// pair for a single tick. RelAltFt and RelClimbFps are sensed; the True
// fields ignore sensor bias and exist for logging only.
type RelativeTrack struct {
	OwnID      string
	IntruderID string

	RelPos      geometry.Vec2
	RelVel      geometry.Vec2
	RelAltFt    float64
	RelClimbFps float64

	RelAltTrueFt    float64
	RelClimbTrueFps float64
}
