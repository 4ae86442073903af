package sim

import (
	"math"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/monitor"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/tcas"
)

// Observer is notified after every completed step. OnTick runs on the
// stepping goroutine and must not block.
type Observer interface {
	OnTick(TickSnapshot)
}

type ObserverFunc func(TickSnapshot)

func (f ObserverFunc) OnTick(s TickSnapshot) { f(s) }

type AircraftState struct {
	Callsign     string         `json:"callsign"`
	X            float64        `json:"x_m"`
	Y            float64        `json:"y_m"`
	AltFt        float64        `json:"alt_ft"`
	SensedAltFt  float64        `json:"alt_sensed_ft"`
	ClimbFps     float64        `json:"climb_fps"`
	TCASEquipped bool           `json:"tcas_equipped"`
	OnGround     bool           `json:"on_ground"`
	ControlMode  string         `json:"control_mode"`
	Advisory     model.Advisory `json:"advisory"`
}

// PairState carries the live separation of one (own, intruder) pair. Tau is
// nil when the pair is not closing.
type PairState struct {
	OwnID      string   `json:"own_id"`
	IntruderID string   `json:"intr_id"`
	HorizM     float64  `json:"horiz_m"`
	VertFt     float64  `json:"vert_ft"`
	TauS       *float64 `json:"tau_s"`
	DCPAM      float64  `json:"d_cpa_m"`
	IsNMAC     bool     `json:"is_nmac"`
}

type StatsState struct {
	NMACCount int      `json:"nmac_count"`
	MinHorzM  *float64 `json:"min_horz_m"`
	MinVertFt *float64 `json:"min_vert_ft"`
}

// TickSnapshot is a self-contained, JSON-safe copy of the world after a step.
type TickSnapshot struct {
	RunID    string          `json:"run_id"`
	Tick     int             `json:"tick"`
	TimeS    float64         `json:"time_s"`
	Aircraft []AircraftState `json:"aircraft"`
	Pairs    []PairState     `json:"pairs"`
	Flips    []tcas.Flip     `json:"flips,omitempty"`
	Stats    StatsState      `json:"stats"`
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func statsState(s monitor.Stats) StatsState {
	return StatsState{
		NMACCount: s.NMACCount,
		MinHorzM:  finite(s.MinHorzM),
		MinVertFt: finite(s.MinVertFt),
	}
}
