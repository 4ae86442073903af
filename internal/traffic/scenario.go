package traffic

import (
	"fmt"
	"os"
	"strings"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// ScenarioFile is the YAML form of a traffic scenario. Pointer fields are
// required and are nil only when absent from the file.
type ScenarioFile struct {
	Name     string             `yaml:"name"`
	Aircraft []ScenarioAircraft `yaml:"aircraft"`
}

type ScenarioAircraft struct {
	Callsign string   `yaml:"callsign"`
	XM       *float64 `yaml:"x_m"`
	YM       *float64 `yaml:"y_m"`
	VelXMps  *float64 `yaml:"vel_x_mps"`
	VelYMps  *float64 `yaml:"vel_y_mps"`
	AltFt    *float64 `yaml:"alt_ft"`
	ClimbFps float64  `yaml:"climb_fps"`

	ICAO24   string `yaml:"icao24"`
	Mode     string `yaml:"mode"`
	Squawk   string `yaml:"squawk"`
	Identity string `yaml:"identity"`

	TCASEquipped *bool `yaml:"tcas_equipped"`
	OnGround     bool  `yaml:"on_ground"`

	ControlMode    string   `yaml:"control_mode"`
	ManualCmd      string   `yaml:"manual_cmd"`
	TargetClimbFps *float64 `yaml:"target_climb_fps"`

	AltBiasFt    float64 `yaml:"alt_bias_ft"`
	ClimbBiasFps float64 `yaml:"climb_bias_fps"`
}

// LoadScenario reads a YAML scenario file into an aircraft set.
func LoadScenario(path string) (map[string]*model.Aircraft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var sf ScenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("%s: failed to unmarshal yaml: %w", path, err)
	}
	if len(sf.Aircraft) == 0 {
		return nil, fmt.Errorf("%s: %w %q", path, ErrMissingField, "aircraft")
	}

	fleet := make(map[string]*model.Aircraft, len(sf.Aircraft))
	for i, sa := range sf.Aircraft {
		where := fmt.Sprintf("%s: aircraft[%d]", path, i)
		ac, err := sa.toAircraft(where)
		if err != nil {
			return nil, err
		}
		if err := addUnique(fleet, ac, where); err != nil {
			return nil, err
		}
	}
	return fleet, nil
}

func (sa ScenarioAircraft) toAircraft(where string) (*model.Aircraft, error) {
	if strings.TrimSpace(sa.Callsign) == "" {
		return nil, fmt.Errorf("%s: %w %q", where, ErrMissingField, "callsign")
	}
	required := []struct {
		name string
		v    *float64
	}{
		{"x_m", sa.XM}, {"y_m", sa.YM}, {"vel_x_mps", sa.VelXMps}, {"vel_y_mps", sa.VelYMps}, {"alt_ft", sa.AltFt},
	}
	for _, f := range required {
		if f.v == nil {
			return nil, fmt.Errorf("%s (%s): %w %q", where, sa.Callsign, ErrMissingField, f.name)
		}
	}

	ac := model.NewAircraft(NormalizeCallsign(sa.Callsign),
		geometry.Vec2{X: *sa.XM, Y: *sa.YM}, geometry.Vec2{X: *sa.VelXMps, Y: *sa.VelYMps}, *sa.AltFt, sa.ClimbFps)
	ac.ICAO24, ac.Mode, ac.Squawk, ac.Identity = sa.ICAO24, sa.Mode, sa.Squawk, sa.Identity
	if sa.TCASEquipped != nil {
		ac.TCASEquipped = *sa.TCASEquipped
	}
	ac.OnGround = sa.OnGround
	ac.AltBiasFt = sa.AltBiasFt
	ac.ClimbBiasFps = sa.ClimbBiasFps
	ac.TargetClimbFps = sa.TargetClimbFps

	switch strings.ToUpper(sa.ControlMode) {
	case "", "AUTO":
	case "MANUAL":
		ac.ControlMode = model.ControlManual
	default:
		return nil, fmt.Errorf("%s (%s): unknown control_mode %q", where, sa.Callsign, sa.ControlMode)
	}
	switch strings.ToUpper(sa.ManualCmd) {
	case "":
	case "CLIMB":
		ac.ManualCmd = model.ManualClimb
	case "DESCEND":
		ac.ManualCmd = model.ManualDescend
	case "MAINTAIN":
		ac.ManualCmd = model.ManualMaintain
	default:
		return nil, fmt.Errorf("%s (%s): unknown manual_cmd %q", where, sa.Callsign, sa.ManualCmd)
	}
	return ac, nil
}
