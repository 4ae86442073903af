package sim

import (
	"fmt"
	"sort"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/geometry"
)

// Fleet is the authoritative aircraft set, keyed by callsign.
type Fleet map[string]*model.Aircraft

func fleetOf(acs ...*model.Aircraft) Fleet {
	f := make(Fleet, len(acs))
	for _, ac := range acs {
		f[ac.Callsign] = ac
	}
	return f
}

func ac(cs string, x, y, vx, vy, altFt, climbFps float64) *model.Aircraft {
	return model.NewAircraft(cs, geometry.Vec2{X: x, Y: y}, geometry.Vec2{X: vx, Y: vy}, altFt, climbFps)
}

// HeadOnLowSep closes two aircraft head on at about 250 kt each with 550 ft
// of vertical separation.
func HeadOnLowSep() Fleet {
	return fleetOf(
		ac("AAL101", -12000, 0, 130, 0, 10000, 0),
		ac("UAL202", 12000, 0, -130, 0, 10550, 0),
	)
}

func Crossing() Fleet {
	return fleetOf(
		ac("DAL305", -8000, -6000, 140, 60, 12000, 5),
		ac("JBU707", -8000, 6000, 140, -60, 11800, -5),
	)
}

// OvertakeThree has a fast aircraft overtaking two slower ones on the same
// track, all within 150 ft.
func OvertakeThree() Fleet {
	return fleetOf(
		ac("WJA010", -10000, 0, 170, 0, 11000, 0),
		ac("ACA415", -2000, 0, 150, 0, 10950, 0),
		ac("RYR900", 7000, 0, 130, 0, 11100, 0),
	)
}

// HeadOnCoAltitude closes two equipped aircraft head on at the same
// altitude, so both pick the same crossing sense and coordination must split
// them.
func HeadOnCoAltitude() Fleet {
	return fleetOf(
		ac("AAA100", -6000, 0, 100, 0, 15000, 0),
		ac("BBB200", 6000, 0, -100, 0, 15000, 0),
	)
}

var scenarios = map[string]func() Fleet{
	"head_on_low_sep": HeadOnLowSep,
	"crossing":        Crossing,
	"overtake_three":  OvertakeThree,
	"head_on_co_alt":  HeadOnCoAltitude,
}

var scenarioAliases = map[string]string{
	"1": "head_on_low_sep",
	"2": "crossing",
	"3": "overtake_three",
	"4": "head_on_co_alt",
}

// Scenario returns a fresh copy of a built-in scenario by name or number.
func Scenario(name string) (Fleet, error) {
	if alias, ok := scenarioAliases[name]; ok {
		name = alias
	}
	build, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (have %v)", name, ScenarioNames())
	}
	return build(), nil
}

func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
