package traffic

import (
	"fmt"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/geometry"
)

var aircraftColumns = []string{"callsign", "x_m", "y_m", "vel_x_mps", "vel_y_mps", "alt_ft", "climb_fps"}

// LoadAircraftCSV reads one aircraft per row. Columns beyond the kinematic
// ones (icao24, mode, squawk, identity, on_ground, tcas_equipped,
// alt_bias_ft, climb_bias_fps) are optional.
func LoadAircraftCSV(path string) (map[string]*model.Aircraft, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require(aircraftColumns...); err != nil {
		return nil, err
	}

	fleet := make(map[string]*model.Aircraft, len(t.rows))
	for i := range t.rows {
		r := t.row(i)
		ac, err := aircraftFromRow(r)
		if err != nil {
			return nil, err
		}
		if err := addUnique(fleet, ac, fmt.Sprintf("%s: row %d", path, r.n)); err != nil {
			return nil, err
		}
	}
	return fleet, nil
}

func aircraftFromRow(r row) (*model.Aircraft, error) {
	cs, err := r.str("callsign")
	if err != nil {
		return nil, err
	}

	var v [6]float64
	for i, f := range aircraftColumns[1:] {
		if v[i], err = r.float(f); err != nil {
			return nil, err
		}
	}

	ac := model.NewAircraft(NormalizeCallsign(cs),
		geometry.Vec2{X: v[0], Y: v[1]}, geometry.Vec2{X: v[2], Y: v[3]}, v[4], v[5])
	ac.ICAO24 = r.optStr("icao24")
	ac.Mode = r.optStr("mode")
	ac.Squawk = r.optStr("squawk")
	ac.Identity = r.optStr("identity")

	if ac.OnGround, err = r.optBool("on_ground", false); err != nil {
		return nil, err
	}
	if ac.TCASEquipped, err = r.optBool("tcas_equipped", true); err != nil {
		return nil, err
	}
	if ac.AltBiasFt, err = r.optFloat("alt_bias_ft", 0); err != nil {
		return nil, err
	}
	if ac.ClimbBiasFps, err = r.optFloat("climb_bias_fps", 0); err != nil {
		return nil, err
	}
	return ac, nil
}
