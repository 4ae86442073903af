package traffic

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/geometry"
)

// LoadADSB builds a traffic picture from recorded ADS-B reports: the first
// report of the ownship file places the ownship at the origin, and the first
// report of every *.csv file in intrDir places one intruder by range and
// bearing, closing along the line of sight at range_rate_kt (negative closes).
func LoadADSB(ownPath, intrDir string) (map[string]*model.Aircraft, error) {
	fleet := make(map[string]*model.Aircraft)

	own, err := loadADSBReport(ownPath, false)
	if err != nil {
		return nil, err
	}
	fleet[own.Callsign] = own

	entries, err := os.ReadDir(intrDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read intruder directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, filepath.Join(intrDir, e.Name()))
		}
	}
	sort.Strings(files)

	for _, p := range files {
		ac, err := loadADSBReport(p, true)
		if err != nil {
			return nil, err
		}
		if err := addUnique(fleet, ac, p); err != nil {
			return nil, err
		}
	}
	return fleet, nil
}

func loadADSBReport(path string, intruder bool) (*model.Aircraft, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	required := []string{"aircraft_id", "altitude_ft"}
	if intruder {
		required = append(required, "range_nm", "bearing_deg")
	}
	if err := t.require(required...); err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return nil, fmt.Errorf("%s: no reports", path)
	}
	r := t.row(0)

	id, err := r.str("aircraft_id")
	if err != nil {
		return nil, err
	}
	alt, err := r.float("altitude_ft")
	if err != nil {
		return nil, err
	}
	vsFPM, err := r.optFloat("vertical_rate_fpm", 0)
	if err != nil {
		return nil, err
	}

	var pos, vel geometry.Vec2
	if intruder {
		rangeNM, err := r.float("range_nm")
		if err != nil {
			return nil, err
		}
		bearing, err := r.float("bearing_deg")
		if err != nil {
			return nil, err
		}
		rangeRateKt, err := r.optFloat("range_rate_kt", 0)
		if err != nil {
			return nil, err
		}
		pos = geometry.FromRangeBearing(geometry.NMToMeters(rangeNM), bearing)
		vel = pos.Unit().Scale(rangeRateKt * geometry.MpsPerKnot)
	}

	ac := model.NewAircraft(NormalizeCallsign(id), pos, vel, alt, vsFPM/60)
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
	return ac, nil
}
