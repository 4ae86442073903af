package tcas

import (
	"sort"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
)

const coordinationNote = " [coordinated vertical RA flip]"

// Flip records one coordination change applied to Callsign because of Partner.
type Flip struct {
	Callsign string             `json:"callsign"`
	Partner  string             `json:"partner"`
	From     model.AdvisoryType `json:"from"`
	To       model.AdvisoryType `json:"to"`
}

// CoordinateVerticalRAs flips one aircraft of every equipped, airborne pair
// whose RAs command the same vertical sense. The higher aircraft by sensed
// altitude takes the opposite sense. Pairs are visited in callsign order and
// flips are applied immediately, so when an aircraft is in several same-sense
// conflicts the last pair visited decides its advisory.
func CoordinateVerticalRAs(fleet map[string]*model.Aircraft) []Flip {
	callsigns := make([]string, 0, len(fleet))
	for cs := range fleet {
		callsigns = append(callsigns, cs)
	}
	sort.Strings(callsigns)

	var flips []Flip
	for i := 0; i < len(callsigns); i++ {
		a := fleet[callsigns[i]]
		if !coordinates(a) {
			continue
		}
		for j := i + 1; j < len(callsigns); j++ {
			b := fleet[callsigns[j]]
			if !coordinates(b) {
				continue
			}

			sa, sb := a.Advisory.Kind.Sense(), b.Advisory.Kind.Sense()
			if sa == model.SenseNone || sb == model.SenseNone || sa != sb {
				continue
			}

			target, partner := b, a
			if a.SensedAltFt() >= b.SensedAltFt() {
				target, partner = a, b
			}

			from := target.Advisory.Kind
			to := from.Opposite()
			if to == from {
				continue
			}
			target.Advisory = model.Advisory{Kind: to, Reason: target.Advisory.Reason + coordinationNote}
			flips = append(flips, Flip{Callsign: target.Callsign, Partner: partner.Callsign, From: from, To: to})
		}
	}
	return flips
}

func coordinates(ac *model.Aircraft) bool {
	return ac.TCASEquipped && !ac.OnGround && ac.Advisory.Kind.IsRA()
}
