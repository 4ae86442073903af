package tcas

import (
	"sort"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
)

// Threat is the classification chosen as primary for an ownship.
// IntruderID is empty when the ownship is clear of all traffic.
type Threat struct {
	Classification
	IntruderID string
}

func (t Threat) Advisory() model.Advisory {
	if t.IntruderID == "" {
		return model.Advisory{Kind: t.Kind, Reason: t.Reason}
	}
	return model.Advisory{Kind: t.Kind, Reason: t.Reason + " vs " + t.IntruderID}
}

// Aggregate classifies every track of one ownship and reduces them to a
// single primary threat: the RA with the smallest (tau, d_cpa), otherwise
// the TA with the smallest (tau, d_cpa), otherwise CLEAR. Callsign breaks
// remaining ties.
//
// prev is the ownship's advisory from the last tick and seeds hysteresis for
// every intruder, not per pair.
func (c Config) Aggregate(ownAltFt float64, tracks []model.RelativeTrack, prev model.AdvisoryType) Threat {
	var ras, tas []Threat
	for _, tr := range tracks {
		cl := c.ClassifyContact(Contact{
			OwnAltFt:    ownAltFt,
			RelPos:      tr.RelPos,
			RelVel:      tr.RelVel,
			RelAltFt:    tr.RelAltFt,
			RelClimbFps: tr.RelClimbFps,
		}, prev)

		th := Threat{Classification: cl, IntruderID: tr.IntruderID}
		switch {
		case cl.Kind.IsRA():
			ras = append(ras, th)
		case cl.Kind == model.TA:
			tas = append(tas, th)
		}
	}

	if len(ras) > 0 {
		return primary(ras)
	}
	if len(tas) > 0 {
		return primary(tas)
	}
	return Threat{Classification: Classification{Kind: model.Clear, Reason: "Clear"}}
}

func primary(threats []Threat) Threat {
	sort.SliceStable(threats, func(i, j int) bool {
		a, b := threats[i], threats[j]
		if a.Tau != b.Tau {
			return a.Tau < b.Tau
		}
		if a.DCPA != b.DCPA {
			return a.DCPA < b.DCPA
		}
		return a.IntruderID < b.IntruderID
	})
	return threats[0]
}
