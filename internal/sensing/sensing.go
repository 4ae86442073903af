package sensing

import (
	"sort"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/mohae/deepcopy"
)

// Picture is what the surveillance side reports for one tick, keyed by
// callsign. Entries are private copies and may be changed freely.
type Picture map[string]*model.Aircraft

// Sensing snapshots the authoritative aircraft state. AltBiasFt injects an
// extra altitude bias per callsign on top of any bias the aircraft carries.
type Sensing struct {
	AltBiasFt map[string]float64
}

func New(altBiasFt map[string]float64) *Sensing {
	return &Sensing{AltBiasFt: altBiasFt}
}

// Snapshot deep-copies every aircraft so later pipeline stages cannot reach
// back into the world.
func (s *Sensing) Snapshot(fleet map[string]*model.Aircraft) Picture {
	pic := make(Picture, len(fleet))
	for cs, ac := range fleet {
		snap := deepcopy.Copy(ac).(*model.Aircraft)
		if b, ok := s.AltBiasFt[cs]; ok {
			snap.AltBiasFt += b
		}
		pic[cs] = snap
	}
	return pic
}

// BuildTracks returns, for every ownship, one RelativeTrack per other
// aircraft ordered by intruder callsign.
func BuildTracks(pic Picture) map[string][]model.RelativeTrack {
	callsigns := make([]string, 0, len(pic))
	for cs := range pic {
		callsigns = append(callsigns, cs)
	}
	sort.Strings(callsigns)

	tracks := make(map[string][]model.RelativeTrack, len(pic))
	for _, ownCS := range callsigns {
		own := pic[ownCS]
		rels := make([]model.RelativeTrack, 0, len(pic)-1)
		for _, othCS := range callsigns {
			if othCS == ownCS {
				continue
			}
			oth := pic[othCS]
			rels = append(rels, model.RelativeTrack{
				OwnID:           ownCS,
				IntruderID:      othCS,
				RelPos:          oth.PosM.Sub(own.PosM),
				RelVel:          oth.VelMps.Sub(own.VelMps),
				RelAltFt:        oth.SensedAltFt() - own.SensedAltFt(),
				RelClimbFps:     oth.SensedClimbFps() - own.SensedClimbFps(),
				RelAltTrueFt:    oth.AltFt - own.AltFt,
				RelClimbTrueFps: oth.ClimbFps - own.ClimbFps,
			})
		}
		tracks[ownCS] = rels
	}
	return tracks
}
