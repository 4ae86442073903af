package tcas

const nmToM = 1852.0

// RAThresholds are only present for sensitivity levels where RAs may be issued.
type RAThresholds struct {
	TauS   float64
	DMODM  float64
	ZTHRFt float64
	ALIMFt float64 // 0 when not configured
}

// Thresholds are the alerting thresholds in force at one ownship altitude.
// Level is 0 when the legacy fallback set was used. RA is nil when RAs are
// inhibited at this level.
type Thresholds struct {
	Level    int
	TATauS   float64
	TADMODM  float64
	TAZTHRFt float64
	RA       *RAThresholds
}

// SLThresholds returns the thresholds for the first band with
// alt_min <= ownAltFt < alt_max, falling back to the legacy set.
func (c Config) SLThresholds(ownAltFt float64) Thresholds {
	for _, sl := range c.SensitivityLevels {
		if sl.AltMinFt <= ownAltFt && ownAltFt < sl.AltMaxFt {
			th := Thresholds{
				Level:    sl.Level,
				TATauS:   sl.TATauS,
				TADMODM:  sl.TADMODNM * nmToM,
				TAZTHRFt: sl.TAZTHRFt,
			}
			if sl.RATauS != nil && sl.RADMODNM != nil && sl.RAZTHRFt != nil {
				th.RA = &RAThresholds{
					TauS:   *sl.RATauS,
					DMODM:  *sl.RADMODNM * nmToM,
					ZTHRFt: *sl.RAZTHRFt,
				}
				if sl.RAALIMFt != nil {
					th.RA.ALIMFt = *sl.RAALIMFt
				}
			}
			return th
		}
	}

	l := c.Legacy
	return Thresholds{
		TATauS:   l.TATauS,
		TADMODM:  l.TAHorzM,
		TAZTHRFt: l.TAVertFt,
		RA: &RAThresholds{
			TauS:   l.RATauS,
			DMODM:  l.RAHorzM,
			ZTHRFt: l.RAVertFt,
		},
	}
}
