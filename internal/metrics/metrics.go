package metrics

import (
	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/sim"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder turns tick snapshots into prometheus metrics on its own registry.
type Recorder struct {
	reg *prometheus.Registry

	ticks      prometheus.Counter
	simTime    prometheus.Gauge
	advisories *prometheus.GaugeVec
	flips      prometheus.Counter
	nmacs      prometheus.Counter
	nmacPairs  prometheus.Gauge
	minHorzM   prometheus.Gauge
	minVertFt  prometheus.Gauge

	lastRun  string
	lastNMAC int
}

func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tcas_ticks_total",
			Help: "Completed simulation steps.",
		}),
		simTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tcas_sim_time_seconds",
			Help: "Simulated time of the last completed step.",
		}),
		advisories: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tcas_aircraft_advisories",
			Help: "Aircraft currently holding each advisory kind.",
		}, []string{"kind"}),
		flips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tcas_coordination_flips_total",
			Help: "RA sense flips applied by coordination.",
		}),
		nmacs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tcas_nmac_total",
			Help: "NMAC observations, one per ordered pair per step.",
		}),
		nmacPairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tcas_nmac_pairs",
			Help: "Ordered pairs inside NMAC thresholds at the last step.",
		}),
		minHorzM: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tcas_min_horizontal_separation_meters",
			Help: "Smallest horizontal separation seen this run.",
		}),
		minVertFt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tcas_min_vertical_separation_feet",
			Help: "Smallest vertical separation seen this run.",
		}),
	}
	r.reg.MustRegister(r.ticks, r.simTime, r.advisories, r.flips, r.nmacs, r.nmacPairs, r.minHorzM, r.minVertFt)

	for _, k := range model.AllAdvisoryTypes {
		r.advisories.WithLabelValues(k.String())
	}
	return r
}

func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// OnTick implements sim.Observer.
func (r *Recorder) OnTick(s sim.TickSnapshot) {
	r.ticks.Inc()
	r.simTime.Set(s.TimeS)
	r.flips.Add(float64(len(s.Flips)))

	counts := make(map[model.AdvisoryType]int, len(model.AllAdvisoryTypes))
	for _, ac := range s.Aircraft {
		counts[ac.Advisory.Kind]++
	}
	for _, k := range model.AllAdvisoryTypes {
		r.advisories.WithLabelValues(k.String()).Set(float64(counts[k]))
	}

	inside := 0
	for _, p := range s.Pairs {
		if p.IsNMAC {
			inside++
		}
	}
	r.nmacPairs.Set(float64(inside))

	// A new run id means the world was reset and its count started again.
	if s.RunID != r.lastRun {
		r.lastRun, r.lastNMAC = s.RunID, 0
	}
	r.nmacs.Add(float64(s.Stats.NMACCount - r.lastNMAC))
	r.lastNMAC = s.Stats.NMACCount

	if s.Stats.MinHorzM != nil {
		r.minHorzM.Set(*s.Stats.MinHorzM)
	}
	if s.Stats.MinVertFt != nil {
		r.minVertFt.Set(*s.Stats.MinVertFt)
	}
}
