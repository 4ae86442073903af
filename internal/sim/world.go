package sim

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/monitor"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/sensing"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/tcas"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options are fixed for the lifetime of a World.
type Options struct {
	TCAS      tcas.Config
	NMAC      monitor.Config
	AltBiasFt map[string]float64
	Log       *TickLog // nil disables the tick log
}

// World owns the aircraft set and advances it one tick at a time. It is not
// safe for concurrent use; hosts must serialise calls into it.
type World struct {
	RunID          uuid.UUID
	Paused         bool
	ManualOverride bool

	opts      Options
	fleet     Fleet
	sensing   *sensing.Sensing
	monitor   *monitor.NMACMonitor
	observers []Observer

	timeS float64
	tick  int
	log   *logrus.Entry
}

func NewWorld(fleet Fleet, opts Options) *World {
	w := &World{
		opts:    opts,
		sensing: sensing.New(opts.AltBiasFt),
	}
	w.Reset(fleet)
	return w
}

// Reset replaces the aircraft set and starts a new run with fresh NMAC stats.
func (w *World) Reset(fleet Fleet) {
	w.RunID = uuid.New()
	w.fleet = fleet
	w.monitor = monitor.New(w.opts.NMAC)
	w.timeS, w.tick = 0, 0
	w.log = logger.WithFields(logger.Fields{"run": w.RunID.String()})
	w.log.Infof("world reset with %d aircraft", len(fleet))
}

func (w *World) AddObserver(o Observer) {
	w.observers = append(w.observers, o)
}

func (w *World) TimeS() float64 { return w.timeS }

func (w *World) Stats() monitor.Stats { return w.monitor.Stats() }

func (w *World) Aircraft(callsign string) (*model.Aircraft, bool) {
	ac, ok := w.fleet[callsign]
	return ac, ok
}

func (w *World) Callsigns() []string {
	cs := make([]string, 0, len(w.fleet))
	for k := range w.fleet {
		cs = append(cs, k)
	}
	sort.Strings(cs)
	return cs
}

// Step advances the world by dt seconds. The phase order is fixed: integrate,
// sense and track, aggregate per ownship, coordinate, then command, monitor
// and log per ownship. Only a tick log failure returns an error.
func (w *World) Step(dt float64) error {
	if w.Paused {
		return nil
	}

	callsigns := w.Callsigns()
	for _, cs := range callsigns {
		w.fleet[cs].Step(dt)
	}

	pic := w.sensing.Snapshot(w.fleet)
	tracks := sensing.BuildTracks(pic)

	// Advisories are decided on the sensed picture, so coordination compares
	// sensed altitudes as well.
	for _, cs := range callsigns {
		own := pic[cs]
		threat := w.opts.TCAS.Aggregate(own.SensedAltFt(), tracks[cs], w.fleet[cs].Advisory.Kind)
		own.Advisory = threat.Advisory()
	}
	flips := tcas.CoordinateVerticalRAs(pic)
	for _, f := range flips {
		w.log.WithFields(logger.Fields{"own": f.Callsign, "partner": f.Partner}).
			Warnf("coordinated RA flip %s -> %s", f.From, f.To)
	}

	var (
		pairs  []PairState
		logErr error
	)
	for _, cs := range callsigns {
		ac := w.fleet[cs]
		w.noteAdvisory(ac, pic[cs].Advisory)
		ac.Advisory = pic[cs].Advisory
		w.opts.TCAS.ApplyCommand(ac, w.ManualOverride)

		own := pic[cs]
		for _, tr := range tracks[cs] {
			mt := w.monitor.ComputeMetrics(tr.RelPos, tr.RelVel, tr.RelAltTrueFt)
			if mt.IsNMAC {
				w.log.WithFields(logger.Fields{"own": cs, "intr": tr.IntruderID}).
					Warnf("NMAC at t=%.2fs: horiz=%.0fm vert=%.0fft", w.timeS, mt.HorizM, mt.VertFt)
			}
			pairs = append(pairs, PairState{
				OwnID:      cs,
				IntruderID: tr.IntruderID,
				HorizM:     mt.HorizM,
				VertFt:     mt.VertFt,
				TauS:       finite(mt.Tau),
				DCPAM:      mt.DCPA,
				IsNMAC:     mt.IsNMAC,
			})

			if w.opts.Log == nil || logErr != nil {
				continue
			}
			intr := pic[tr.IntruderID]
			logErr = w.opts.Log.Write(TickRow{
				TimeS:         w.timeS,
				OwnID:         cs,
				IntruderID:    tr.IntruderID,
				RelX:          tr.RelPos.X,
				RelY:          tr.RelPos.Y,
				RelAltSensed:  tr.RelAltFt,
				RelAltTrue:    tr.RelAltTrueFt,
				TauS:          mt.Tau,
				DCPAM:         mt.DCPA,
				Advisory:      ac.Advisory.Kind,
				IsNMAC:        mt.IsNMAC,
				OwnAltSensed:  own.SensedAltFt(),
				OwnAltTrue:    own.AltFt,
				OwnClimbSens:  own.SensedClimbFps(),
				OwnClimbTrue:  own.ClimbFps,
				IntrAltSensed: intr.SensedAltFt(),
				IntrAltTrue:   intr.AltFt,
				IntrClimbSens: intr.SensedClimbFps(),
				IntrClimbTrue: intr.ClimbFps,
			})
		}
	}

	w.timeS += dt
	w.tick++

	if w.opts.Log != nil {
		if logErr == nil {
			logErr = w.opts.Log.Flush()
		}
		if logErr != nil {
			return fmt.Errorf("tick %d: %w", w.tick, logErr)
		}
	}

	snap := w.snapshot(pic, pairs, flips)
	for _, o := range w.observers {
		o.OnTick(snap)
	}
	return nil
}

func (w *World) noteAdvisory(ac *model.Aircraft, next model.Advisory) {
	if ac.Advisory.Kind == next.Kind {
		return
	}
	e := w.log.WithFields(logger.Fields{"own": ac.Callsign, "t": w.timeS})
	if next.Kind.IsRA() {
		e.Warnf("%s -> %s: %s", ac.Advisory.Kind, next.Kind, next.Reason)
		return
	}
	e.Infof("%s -> %s: %s", ac.Advisory.Kind, next.Kind, next.Reason)
}

func (w *World) snapshot(pic sensing.Picture, pairs []PairState, flips []tcas.Flip) TickSnapshot {
	snap := TickSnapshot{
		RunID: w.RunID.String(),
		Tick:  w.tick,
		TimeS: w.timeS,
		Pairs: pairs,
		Flips: flips,
		Stats: statsState(w.monitor.Stats()),
	}
	for _, cs := range w.Callsigns() {
		ac := w.fleet[cs]
		snap.Aircraft = append(snap.Aircraft, AircraftState{
			Callsign:     cs,
			X:            ac.PosM.X,
			Y:            ac.PosM.Y,
			AltFt:        ac.AltFt,
			SensedAltFt:  pic[cs].SensedAltFt(),
			ClimbFps:     ac.ClimbFps,
			TCASEquipped: ac.TCASEquipped,
			OnGround:     ac.OnGround,
			ControlMode:  ac.ControlMode.String(),
			Advisory:     ac.Advisory,
		})
	}
	return snap
}

// Run steps the world until durationS of simulated time has passed or ctx is
// done. A durationS of zero runs until cancelled. With realtime set, steps
// are paced to the wall clock.
func (w *World) Run(ctx context.Context, dt, durationS float64, realtime bool) error {
	if w.Paused && !realtime {
		return fmt.Errorf("cannot run a paused world without realtime pacing")
	}

	var tick <-chan time.Time
	if realtime {
		t := time.NewTicker(time.Duration(dt * float64(time.Second)))
		defer t.Stop()
		tick = t.C
	}

	for durationS <= 0 || w.timeS < durationS {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
		if err := w.Step(dt); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the tick log.
func (w *World) Close() error {
	if w.opts.Log == nil {
		return nil
	}
	err := w.opts.Log.Close()
	w.opts.Log = nil
	return err
}
