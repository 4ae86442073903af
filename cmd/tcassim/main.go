package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/feed"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/metrics"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/monitor"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/sim"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/tcas"
	"github.com/AbhiramSankar/Simplified-TCAS/internal/traffic"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/logger"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/util"
)

type flags struct {
	config   string
	scenario string
	csv      string
	adsbOwn  string
	adsbDir  string
	duration float64
	realtime bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.config, "config", "config.yaml", "path to the YAML configuration")
	flag.StringVar(&f.scenario, "scenario", "", "built-in scenario name or number, or a scenario YAML file")
	flag.StringVar(&f.csv, "csv", "", "load the fleet from an aircraft CSV")
	flag.StringVar(&f.adsbOwn, "adsb-own", "", "ownship ADS-B report CSV")
	flag.StringVar(&f.adsbDir, "adsb-dir", "", "directory of intruder ADS-B report CSVs")
	flag.Float64Var(&f.duration, "duration", -1, "simulated seconds to run, 0 runs until interrupted")
	flag.BoolVar(&f.realtime, "realtime", false, "pace steps to the wall clock")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	lc, err := util.LoadConfig[logger.Config](f.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading logging configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(*lc)

	if err := run(f); err != nil {
		logger.Fatalf("tcassim: %v", err)
	}
}

func run(f flags) error {
	tcasCfg, err := tcas.LoadConfig(f.config)
	if err != nil {
		return err
	}
	nmacCfg, err := monitor.LoadConfig(f.config)
	if err != nil {
		return err
	}
	simCfg, err := sim.LoadConfig(f.config)
	if err != nil {
		return err
	}
	feedCfg, err := feed.LoadConfig(f.config)
	if err != nil {
		return err
	}
	sc := simCfg.Simulation

	fleet, source, err := loadFleet(f, sc.Scenario)
	if err != nil {
		return err
	}
	logger.Infof("loaded %d aircraft from %s", len(fleet), source)

	var tickLog *sim.TickLog
	if sc.LogPath != "" {
		if tickLog, err = sim.OpenTickLog(sc.LogPath); err != nil {
			return err
		}
	}

	world := sim.NewWorld(fleet, sim.Options{
		TCAS:      tcasCfg,
		NMAC:      nmacCfg,
		AltBiasFt: sc.AltBiasFt,
		Log:       tickLog,
	})
	world.Paused = sc.Paused
	world.ManualOverride = sc.ManualOverride

	rec := metrics.NewRecorder()
	world.AddObserver(rec)

	var srv *http.Server
	if feedCfg.Feed.Enabled {
		hub := feed.NewHub()
		world.AddObserver(hub)
		srv = feed.Start(feedCfg.Feed.Addr, feed.NewRouter(hub, rec.Registry()))
	}

	duration := sc.DurationS
	if f.duration >= 0 {
		duration = f.duration
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := world.Run(ctx, sc.DtS, duration, f.realtime)
	if runErr == context.Canceled {
		logger.Info("interrupted, shutting down")
		runErr = nil
	}

	if err := world.Close(); err != nil {
		logger.Errorf("error closing tick log: %v", err)
	}
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("feed shutdown: %v", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	printSummary(world, sc.LogPath)
	return nil
}

// loadFleet picks the traffic source: ADS-B reports, an aircraft CSV, a
// scenario YAML file or a built-in scenario, in that order.
func loadFleet(f flags, defaultScenario string) (sim.Fleet, string, error) {
	switch {
	case f.adsbOwn != "" || f.adsbDir != "":
		if f.adsbOwn == "" || f.adsbDir == "" {
			return nil, "", fmt.Errorf("-adsb-own and -adsb-dir must be given together")
		}
		fleet, err := traffic.LoadADSB(f.adsbOwn, f.adsbDir)
		return fleet, "ADS-B reports in " + f.adsbDir, err
	case f.csv != "":
		fleet, err := traffic.LoadAircraftCSV(f.csv)
		return fleet, f.csv, err
	}

	name := f.scenario
	if name == "" {
		name = defaultScenario
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		fleet, err := traffic.LoadScenario(name)
		return fleet, name, err
	}
	fleet, err := sim.Scenario(name)
	return fleet, "scenario " + name, err
}

func printSummary(w *sim.World, logPath string) {
	s := w.Stats()
	fmt.Printf("Simulated %.2f s\n", w.TimeS())
	fmt.Printf("NMAC observations: %d\n", s.NMACCount)
	if s.NMACCount > 0 {
		fmt.Printf("Minimum separation: %.1f m horizontal, %.1f ft vertical\n", s.MinHorzM, s.MinVertFt)
	}
	for _, cs := range w.Callsigns() {
		if ac, ok := w.Aircraft(cs); ok {
			fmt.Printf("  %-8s %-18s %s\n", cs, ac.Advisory.Kind, ac.Advisory.Reason)
		}
	}
	if logPath != "" {
		fmt.Printf("Tick log written to %s\n", logPath)
	}
}
