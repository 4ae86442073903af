package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"math"
	"path/filepath"
	"strconv"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
)

var tickLogHeader = []string{
	"time_s", "own_id", "intr_id",
	"rel_x_m", "rel_y_m", "rel_alt_sensed_ft", "rel_alt_true_ft",
	"tau_s", "d_cpa_m", "advisory", "is_nmac",
	"own_alt_sensed_ft", "own_alt_true_ft", "own_climb_sensed_fps", "own_climb_true_fps",
	"intr_alt_sensed_ft", "intr_alt_true_ft", "intr_climb_sensed_fps", "intr_climb_true_fps",
}

// TickRow is one (ownship, intruder, tick) record.
type TickRow struct {
	TimeS      float64
	OwnID      string
	IntruderID string

	RelX, RelY    float64
	RelAltSensed  float64
	RelAltTrue    float64
	TauS          float64
	DCPAM         float64
	Advisory      model.AdvisoryType
	IsNMAC        bool
	OwnAltSensed  float64
	OwnAltTrue    float64
	OwnClimbSens  float64
	OwnClimbTrue  float64
	IntrAltSensed float64
	IntrAltTrue   float64
	IntrClimbSens float64
	IntrClimbTrue float64
}

// noTau is written in tau_s for a pair that is not closing.
const noTau = "inf"

func formatTau(v float64) string {
	if math.IsInf(v, 1) {
		return noTau
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (r TickRow) record() []string {
	f1 := func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }
	f2 := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	nmac := "0"
	if r.IsNMAC {
		nmac = "1"
	}
	return []string{
		f2(r.TimeS), r.OwnID, r.IntruderID,
		f1(r.RelX), f1(r.RelY), f1(r.RelAltSensed), f1(r.RelAltTrue),
		formatTau(r.TauS), f1(r.DCPAM), r.Advisory.String(), nmac,
		f1(r.OwnAltSensed), f1(r.OwnAltTrue), f2(r.OwnClimbSens), f2(r.OwnClimbTrue),
		f1(r.IntrAltSensed), f1(r.IntrAltTrue), f2(r.IntrClimbSens), f2(r.IntrClimbTrue),
	}
}

// TickLog is the append-only safety log. It has a single writer, World.
type TickLog struct {
	w      *csv.Writer
	closer io.Closer
}

// NewTickLog writes the header to w. If w is an io.Closer, Close closes it.
func NewTickLog(w io.Writer) (*TickLog, error) {
	tl := &TickLog{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		tl.closer = c
	}
	if err := tl.w.Write(tickLogHeader); err != nil {
		return nil, fmt.Errorf("error writing tick log header: %w", err)
	}
	return tl, tl.Flush()
}

// OpenTickLog creates (or truncates) the log file at path, making parent
// directories as needed.
func OpenTickLog(path string) (*TickLog, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating tick log directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating tick log %s: %w", path, err)
	}
	tl, err := NewTickLog(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return tl, nil
}

func (tl *TickLog) Write(r TickRow) error {
	if err := tl.w.Write(r.record()); err != nil {
		return fmt.Errorf("error writing tick log row: %w", err)
	}
	return nil
}

func (tl *TickLog) Flush() error {
	tl.w.Flush()
	if err := tl.w.Error(); err != nil {
		return fmt.Errorf("error flushing tick log: %w", err)
	}
	return nil
}

func (tl *TickLog) Close() error {
	err := tl.Flush()
	if tl.closer != nil {
		if cerr := tl.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing tick log: %w", cerr)
		}
		tl.closer = nil
	}
	return err
}
