// Package traffic loads aircraft sets from scenario files, aircraft CSV tables
// and recorded ADS-B tracks. Every loader fails on the first malformed record
// and names the file, row and field.
package traffic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrMissingField is wrapped by every error caused by an absent or empty
// required field.
var ErrMissingField = errors.New("missing required field")

// NormalizeCallsign trims and upper-cases a callsign so that "ual202 " and
// "UAL202" name the same aircraft.
func NormalizeCallsign(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// table is a CSV file read into memory with its header indexed.
type table struct {
	path string
	cols map[string]int
	rows [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	t := &table{path: path, cols: make(map[string]int, len(header))}
	for i, h := range header {
		t.cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	t.rows, err = r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (t *table) require(fields ...string) error {
	for _, f := range fields {
		if _, ok := t.cols[f]; !ok {
			return fmt.Errorf("%s: header: %w %q", t.path, ErrMissingField, f)
		}
	}
	return nil
}

// row is one data row; n is 1-based and counts the header as row 1 so it
// matches what an editor shows.
type row struct {
	t      *table
	n      int
	fields []string
}

func (t *table) row(i int) row {
	return row{t: t, n: i + 2, fields: t.rows[i]}
}

func (r row) raw(field string) (string, bool) {
	i, ok := r.t.cols[field]
	if !ok || i >= len(r.fields) {
		return "", false
	}
	v := strings.TrimSpace(r.fields[i])
	return v, v != ""
}

func (r row) str(field string) (string, error) {
	v, ok := r.raw(field)
	if !ok {
		return "", fmt.Errorf("%s: row %d: %w %q", r.t.path, r.n, ErrMissingField, field)
	}
	return v, nil
}

func (r row) float(field string) (float64, error) {
	v, err := r.str(field)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: row %d: field %q: %w", r.t.path, r.n, field, err)
	}
	return f, nil
}

func (r row) optFloat(field string, def float64) (float64, error) {
	if _, ok := r.raw(field); !ok {
		return def, nil
	}
	return r.float(field)
}

func (r row) optBool(field string, def bool) (bool, error) {
	v, ok := r.raw(field)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: row %d: field %q: %w", r.t.path, r.n, field, err)
	}
	return b, nil
}

func (r row) optStr(field string) string {
	v, _ := r.raw(field)
	return v
}

func addUnique(fleet map[string]*model.Aircraft, ac *model.Aircraft, where string) error {
	if _, dup := fleet[ac.Callsign]; dup {
		return fmt.Errorf("%s: duplicate callsign %q", where, ac.Callsign)
	}
	fleet[ac.Callsign] = ac
	return nil
}
