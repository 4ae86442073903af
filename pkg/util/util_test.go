package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name         string
		x, low, high float64
		want         float64
	}{
		{name: "below", x: -3, low: 0, high: 10, want: 0},
		{name: "inside", x: 4.5, low: 0, high: 10, want: 4.5},
		{name: "above", x: 12, low: 0, high: 10, want: 10},
		{name: "negative band", x: -80, low: -73.3, high: -25, want: -73.3},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.x, tc.low, tc.high); got != tc.want {
				t.Fatalf("%s: want %v got %v", tc.name, tc.want, got)
			}
		})
	}

	if got := Clamp(7, 1, 5); got != 5 {
		t.Fatalf("int clamp: want 5 got %d", got)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	type section struct {
		Level string  `yaml:"level"`
		DT    float64 `yaml:"dt_s"`
	}
	type file struct {
		Section section `yaml:"section"`
	}

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("section:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := file{Section: section{Level: "info", DT: 0.5}}
	if err := LoadConfigInto(path, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Section.Level != "debug" || cfg.Section.DT != 0.5 {
		t.Fatalf("override mismatch: %+v", cfg.Section)
	}

	loaded, err := LoadConfig[file](path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Section.DT != 0 {
		t.Fatalf("fresh load should not carry defaults, got %v", loaded.Section.DT)
	}

	if _, err := LoadConfig[file](filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
