// Package logger is the process-wide structured logger. It is a thin layer over
// logrus so call sites read like the standard log package while still carrying
// fields, and it can rotate its output file.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Logging struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		JSON       bool   `yaml:"json"`
	} `yaml:"logging"`
}

type Fields = logrus.Fields

var std = logrus.New()

// Init configures the global logger. An empty file keeps output on stderr;
// otherwise output goes to both stderr and a rotating file.
func Init(cfg Config) {
	lc := cfg.Logging
	SetLevel(ParseLevel(lc.Level))

	if lc.JSON {
		std.SetFormatter(&logrus.JSONFormatter{})
	} else {
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if lc.File == "" {
		std.SetOutput(os.Stderr)
		return
	}

	if dir := filepath.Dir(lc.File); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			std.Warnf("unable to create log directory %s: %v", dir, err)
		}
	}
	w := &lumberjack.Logger{
		Filename:   lc.File,
		MaxSize:    lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
	}
	if w.MaxSize == 0 {
		w.MaxSize = 32 // MB
	}
	std.SetOutput(io.MultiWriter(os.Stderr, w))
}

// SetOutput redirects the logger, mainly so tests can capture or discard it.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// ParseLevel maps a level name to a logrus level, defaulting to info.
func ParseLevel(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func SetLevel(l logrus.Level) { std.SetLevel(l) }

func WithFields(f Fields) *logrus.Entry { return std.WithFields(f) }

func Debugf(format string, args ...any) { std.Debugf(format, args...) }

func Info(args ...any) { std.Info(args...) }

func Infof(format string, args ...any) { std.Infof(format, args...) }

func Warn(args ...any) { std.Warn(args...) }

func Warnf(format string, args ...any) { std.Warnf(format, args...) }

func Errorf(format string, args ...any) { std.Errorf(format, args...) }

func Fatalf(format string, args ...any) { std.Fatalf(format, args...) }
