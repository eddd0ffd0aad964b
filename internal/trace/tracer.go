package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultRingSize = 4096

// Tracer receives events from any goroutine.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode picks where events go: written out, kept in memory, or both.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing
	ModeBoth
)

var modeNames = map[StorageMode]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

func ParseMode(s string) (StorageMode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format
	Output     io.Writer // wins over OutputPath
	OutputPath string    // "" or "-" is stderr
	RingSize   int
	Heartbeat  time.Duration
}

// New builds the tracer described by cfg. LevelOff gives Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Mode != ModeStream && cfg.Mode != ModeRing && cfg.Mode != ModeBoth {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	if cfg.Format == FormatAuto {
		cfg.Format = formatForPath(cfg.OutputPath)
	}

	var sinks []Tracer
	if cfg.Mode != ModeRing {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, NewStreamTracer(w, cfg.Level, cfg.Format))
	}
	if cfg.Mode != ModeStream {
		sinks = append(sinks, NewRingTracer(cfg.RingSize, cfg.Level))
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return &tee{sinks: sinks, level: cfg.Level}, nil
}

func formatForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".ndjson", ".json":
		return FormatNDJSON
	}
	return FormatText
}

// Ring finds the ring buffer behind t.
func Ring(t Tracer) *RingTracer {
	switch tt := t.(type) {
	case *RingTracer:
		return tt
	case *tee:
		for _, s := range tt.sinks {
			if r := Ring(s); r != nil {
				return r
			}
		}
	}
	return nil
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "", cfg.OutputPath == "-":
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

func isStdStream(w io.Writer) bool {
	return w == io.Writer(os.Stderr) || w == io.Writer(os.Stdout)
}

// tee sends every event to all sinks.
type tee struct {
	sinks []Tracer
	level Level
}

func (t *tee) Emit(ev *Event) {
	for _, s := range t.sinks {
		s.Emit(ev)
	}
}

func (t *tee) Flush() error  { return t.each(Tracer.Flush) }
func (t *tee) Close() error  { return t.each(Tracer.Close) }
func (t *tee) Level() Level  { return t.level }
func (t *tee) Enabled() bool { return t.level > LevelOff }

func (t *tee) each(fn func(Tracer) error) error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, fn(s))
	}
	return errors.Join(errs...)
}
