package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"zigscope/internal/trace"
)

func addTraceFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")
}

type traceFlags struct {
	output, level, mode, format string
	ringSize                    int
	heartbeat                   time.Duration
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var tf traceFlags
	var errs []error
	for name, dst := range map[string]*string{
		"trace":        &tf.output,
		"trace-level":  &tf.level,
		"trace-mode":   &tf.mode,
		"trace-format": &tf.format,
	} {
		v, err := flags.GetString(name)
		*dst = v
		errs = append(errs, err)
	}
	var err error
	tf.ringSize, err = flags.GetInt("trace-ring-size")
	errs = append(errs, err)
	tf.heartbeat, err = flags.GetDuration("trace-heartbeat")
	errs = append(errs, err)
	return tf, errors.Join(errs...)
}

// config turns the flags into a tracer config. A bare --trace implies
// phase level.
func (tf traceFlags) config() (trace.Config, error) {
	level, err := trace.ParseLevel(tf.level)
	if err != nil {
		return trace.Config{}, err
	}
	if level == trace.LevelOff && tf.output != "" {
		level = trace.LevelPhase
	}
	cfg := trace.Config{Level: level, OutputPath: tf.output, RingSize: tf.ringSize, Heartbeat: tf.heartbeat}
	if level == trace.LevelOff {
		return cfg, nil
	}
	if cfg.Mode, err = trace.ParseMode(tf.mode); err != nil {
		return cfg, err
	}
	if cfg.Format, err = trace.ParseFormat(tf.format); err != nil {
		return cfg, err
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "-"
	}
	return cfg, nil
}

// setupTracing installs the tracer in the command context and returns its cleanup.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := tf.config()
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
	if !tracer.Enabled() {
		return func() {}, nil
	}

	var hb *trace.Heartbeat
	if cfg.Heartbeat > 0 {
		hb = trace.StartHeartbeat(tracer, cfg.Heartbeat)
	}
	return func() {
		if hb != nil {
			hb.Stop()
		}
		if err := errors.Join(tracer.Flush(), tracer.Close()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}

// dumpTraceOnPanic prints the ring buffer, then re-panics.
func dumpTraceOnPanic(cmd *cobra.Command) {
	r := recover()
	if r == nil {
		return
	}
	if ring := trace.Ring(trace.FromContext(cmd.Context())); ring != nil {
		fmt.Fprintf(os.Stderr, "panic: %v\n-- last %d trace events (%s) --\n", r, ring.Len(), time.Now().Format(time.RFC3339))
		if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
			fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
		}
	}
	panic(r)
}
