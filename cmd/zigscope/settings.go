package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zigscope/internal/diag"
	"zigscope/internal/diagfmt"
	"zigscope/internal/driver"
	"zigscope/internal/project"
	"zigscope/internal/source"
)

// errHasErrors makes the process exit with status 1 without printing anything
// on top of the diagnostics already shown.
var errHasErrors = errors.New("errors reported")

// settings is the manifest with command-line overrides applied.
type settings struct {
	manifest *project.Manifest
	found    bool

	maxDiagnostics int
	color          bool
	quiet          bool
	timings        bool
	pathMode       diagfmt.PathMode
	baseDir        string
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	s := &settings{}
	if configPath != "" {
		s.manifest, err = project.LoadFile(configPath)
		s.found = err == nil
	} else {
		s.manifest, s.found, err = project.Load(".")
	}
	if err != nil {
		return nil, err
	}

	cfg := &s.manifest.Config.Analysis
	s.maxDiagnostics = cfg.MaxDiagnostics
	if n, err := flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	} else if n > 0 {
		s.maxDiagnostics = n
	}
	if s.maxDiagnostics == 0 {
		s.maxDiagnostics = project.Default().Analysis.MaxDiagnostics
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto", "":
		s.color = isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	modeFlag, err := flags.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(modeFlag)
	if !ok {
		return nil, fmt.Errorf("invalid --path-mode value %q", modeFlag)
	}
	s.pathMode = mode
	s.baseDir = s.manifest.BaseDir()
	if s.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			s.baseDir = wd
		}
	}
	s.baseDir = filepath.Clean(s.baseDir)
	return s, nil
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   2,
		PathMode:  s.pathMode,
		BaseDir:   s.baseDir,
		ShowNotes: true,
		ShowFixes: true,
	}
}

func (s *settings) jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         s.pathMode,
		BaseDir:          s.baseDir,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}
}

// printDiagnostics writes warnings and errors to stderr. Info diagnostics are
// shown only with --timings, which is what produces most of them.
func (s *settings) printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if !s.timings && !bag.HasWarnings() {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, s.prettyOpts())
}

func (s *settings) driverOptions() driver.Options {
	cfg := s.manifest.Config.Analysis
	return driver.Options{
		MaxDiagnostics:   s.maxDiagnostics,
		Jobs:             cfg.Jobs,
		ReportUnresolved: cfg.ReportUnresolved,
		Extensions:       cfg.Extensions,
		Timings:          s.timings,
		BaseDir:          s.baseDir,
	}
}
