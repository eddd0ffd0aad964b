package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the decoded zigscope.toml.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Zig      ZigConfig      `toml:"zig"`
}

type AnalysisConfig struct {
	Extensions       []string `toml:"extensions"`
	MaxDiagnostics   int      `toml:"max_diagnostics"`
	Jobs             int      `toml:"jobs"`
	ReportUnresolved bool     `toml:"report_unresolved"`
}

// ZigConfig points at a compiler. zigscope never runs it.
type ZigConfig struct {
	Exe string `toml:"exe"`
}

// Manifest is a located and decoded zigscope.toml. Without a manifest only
// Config (defaults) and BuildRoot may be set.
type Manifest struct {
	Path      string
	Root      string
	BuildRoot string
	Config    Config
}

var (
	// ErrBadExtension indicates an [analysis].extensions entry without a leading dot.
	ErrBadExtension = errors.New("extension must start with '.'")
	// ErrNegativeLimit indicates a negative max_diagnostics or jobs value.
	ErrNegativeLimit = errors.New("limit must not be negative")
)

// Default is the configuration used when no manifest is found.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{
			Extensions:       []string{".zig"},
			MaxDiagnostics:   100,
			ReportUnresolved: true,
		},
	}
}

// Load finds and decodes the manifest above startDir. ok is false when
// there is none; the returned manifest then carries Default().
func Load(startDir string) (*Manifest, bool, error) {
	loc, err := Locate(startDir)
	if err != nil {
		return nil, false, err
	}
	if loc.Manifest == "" {
		return &Manifest{BuildRoot: loc.BuildRoot, Config: Default()}, false, nil
	}
	m, err := LoadFile(loc.Manifest)
	if err != nil {
		return nil, true, err
	}
	m.BuildRoot = loc.BuildRoot
	return m, true, nil
}

// BaseDir is the directory relative paths are printed from: the manifest
// root, else the Zig build root, else "".
func (m *Manifest) BaseDir() string {
	if m.Root != "" {
		return m.Root
	}
	return m.BuildRoot
}

// LoadFile decodes one manifest. Keys left out keep their Default() values.
func LoadFile(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

func (c *Config) validate() error {
	for _, ext := range c.Analysis.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("[analysis].extensions %q: %w", ext, ErrBadExtension)
		}
	}
	if c.Analysis.MaxDiagnostics < 0 {
		return fmt.Errorf("[analysis].max_diagnostics: %w", ErrNegativeLimit)
	}
	if c.Analysis.Jobs < 0 {
		return fmt.Errorf("[analysis].jobs: %w", ErrNegativeLimit)
	}
	return nil
}

// HasExtension reports whether path should be analysed.
func (c *Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.Analysis.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// ZigExe resolves the configured compiler path, falling back to PATH lookup.
// Relative paths are taken from the manifest root.
func (m *Manifest) ZigExe() (string, error) {
	exe := strings.TrimSpace(m.Config.Zig.Exe)
	if exe == "" {
		return exec.LookPath("zig")
	}
	if !filepath.IsAbs(exe) && m.Root != "" {
		exe = filepath.Join(m.Root, exe)
	}
	info, err := os.Stat(exe)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", exe)
	}
	return exe, nil
}

// Encode writes the configuration back as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
