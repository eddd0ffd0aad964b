package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ManifestName is the zigscope configuration file.
	ManifestName = "zigscope.toml"
	// BuildFileName marks the root of a Zig build.
	BuildFileName = "build.zig"
)

// Location is what a walk up from a directory found. Either field may be empty.
type Location struct {
	Manifest  string // path of the nearest zigscope.toml
	BuildRoot string // nearest directory holding build.zig
}

// Locate walks up from startDir to the filesystem root. The walk stops at
// the first zigscope.toml; build.zig files seen on the way are remembered.
func Locate(startDir string) (Location, error) {
	var loc Location
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return loc, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		if loc.BuildRoot == "" {
			ok, err := isFile(filepath.Join(dir, BuildFileName))
			if err != nil {
				return loc, err
			}
			if ok {
				loc.BuildRoot = dir
			}
		}
		candidate := filepath.Join(dir, ManifestName)
		ok, err := isFile(candidate)
		if err != nil {
			return loc, err
		}
		if ok {
			loc.Manifest = candidate
			return loc, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return loc, nil
		}
		dir = parent
	}
}

// FindManifest is Locate reduced to the manifest path.
func FindManifest(startDir string) (path string, ok bool, err error) {
	loc, err := Locate(startDir)
	if err != nil {
		return "", false, err
	}
	return loc.Manifest, loc.Manifest != "", nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
}
