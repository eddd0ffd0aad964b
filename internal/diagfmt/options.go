package diagfmt

import "zigscope/internal/source"

// PathMode selects how file paths are shown.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // as loaded
	PathModeAbsolute
	PathModeRelative // to BaseDir
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return "unknown"
}

// ParsePathMode accepts the names above; "" means auto.
func ParsePathMode(s string) (PathMode, bool) {
	if s == "" {
		return PathModeAuto, true
	}
	for m, name := range pathModeNames {
		if s == name {
			return PathMode(m), true // #nosec G115 -- four modes
		}
	}
	return PathModeAuto, false
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8
	PathMode    PathMode
	BaseDir     string
	Width       uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	if mode != PathModeRelative {
		baseDir = ""
	}
	return f.FormatPath(mode.String(), baseDir)
}

// DisplayPath formats the path of f the same way diagnostics do.
func DisplayPath(f *source.File, mode PathMode, baseDir string) string {
	return formatPath(f, mode, baseDir)
}
