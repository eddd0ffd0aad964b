package pipeline

import (
	"path/filepath"
	"slices"
	"strings"
)

// DisplayFiles maps paths through DisplayName, then sorts and dedups them.
// Empty entries are dropped.
func DisplayFiles(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		if f != "" {
			out = append(out, DisplayName(f, baseDir))
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// DisplayName makes file slash-separated and, when it sits under baseDir,
// relative to it.
func DisplayName(file, baseDir string) string {
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base == "" {
		return filepath.ToSlash(path)
	}
	absBase, err1 := filepath.Abs(base)
	absPath, err2 := filepath.Abs(path)
	if err1 != nil || err2 != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(rel)
}
