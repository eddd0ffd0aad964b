package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"zigscope/internal/source"
)

// shortLine is one "severity CODE path:line:col message" entry.
type shortLine struct {
	sev, code, path, msg string
	line, col            uint32
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

func compareShort(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatShort renders one line per diagnostic (and per note with
// includeNotes), sorted by location. Paths are relative to baseDir where
// possible and always use forward slashes. Used by golden tests and the
// short output format.
func FormatShort(diags []Diagnostic, fs *source.FileSet, baseDir string, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	at := func(sp source.Span) (string, source.LineCol, bool) {
		if int(sp.File) >= fs.Len() {
			return "", source.LineCol{}, false
		}
		f := fs.Get(sp.File)
		return shortPath(f.FormatPath("relative", baseDir)), f.Position(sp.Start), true
	}

	var lines []shortLine
	for _, d := range diags {
		path, pos, ok := at(d.Primary)
		if !ok {
			continue
		}
		code := d.Code.ID()
		lines = append(lines, shortLine{d.Severity.Label(), code, path, oneLine(d.Message), pos.Line, pos.Col})
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if npath, npos, ok := at(n.Span); ok {
				lines = append(lines, shortLine{"note", code, npath, oneLine(n.Msg), npos.Line, npos.Col})
			}
		}
	}
	slices.SortStableFunc(lines, compareShort)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func shortPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// oneLine folds line breaks into spaces.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
