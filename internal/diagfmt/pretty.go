package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"zigscope/internal/diag"
	"zigscope/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, path, gutter, caret, note, fix, removed, added *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.Faint),
		path:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgGreen, color.Bold),
		note:    color.New(color.FgCyan),
		fix:     color.New(color.FgMagenta),
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note, p.fix, p.removed, p.added} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <sev> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := d.Severity.Label()
	located := hasLocation(d.Code)
	loc, file, start, end := locate(fs, d.Primary, located, opts)
	fmt.Fprintf(w, "%s %s %s: %s\n",
		pal.path.Sprint(loc+":"),
		pal.severity(d.Severity).Sprint(sev),
		pal.code.Sprint(d.Code.ID()),
		d.Message)
	if file != nil {
		snippet(w, file, start, end, opts, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nloc, nfile, nstart, nend := locate(fs, n.Span, located, opts)
			if nfile == nil {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s %s %s\n", pal.note.Sprint("note:"), pal.path.Sprint(nloc+":"), n.Msg)
			if opts.Context >= 0 {
				snippet(w, nfile, nstart, nend, PrettyOpts{Width: opts.Width}, pal)
			}
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprint("fix:"), fix.Title)
			if !opts.ShowPreview {
				continue
			}
			for _, edit := range fix.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, line := range preview.before {
					fmt.Fprintf(w, "    %s\n", pal.removed.Sprint("- "+line))
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "    %s\n", pal.added.Sprint("+ "+line))
				}
			}
		}
	}
}

// hasLocation is false for codes whose span is a placeholder.
func hasLocation(code diag.Code) bool {
	switch code {
	case diag.IOLoadFileError, diag.PrjManifestError, diag.PrjZigExeNotFound, diag.ObsTimings:
		return false
	}
	return true
}

// locate resolves a span for display. file is nil for spans that point nowhere.
func locate(fs *source.FileSet, sp source.Span, located bool, opts PrettyOpts) (loc string, file *source.File, start, end source.LineCol) {
	if !located || fs == nil || int(sp.File) >= fs.Len() {
		return "<unknown>", nil, start, end
	}
	file = fs.Get(sp.File)
	start, end = fs.Resolve(sp)
	loc = fmt.Sprintf("%s:%d:%d", formatPath(file, opts.PathMode, opts.BaseDir), start.Line, start.Col)
	return loc, file, start, end
}

// snippet prints the context lines and the caret line under the first line
// of the span.
func snippet(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts, pal palette) {
	first := uint32(1)
	if ctx := uint32(max(opts.Context, 0)); start.Line > ctx {
		first = start.Line - ctx
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		text := displayLine(f.GetLine(ln), opts.Width)
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := f.GetLine(start.Line)
	from := min(int(start.Col-1), len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col-1), len(line))
	}
	pad := displayWidth(line[:from])
	width := max(displayWidth(line[from:max(to, from)]), 1)
	if opts.Width > 0 && pad >= int(opts.Width) {
		return
	}
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marks))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

func displayLine(s string, width uint8) string {
	s = expandTabs(s)
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
