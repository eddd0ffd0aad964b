package diagfmt

import (
	"encoding/json"
	"io"

	"zigscope/internal/diag"
	"zigscope/internal/source"
)

// LocationJSON is a span in machine-readable form. Line and column fields are
// only filled with JSONOpts.IncludePositions.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON. Count is the number of
// entries in Diagnostics; Omitted counts the ones cut by JSONOpts.Max and
// Dropped the ones the bag refused past its limit.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Omitted     int              `json:"omitted,omitempty"`
	Dropped     int              `json:"dropped,omitempty"`
}

// locator turns spans into LocationJSON with one set of path settings.
type locator struct {
	fs        *source.FileSet
	mode      PathMode
	baseDir   string
	positions bool
}

func (l locator) at(sp source.Span) LocationJSON {
	loc := LocationJSON{StartByte: sp.Start, EndByte: sp.End}
	f, err := fileOf(l.fs, sp)
	if err != nil {
		return loc
	}
	loc.File = formatPath(f, l.mode, l.baseDir)
	if l.positions {
		start, end := f.Position(sp.Start), f.Position(sp.End)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (l locator) fix(fx diag.Fix, previews bool) FixJSON {
	out := FixJSON{Title: fx.Title, Edits: make([]FixEditJSON, 0, len(fx.Edits))}
	for _, edit := range fx.Edits {
		ej := FixEditJSON{
			Location: l.at(edit.Span),
			NewText:  edit.NewText,
			OldText:  spanText(l.fs, edit.Span),
		}
		if previews {
			if p, err := buildFixEditPreview(l.fs, edit); err == nil {
				ej.BeforeLines, ej.AfterLines = p.before, p.after
			}
		}
		out.Edits = append(out.Edits, ej)
	}
	return out
}

// BuildDiagnosticsOutput converts bag without encoding it. Timing reports
// always keep their notes since the notes are the payload.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	loc := locator{fs: fs, mode: opts.PathMode, baseDir: opts.BaseDir, positions: opts.IncludePositions}
	items := bag.Items()
	shown := items
	if opts.Max > 0 && opts.Max < len(items) {
		shown = items[:opts.Max]
	}

	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(shown)),
		Errors:      bag.Count(diag.SevError),
		Warnings:    bag.Count(diag.SevWarning),
		Omitted:     len(items) - len(shown),
		Dropped:     bag.Dropped(),
	}
	for _, d := range shown {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: loc.at(d.Primary),
		}
		if opts.IncludeNotes || d.Code == diag.ObsTimings {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: loc.at(n.Span)})
			}
		}
		if opts.IncludeFixes {
			for _, fx := range d.Fixes {
				dj.Fixes = append(dj.Fixes, loc.fix(fx, opts.IncludePreviews))
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out, nil
}

// JSON writes bag as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
