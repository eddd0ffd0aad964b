package diag

import (
	"zigscope/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces Span with NewText. An empty span inserts.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a machine-applicable suggestion attached to a diagnostic.
type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

// ShiftAfter moves every span of d in file that starts at or after from by
// delta bytes. Notes and fixes get fresh slices, so d's backing arrays stay
// untouched.
func (d Diagnostic) ShiftAfter(file source.FileID, from uint32, delta int64) Diagnostic {
	return d.mapSpans(func(sp source.Span) source.Span {
		if sp.File == file && sp.Start >= from {
			return sp.Shift(delta)
		}
		return sp
	})
}

// Retarget points every span of d in file from at file to.
func (d Diagnostic) Retarget(from, to source.FileID) Diagnostic {
	return d.mapSpans(func(sp source.Span) source.Span {
		if sp.File == from {
			sp.File = to
		}
		return sp
	})
}

func (d Diagnostic) mapSpans(fn func(source.Span) source.Span) Diagnostic {
	d.Primary = fn(d.Primary)
	if len(d.Notes) > 0 {
		notes := make([]Note, len(d.Notes))
		for i, n := range d.Notes {
			notes[i] = Note{Span: fn(n.Span), Msg: n.Msg}
		}
		d.Notes = notes
	}
	if len(d.Fixes) > 0 {
		fixes := make([]Fix, len(d.Fixes))
		for i, f := range d.Fixes {
			edits := make([]FixEdit, len(f.Edits))
			for j, e := range f.Edits {
				edits[j] = FixEdit{Span: fn(e.Span), NewText: e.NewText}
			}
			fixes[i] = Fix{Title: f.Title, Edits: edits}
		}
		d.Fixes = fixes
	}
	return d
}
