package diag

import "zigscope/internal/source"

// Reporter receives diagnostics from the lexer, parser and reference check.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// ReporterFunc adapts a function taking whole diagnostics to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	f(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes, Fixes: fixes})
}

// BagReporter пишет в *Bag; nil Bag глотает всё.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Bag != nil {
		ReporterFunc(func(d Diagnostic) { r.Bag.Add(d) }).Report(code, sev, primary, msg, notes, fixes)
	}
}

// ReportBuilder accumulates notes and fixes for one diagnostic. All methods
// accept a nil receiver.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithFix(title, edits...)
	}
	return b
}

// Emit sends the diagnostic once; later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.sent || b.to == nil {
		return
	}
	b.sent = true
	b.to.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message, b.d.Notes, b.d.Fixes)
}

func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.d
}
