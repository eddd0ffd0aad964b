package fix

import (
	"zigscope/internal/diag"
	"zigscope/internal/source"
)

// InsertText inserts text at the start of at.
func InsertText(title string, at source.Span, text string) diag.Fix {
	at.End = at.Start
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: at, NewText: text}},
	}
}

// DeleteSpan removes the source covered by span.
func DeleteSpan(title string, span source.Span) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: span}},
	}
}

// ReplaceSpan replaces span with newText.
func ReplaceSpan(title string, span source.Span, newText string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: span, NewText: newText}},
	}
}
