// Package diag defines the diagnostic model shared by the lexer, the parser and
// the host-side reference checks.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (LEX/SYN/RES/IO/PRJ ranges), a short Message, the Primary
// span and optional Notes and Fixes.
//
// Producers emit through a Reporter (BagReporter, DedupReporter) and never
// format anything themselves; rendering lives in internal/diagfmt.
//
// Syntax and lexical problems are data, not Go errors: a malformed file still
// produces a complete token stream and tree plus a Bag of diagnostics.
package diag
