// Package document is the host-facing view of one open Zig file.
//
// A Document owns the current syntax tree and its resolver. Text edits are
// copy-on-write: they reparse into a fresh tree with the next generation, so
// callers that still hold the previous tree keep getting consistent answers.
// Renames are the one in-place mutation; they patch an identifier leaf of the
// live tree and report how the affected references resolve afterwards.
//
// Every method serialises on the document's mutex.
package document
