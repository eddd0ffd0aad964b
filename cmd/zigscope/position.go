package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"zigscope/internal/ast"
	"zigscope/internal/document"
	"zigscope/internal/source"
)

// parsePosition accepts `line:col` (1-based, col in bytes) or a byte offset.
func parsePosition(f *source.File, pos string) (uint32, error) {
	if lineStr, colStr, ok := strings.Cut(pos, ":"); ok {
		line, err := strconv.ParseUint(lineStr, 10, 32)
		if err != nil || line == 0 {
			return 0, fmt.Errorf("invalid line in %q", pos)
		}
		col, err := strconv.ParseUint(colStr, 10, 32)
		if err != nil || col == 0 {
			return 0, fmt.Errorf("invalid column in %q", pos)
		}
		return f.Offset(source.LineCol{Line: uint32(line), Col: uint32(col)})
	}
	off, err := strconv.ParseUint(pos, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q (expected line:col or byte offset)", pos)
	}
	if uint32(off) > f.Len() {
		return 0, fmt.Errorf("offset %d is past the end of %s", off, f.Path)
	}
	return uint32(off), nil
}

// openDocument reads path into a fresh document.
func openDocument(path string, maxDiagnostics int) (*document.Document, *source.FileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fs := source.NewFileSet()
	doc := document.Open(fs, path, data)
	doc.SetMaxDiagnostics(maxDiagnostics)
	return doc, fs, nil
}

// symbolAt finds the identifier under pos.
func symbolAt(doc *document.Document, pos string) (ast.NodeID, error) {
	off, err := parsePosition(doc.File(), pos)
	if err != nil {
		return ast.NoNodeID, err
	}
	sym := doc.Tree().SymbolAt(off)
	if !sym.IsValid() {
		return ast.NoNodeID, fmt.Errorf("no identifier at %s", pos)
	}
	return sym, nil
}
