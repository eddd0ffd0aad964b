package driver

import (
	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/observ"
	"zigscope/internal/project"
	"zigscope/internal/source"
	"zigscope/internal/symbols"
	"zigscope/internal/token"
)

// summarySchemaVersion - increment when Summary changes shape.
const summarySchemaVersion uint16 = 1

// Summary is what survives of one analysed file once its tree is dropped:
// the disk cache and the symbol index store it.
type Summary struct {
	Schema       uint16             `msgpack:"schema"`
	Path         string             `msgpack:"path"`
	Hash         project.Digest     `msgpack:"hash"`
	Declarations []Declaration      `msgpack:"decls"`
	Refs         RefStats           `msgpack:"refs"`
	Diagnostics  []CachedDiagnostic `msgpack:"diags"`
	Timing       observ.Report      `msgpack:"timing"`
}

// Declaration is one container-level name. Members of containers bound to
// a constant are qualified with the constant's name, e.g. "List.append".
type Declaration struct {
	Name   string `msgpack:"name"`
	Role   string `msgpack:"role"`
	Public bool   `msgpack:"pub"`
	Line   uint32 `msgpack:"line"`
	Col    uint32 `msgpack:"col"`
}

// CachedDiagnostic drops notes and fixes; spans keep byte offsets only.
type CachedDiagnostic struct {
	Severity uint8  `msgpack:"sev"`
	Code     uint16 `msgpack:"code"`
	Message  string `msgpack:"msg"`
	Start    uint32 `msgpack:"start"`
	End      uint32 `msgpack:"end"`
}

func summarize(file *source.File, tree *ast.Tree, res *symbols.Resolver, bag *diag.Bag, refs RefStats) *Summary {
	s := &Summary{
		Schema: summarySchemaVersion,
		Path:   file.Path,
		Hash:   file.Hash,
		Refs:   refs,
	}
	if tree != nil {
		s.Declarations = collectDeclarations(file, tree, res, tree.Root(), "")
	}
	for _, d := range bag.Items() {
		s.Diagnostics = append(s.Diagnostics, CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	return s
}

func collectDeclarations(file *source.File, tree *ast.Tree, res *symbols.Resolver, scope ast.NodeID, prefix string) []Declaration {
	var out []Declaration
	for _, member := range tree.Children(scope) {
		var sym ast.NodeID
		switch tree.Kind(member) {
		case ast.KindVarDecl:
			sym = tree.ChildOfKind(member, ast.KindSymbol)
		case ast.KindFnDecl:
			sym = tree.ChildOfKind(tree.ChildOfKind(member, ast.KindFnProto), ast.KindSymbol)
		case ast.KindFnProto:
			sym = tree.ChildOfKind(member, ast.KindSymbol)
		case ast.KindContainerField:
			sym = tree.ChildOfKind(member, ast.KindSymbol)
		}
		if !sym.IsValid() || tree.HasError(member) {
			continue
		}
		name := prefix + tree.Name(sym)
		pos := file.Position(tree.Span(sym).Start)
		out = append(out, Declaration{
			Name:   name,
			Role:   res.Role(sym).String(),
			Public: tree.HasTokenChild(member, token.KwPub),
			Line:   pos.Line,
			Col:    pos.Col,
		})
		if inner := tree.ChildOfKind(member, ast.KindContainerDecl); inner.IsValid() {
			out = append(out, collectDeclarations(file, tree, res, inner, name+".")...)
		}
	}
	return out
}

// restoreBag rebuilds diagnostics of a cached summary against file.
func restoreBag(s *Summary, file source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(max(maxDiagnostics, len(s.Diagnostics)))
	for _, d := range s.Diagnostics {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: file, Start: d.Start, End: d.End},
		})
	}
	return bag
}
