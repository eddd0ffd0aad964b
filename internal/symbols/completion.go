package symbols

import (
	"context"

	"zigscope/internal/ast"
)

type CandidateKind uint8

const (
	CandidateVariable CandidateKind = iota
	CandidateFunction
	CandidateParameter
)

func (k CandidateKind) String() string {
	switch k {
	case CandidateFunction:
		return "function"
	case CandidateParameter:
		return "parameter"
	default:
		return "variable"
	}
}

// Candidate is one completion proposal.
type Candidate struct {
	Name string
	Decl ast.NodeID
	Kind CandidateKind
	// Tail is shown after the name but not inserted, "()" for functions.
	Tail string
}

// Completions collects every declaration visible from `from`. Inner names
// shadow outer ones with the same spelling. Payloads, labels, fields and
// declarations inside broken syntax are left out.
func (r *Resolver) Completions(ctx context.Context, from ast.NodeID) ([]Candidate, error) {
	var out []Candidate
	seen := make(map[string]bool)
	for decl, err := range r.VisibleDeclarations(ctx, from, ast.NoNodeID) {
		if err != nil {
			return nil, err
		}
		name := r.tree.Name(decl)
		if seen[name] || !IsDeclarationName(r.tree, decl) || r.tree.Enclosing(decl, ast.KindError).IsValid() {
			continue
		}
		seen[name] = true
		c := Candidate{Name: name, Decl: decl}
		switch {
		case IsFunctionName(r.tree, decl):
			c.Kind, c.Tail = CandidateFunction, "()"
		case IsParameter(r.tree, decl):
			c.Kind = CandidateParameter
		}
		out = append(out, c)
	}
	return out, nil
}

// CompletionsAt completes at a byte offset: the walk starts from the leaf
// under the caret.
func (r *Resolver) CompletionsAt(ctx context.Context, off uint32) ([]Candidate, error) {
	from := r.tree.SymbolAt(off)
	if !from.IsValid() {
		from = r.tree.LeafAt(off)
	}
	return r.Completions(ctx, from)
}
