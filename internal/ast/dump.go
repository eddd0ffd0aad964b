package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"zigscope/internal/token"
)

// Sexpr renders the subtree of id without trivia, e.g.
// (VarDecl const (Symbol x) = (Literal 1) ;). Used by tests and `zigscope parse --sexpr`.
func (t *Tree) Sexpr(id NodeID) string {
	var sb strings.Builder
	t.sexpr(&sb, id)
	return sb.String()
}

func (t *Tree) sexpr(sb *strings.Builder, id NodeID) {
	if tok, ok := t.TokenOf(id); ok {
		sb.WriteString(tok.Text)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(t.Kind(id).String())
	for _, c := range t.Children(id) {
		if t.IsTrivia(c) || t.TokenKind(c) == token.EOF {
			continue
		}
		sb.WriteByte(' ')
		t.sexpr(sb, c)
	}
	sb.WriteByte(')')
}

// Dump writes an indented outline of the subtree with spans. Trivia leaves
// are printed only when withTrivia is set.
func (t *Tree) Dump(w io.Writer, id NodeID, withTrivia bool) error {
	return t.dump(w, id, 0, withTrivia)
}

func (t *Tree) dump(w io.Writer, id NodeID, depth int, withTrivia bool) error {
	sp := t.Span(id)
	indent := strings.Repeat("  ", depth)
	var err error
	if tok, ok := t.TokenOf(id); ok {
		if tok.IsTrivia() && !withTrivia {
			return nil
		}
		_, err = fmt.Fprintf(w, "%s%s %d..%d %s\n", indent, tok.Kind, sp.Start, sp.End, strconv.Quote(tok.Text))
		return err
	}
	mark := ""
	if t.Kind(id) == KindError {
		mark = " !"
	}
	if _, err = fmt.Fprintf(w, "%s%s %d..%d%s\n", indent, t.Kind(id), sp.Start, sp.End, mark); err != nil {
		return err
	}
	for _, c := range t.Children(id) {
		if err = t.dump(w, c, depth+1, withTrivia); err != nil {
			return err
		}
	}
	return nil
}
