package ast

import (
	"iter"

	"zigscope/internal/source"
	"zigscope/internal/token"
)

// Tree is a lossless concrete syntax tree of one file. Every token of the
// input, trivia included, is a leaf, so Text(Root()) equals the source.
type Tree struct {
	File   source.FileID
	nodes  *Arena[Node]
	tokens []token.Token
	text   []byte
	root   NodeID
	gen    uint64
	stamps []uint64 // per node: generation of the last change inside its subtree
}

func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes.
func (t *Tree) Len() int { return int(t.nodes.Len()) }

// Valid reports whether id names a node of this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id.IsValid() && uint32(id) <= t.nodes.Len()
}

// Node returns the arena slot for id. Callers must not mutate it.
func (t *Tree) Node(id NodeID) *Node { return t.nodes.Get(uint32(id)) }

func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

func (t *Tree) HasError(id NodeID) bool {
	n := t.Node(id)
	return n != nil && n.Flags&FlagHasError != 0
}

// Malformed reports whether id's subtree holds an Error node or was cut
// short by a missing token.
func (t *Tree) Malformed(id NodeID) bool {
	n := t.Node(id)
	return n != nil && n.Flags&(FlagHasError|FlagMissing) != 0
}

// Tokens returns the flat token stream the tree was built from.
func (t *Tree) Tokens() []token.Token { return t.tokens }

// Source returns the full text of the file.
func (t *Tree) Source() string { return string(t.text) }

// TokenOf returns the token of a leaf node.
func (t *Tree) TokenOf(id NodeID) (token.Token, bool) {
	n := t.Node(id)
	if n == nil || n.Kind != KindToken || n.Token == 0 {
		return token.Token{}, false
	}
	return t.tokens[n.Token-1], true
}

// TokenKind returns the token kind of a leaf, or token.Invalid for inner nodes.
func (t *Tree) TokenKind(id NodeID) token.Kind {
	tok, ok := t.TokenOf(id)
	if !ok {
		return token.Invalid
	}
	return tok.Kind
}

// IsTrivia reports whether id is a whitespace or comment leaf.
func (t *Tree) IsTrivia(id NodeID) bool {
	tok, ok := t.TokenOf(id)
	return ok && tok.IsTrivia()
}

// Text returns the source text covered by id.
func (t *Tree) Text(id NodeID) string {
	if tok, ok := t.TokenOf(id); ok {
		return tok.Text
	}
	sp := t.Span(id)
	if sp.End > uint32(len(t.text)) || sp.Start > sp.End {
		return ""
	}
	return string(t.text[sp.Start:sp.End])
}

// Name returns the identifier text of a Symbol node.
func (t *Tree) Name(id NodeID) string {
	if t.Kind(id) != KindSymbol {
		return ""
	}
	for _, c := range t.Children(id) {
		if tok, ok := t.TokenOf(c); ok && tok.Kind == token.Ident {
			return tok.Text
		}
	}
	return ""
}

// FirstChild returns the first child including trivia.
func (t *Tree) FirstChild(id NodeID) NodeID {
	if ch := t.Children(id); len(ch) > 0 {
		return ch[0]
	}
	return NoNodeID
}

// FirstSignificantChild returns the first child that is not a trivia leaf.
func (t *Tree) FirstSignificantChild(id NodeID) NodeID {
	for _, c := range t.Children(id) {
		if !t.IsTrivia(c) {
			return c
		}
	}
	return NoNodeID
}

// ChildOfKind returns the first direct child of kind k.
func (t *Tree) ChildOfKind(id NodeID, k Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.Kind(c) == k {
			return c
		}
	}
	return NoNodeID
}

// ChildrenOfKind returns every direct child of kind k, in order.
func (t *Tree) ChildrenOfKind(id NodeID, k Kind) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.Kind(c) == k {
			out = append(out, c)
		}
	}
	return out
}

// HasTokenChild reports whether id has a direct leaf child of token kind tk.
func (t *Tree) HasTokenChild(id NodeID, tk token.Kind) bool {
	for _, c := range t.Children(id) {
		if t.TokenKind(c) == tk {
			return true
		}
	}
	return false
}

func (t *Tree) sibling(id NodeID, step int) NodeID {
	n := t.Node(id)
	if n == nil || !n.Parent.IsValid() {
		return NoNodeID
	}
	siblings := t.Children(n.Parent)
	i := int(n.Index) + step
	if i < 0 || i >= len(siblings) {
		return NoNodeID
	}
	return siblings[i]
}

func (t *Tree) PrevSibling(id NodeID) NodeID { return t.sibling(id, -1) }

func (t *Tree) NextSibling(id NodeID) NodeID { return t.sibling(id, 1) }

// PrevSignificantSibling skips whitespace and comment leaves backwards.
func (t *Tree) PrevSignificantSibling(id NodeID) NodeID {
	for s := t.PrevSibling(id); s.IsValid(); s = t.PrevSibling(s) {
		if !t.IsTrivia(s) {
			return s
		}
	}
	return NoNodeID
}

// NextSignificantSibling skips whitespace and comment leaves forwards.
func (t *Tree) NextSignificantSibling(id NodeID) NodeID {
	for s := t.NextSibling(id); s.IsValid(); s = t.NextSibling(s) {
		if !t.IsTrivia(s) {
			return s
		}
	}
	return NoNodeID
}

// Ancestors yields the parent of id, then its parent, up to the root.
func (t *Tree) Ancestors(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for p := t.Parent(id); p.IsValid(); p = t.Parent(p) {
			if !yield(p) {
				return
			}
		}
	}
}

// IsAncestor reports whether anc is a strict ancestor of id.
func (t *Tree) IsAncestor(anc, id NodeID) bool {
	for p := range t.Ancestors(id) {
		if p == anc {
			return true
		}
	}
	return false
}

// Contains reports whether node lies in the subtree of ancestor, ancestor itself included.
func (t *Tree) Contains(ancestor, node NodeID) bool {
	return ancestor.IsValid() && (ancestor == node || t.IsAncestor(ancestor, node))
}

// Attached reports whether id is reachable from the root. Nodes dropped by
// the builder stay in the arena but are detached.
func (t *Tree) Attached(id NodeID) bool {
	return t.Valid(id) && t.Contains(t.root, id)
}

// Enclosing returns the nearest ancestor of id whose kind is one of kinds.
func (t *Tree) Enclosing(id NodeID, kinds ...Kind) NodeID {
	for p := range t.Ancestors(id) {
		k := t.Kind(p)
		for _, want := range kinds {
			if k == want {
				return p
			}
		}
	}
	return NoNodeID
}

// Preorder yields id and all its descendants in document order.
func (t *Tree) Preorder(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		t.preorder(id, yield)
	}
}

func (t *Tree) preorder(id NodeID, yield func(NodeID) bool) bool {
	if !yield(id) {
		return false
	}
	for _, c := range t.Children(id) {
		if !t.preorder(c, yield) {
			return false
		}
	}
	return true
}

// Symbols yields every Symbol node in document order.
func (t *Tree) Symbols() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for id := range t.Preorder(t.root) {
			if t.Kind(id) == KindSymbol && !yield(id) {
				return
			}
		}
	}
}

// LeafAt returns the leaf whose span contains off. At the end of the file
// it returns the EOF leaf.
func (t *Tree) LeafAt(off uint32) NodeID {
	id := t.root
	for {
		ch := t.Children(id)
		if len(ch) == 0 {
			return id
		}
		next := NoNodeID
		for _, c := range ch {
			if sp := t.Span(c); !sp.Empty() && sp.Contains(off) {
				next = c
				break
			}
		}
		if !next.IsValid() {
			last := ch[len(ch)-1]
			if off < t.Span(last).Start {
				return id
			}
			next = last
		}
		id = next
	}
}

// SymbolAt returns the Symbol under off. A caret right after an identifier
// still selects it.
func (t *Tree) SymbolAt(off uint32) NodeID {
	if s := t.symbolOfLeaf(t.LeafAt(off)); s.IsValid() {
		return s
	}
	if off > 0 {
		return t.symbolOfLeaf(t.LeafAt(off - 1))
	}
	return NoNodeID
}

func (t *Tree) symbolOfLeaf(leaf NodeID) NodeID {
	if p := t.Parent(leaf); t.Kind(p) == KindSymbol {
		return p
	}
	return NoNodeID
}
