package ast

import (
	"fmt"
	"slices"

	"zigscope/internal/source"
	"zigscope/internal/token"
)

// Generation grows every time the tree is modified in place.
func (t *Tree) Generation() uint64 { return t.gen }

// ChangedAt returns the generation of the last change inside id's subtree.
func (t *Tree) ChangedAt(id NodeID) uint64 {
	if !t.Valid(id) {
		return t.gen
	}
	return t.stamps[id-1]
}

// Clone returns an independent copy. Node ids, the generation and the change
// stamps are kept, so ReplaceToken on the copy never touches t.
func (t *Tree) Clone() *Tree {
	return &Tree{
		File:   t.File,
		nodes:  t.nodes.Clone(),
		tokens: slices.Clone(t.tokens),
		text:   t.text,
		root:   t.root,
		gen:    t.gen,
		stamps: slices.Clone(t.stamps),
	}
}

// Rebind moves every span of the tree to file. Only for trees nobody else
// holds yet.
func (t *Tree) Rebind(file source.FileID) {
	if file == t.File {
		return
	}
	t.File = file
	nodes := t.nodes.Slice()
	for i := range nodes {
		nodes[i].Span.File = file
	}
	for i := range t.tokens {
		t.tokens[i].Span.File = file
	}
}

// SubtreeChanged bumps the generation and stamps id and all its ancestors.
func (t *Tree) SubtreeChanged(id NodeID) {
	t.gen++
	if !t.Valid(id) {
		return
	}
	t.stamps[id-1] = t.gen
	for p := range t.Ancestors(id) {
		t.stamps[p-1] = t.gen
	}
}

// ReplaceToken rewrites the text of an identifier leaf in place. Spans of
// everything after the leaf shift by the length difference, ancestors grow
// or shrink, and the subtree-changed notification fires for the leaf.
func (t *Tree) ReplaceToken(leaf NodeID, text string) error {
	n := t.Node(leaf)
	if n == nil || n.Kind != KindToken {
		return fmt.Errorf("node %d is not a token leaf", leaf)
	}
	tok := &t.tokens[n.Token-1]
	if tok.Kind != token.Ident {
		return fmt.Errorf("token %s is not an identifier", tok.Kind)
	}
	oldStart, oldEnd := tok.Span.Start, tok.Span.End
	delta := int64(len(text)) - int64(oldEnd-oldStart)

	next := make([]byte, 0, int64(len(t.text))+delta)
	next = append(next, t.text[:oldStart]...)
	next = append(next, text...)
	next = append(next, t.text[oldEnd:]...)
	t.text = next

	tok.Text = text
	tok.Span.End = tok.Span.Start + uint32(len(text)) // #nosec G115
	for i := range t.tokens {
		if t.tokens[i].Span.Start >= oldEnd && &t.tokens[i] != tok {
			t.tokens[i].Span = t.tokens[i].Span.Shift(delta)
		}
	}

	isAncestor := make(map[NodeID]bool)
	for p := range t.Ancestors(leaf) {
		isAncestor[p] = true
	}
	nodes := t.nodes.Slice()
	for i := range nodes {
		id := NodeID(i + 1) // #nosec G115
		switch {
		case id == leaf:
			nodes[i].Span = tok.Span
		case isAncestor[id]:
			nodes[i].Span.End = uint32(int64(nodes[i].Span.End) + delta) // #nosec G115
		case nodes[i].Span.Start >= oldEnd:
			nodes[i].Span = nodes[i].Span.Shift(delta)
		}
	}

	t.SubtreeChanged(leaf)
	return nil
}
