package ast

import (
	"fmt"

	"fortio.org/safecast"

	"zigscope/internal/source"
	"zigscope/internal/token"
)

type frame struct {
	kind     Kind
	children []NodeID
	missing  bool
}

// Builder assembles a Tree bottom-up. Leaves are allocated immediately,
// inner nodes when they are closed; Wrap retroactively groups already
// built children under a new node (binary operators, labels).
type Builder struct {
	tree  *Tree
	stack []frame
	pos   uint32 // end offset of the last leaf
}

// NewBuilder starts a tree for file with the given generation number.
func NewBuilder(file source.FileID, text []byte, tokens []token.Token, gen uint64) *Builder {
	return &Builder{
		tree: &Tree{
			File:   file,
			nodes:  NewArena[Node](uint(len(tokens)*2 + 8)),
			tokens: tokens,
			text:   text,
			gen:    gen,
		},
	}
}

// Depth returns the number of open nodes.
func (b *Builder) Depth() int { return len(b.stack) }

// Open starts a new inner node.
func (b *Builder) Open(kind Kind) {
	b.stack = append(b.stack, frame{kind: kind})
}

// Leaf appends the token with index idx (0-based) as a leaf of the open node.
func (b *Builder) Leaf(idx int) NodeID {
	tokIdx, err := safecast.Conv[uint32](idx + 1)
	if err != nil {
		panic(fmt.Errorf("token index overflow: %w", err))
	}
	tok := b.tree.tokens[idx]
	id := NodeID(b.tree.nodes.Allocate(Node{
		Kind:  KindToken,
		Span:  tok.Span,
		Token: tokIdx,
	}))
	b.pos = tok.Span.End
	b.push(id)
	return id
}

func (b *Builder) push(id NodeID) {
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, id)
}

// MarkMissing flags the open node as malformed: something required inside
// it was reported missing or unexpected.
func (b *Builder) MarkMissing() {
	if len(b.stack) > 0 {
		b.stack[len(b.stack)-1].missing = true
	}
}

// Mark returns a position among the open node's children for a later Wrap.
func (b *Builder) Mark() int {
	return len(b.stack[len(b.stack)-1].children)
}

// Close finishes the innermost open node and attaches it to its parent.
func (b *Builder) Close() NodeID {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	id := b.alloc(top.kind, top.children)
	if top.missing {
		b.tree.Node(id).Flags |= FlagMissing
	}
	if len(b.stack) > 0 {
		b.push(id)
	}
	return id
}

// Wrap moves the children from mark onwards into a new closed node of kind.
func (b *Builder) Wrap(mark int, kind Kind) NodeID {
	top := &b.stack[len(b.stack)-1]
	moved := append([]NodeID(nil), top.children[mark:]...)
	top.children = top.children[:mark]
	id := b.alloc(kind, moved)
	top.children = append(top.children, id)
	return id
}

// OpenAt opens a node that adopts the children from mark onwards.
func (b *Builder) OpenAt(mark int, kind Kind) {
	top := &b.stack[len(b.stack)-1]
	moved := append([]NodeID(nil), top.children[mark:]...)
	top.children = top.children[:mark]
	b.stack = append(b.stack, frame{kind: kind, children: moved})
}

func (b *Builder) alloc(kind Kind, children []NodeID) NodeID {
	span := source.Span{File: b.tree.File, Start: b.pos, End: b.pos}
	var flags Flags
	if kind == KindError {
		flags |= FlagHasError
	}
	if len(children) > 0 {
		span = b.tree.Span(children[0]).Cover(b.tree.Span(children[len(children)-1]))
	}
	id := NodeID(b.tree.nodes.Allocate(Node{
		Kind:     kind,
		Span:     span,
		Children: children,
	}))
	for i, c := range children {
		n := b.tree.Node(c)
		n.Parent = id
		n.Index = uint32(i) // #nosec G115 -- child counts are bounded by token count
		flags |= n.Flags & (FlagHasError | FlagMissing)
	}
	b.tree.Node(id).Flags = flags
	return id
}

// Finish closes every open node and returns the tree. The outermost node becomes the root.
func (b *Builder) Finish() *Tree {
	var root NodeID
	for len(b.stack) > 0 {
		root = b.Close()
	}
	b.tree.root = root
	b.tree.stamps = make([]uint64, b.tree.nodes.Len())
	for i := range b.tree.stamps {
		b.tree.stamps[i] = b.tree.gen
	}
	return b.tree
}
