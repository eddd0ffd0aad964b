package ast

import (
	"zigscope/internal/source"
)

type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

// Flags carry facts computed when a node is closed.
type Flags uint8

const (
	// FlagHasError is set on Error nodes and on every ancestor of one.
	FlagHasError Flags = 1 << iota
	// FlagMissing is set on a node that was open when the parser reported an
	// error, and on every ancestor of one.
	FlagMissing
)

// Node is one arena slot. Parent is a non-owning back reference.
type Node struct {
	Kind     Kind
	Flags    Flags
	Span     source.Span
	Parent   NodeID
	Index    uint32 // position in Parent.Children
	Children []NodeID
	Token    uint32 // 1-based index into Tree tokens, only for KindToken leaves
}
