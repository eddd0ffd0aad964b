package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"zigscope/internal/ast"
)

// CheckTree runs the structural invariants of a lossless tree against the
// text it should reproduce:
// 1) the root spans [0, len(text)) of the tree's file
// 2) children are linked back to their parent with the right index
// 3) child spans tile the parent span without gaps
// 4) every leaf spells exactly its slice of text
// 5) the error flag is set iff the subtree contains an Error node
func CheckTree(tree *ast.Tree, text []byte) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	root := tree.Root()
	if !root.IsValid() {
		return fmt.Errorf("tree has no root")
	}
	n, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return fmt.Errorf("len text overflow: %w", err)
	}
	rs := tree.Span(root)
	if rs.File != tree.File {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", rs.File, tree.File)
	}
	if rs.Start != 0 || rs.End != n {
		return fmt.Errorf("root span %v does not cover the text [0,%d)", rs, n)
	}
	if tree.Parent(root).IsValid() {
		return fmt.Errorf("root has a parent")
	}
	return checkNode(tree, text, root)
}

func checkNode(tree *ast.Tree, text []byte, id ast.NodeID) error {
	sp := tree.Span(id)
	if sp.Start > sp.End {
		return fmt.Errorf("node %d (%s): inverted span %v", id, tree.Kind(id), sp)
	}
	if tok, ok := tree.TokenOf(id); ok {
		if got := string(text[sp.Start:sp.End]); got != tok.Text {
			return fmt.Errorf("leaf %d: text %q, source has %q at %v", id, tok.Text, got, sp)
		}
		if tok.Span != sp {
			return fmt.Errorf("leaf %d: token span %v differs from node span %v", id, tok.Span, sp)
		}
		return nil
	}

	pos := sp.Start
	hasError := tree.Kind(id) == ast.KindError
	for i, c := range tree.Children(id) {
		node := tree.Node(c)
		if node == nil {
			return fmt.Errorf("node %d: child %d does not exist", id, c)
		}
		if node.Parent != id {
			return fmt.Errorf("node %d: child %d points to parent %d", id, c, node.Parent)
		}
		if int(node.Index) != i {
			return fmt.Errorf("node %d: child %d has index %d, want %d", id, c, node.Index, i)
		}
		cs := node.Span
		if cs.Start != pos {
			return fmt.Errorf("node %d (%s): gap or overlap before child %d: %v, expected start %d", id, tree.Kind(id), c, cs, pos)
		}
		pos = cs.End
		if err := checkNode(tree, text, c); err != nil {
			return err
		}
		hasError = hasError || tree.HasError(c)
	}
	if pos != sp.End {
		return fmt.Errorf("node %d (%s): children end at %d, span ends at %d", id, tree.Kind(id), pos, sp.End)
	}
	if hasError != tree.HasError(id) {
		return fmt.Errorf("node %d (%s): error flag %v, subtree says %v", id, tree.Kind(id), tree.HasError(id), hasError)
	}
	return nil
}
