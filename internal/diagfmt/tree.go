package diagfmt

import (
	"encoding/json"
	"io"

	"zigscope/internal/ast"
)

// NodeJSON is one node of the concrete syntax tree.
type NodeJSON struct {
	Kind     string     `json:"kind"`
	Start    uint32     `json:"start"`
	End      uint32     `json:"end"`
	Text     string     `json:"text,omitempty"`
	Error    bool       `json:"error,omitempty"`
	Children []NodeJSON `json:"children,omitempty"`
}

// FormatTreePretty печатает дерево с отступами.
func FormatTreePretty(w io.Writer, tree *ast.Tree, withTrivia bool) error {
	return tree.Dump(w, tree.Root(), withTrivia)
}

// FormatTreeSexpr печатает дерево одной строкой без trivia.
func FormatTreeSexpr(w io.Writer, tree *ast.Tree) error {
	_, err := io.WriteString(w, tree.Sexpr(tree.Root())+"\n")
	return err
}

func FormatTreeJSON(w io.Writer, tree *ast.Tree, withTrivia bool) error {
	root, _ := buildNodeJSON(tree, tree.Root(), withTrivia)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func buildNodeJSON(tree *ast.Tree, id ast.NodeID, withTrivia bool) (NodeJSON, bool) {
	sp := tree.Span(id)
	if tok, ok := tree.TokenOf(id); ok {
		if tok.IsTrivia() && !withTrivia {
			return NodeJSON{}, false
		}
		return NodeJSON{Kind: tok.Kind.String(), Start: sp.Start, End: sp.End, Text: tok.Text}, true
	}
	out := NodeJSON{
		Kind:  tree.Kind(id).String(),
		Start: sp.Start,
		End:   sp.End,
		Error: tree.Kind(id) == ast.KindError,
	}
	for _, c := range tree.Children(id) {
		if child, ok := buildNodeJSON(tree, c, withTrivia); ok {
			out.Children = append(out.Children, child)
		}
	}
	return out, true
}
