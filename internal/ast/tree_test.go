package ast_test

import (
	"strings"
	"testing"

	"zigscope/internal/ast"
	"zigscope/internal/parser"
	"zigscope/internal/source"
	"zigscope/internal/token"
)

func parse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, _ := parser.ParseText("t.zig", src)
	return tree
}

func symbolNamed(t *testing.T, tree *ast.Tree, name string, nth int) ast.NodeID {
	t.Helper()
	for id := range tree.Symbols() {
		if tree.Name(id) == name {
			if nth == 0 {
				return id
			}
			nth--
		}
	}
	t.Fatalf("symbol %q not found", name)
	return ast.NoNodeID
}

func TestBuilderWrap(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("w.zig", []byte("a b")))
	toks := []token.Token{
		{Kind: token.Ident, Span: source.Span{File: file.ID, Start: 0, End: 1}, Text: "a"},
		{Kind: token.Whitespace, Span: source.Span{File: file.ID, Start: 1, End: 2}, Text: " "},
		{Kind: token.Ident, Span: source.Span{File: file.ID, Start: 2, End: 3}, Text: "b"},
		{Kind: token.EOF, Span: source.Span{File: file.ID, Start: 3, End: 3}},
	}
	b := ast.NewBuilder(file.ID, file.Content, toks, 1)
	b.Open(ast.KindFile)
	m := b.Mark()
	b.Leaf(0)
	b.Leaf(1)
	b.Leaf(2)
	sym := b.Wrap(m, ast.KindSymbol)
	b.Leaf(3)
	tree := b.Finish()

	if got := tree.Sexpr(tree.Root()); got != "(File (Symbol a b))" {
		t.Fatalf("sexpr = %s", got)
	}
	if tree.Parent(sym) != tree.Root() {
		t.Fatalf("wrapped node must hang under the root")
	}
	if sp := tree.Span(sym); sp.Start != 0 || sp.End != 3 {
		t.Fatalf("wrapped span = %s", sp)
	}
	if tree.ChangedAt(tree.Root()) != 1 {
		t.Fatalf("initial stamp must equal the build generation")
	}
}

func TestNavigation(t *testing.T) {
	tree := parse(t, "const x = y;")
	x := symbolNamed(t, tree, "x", 0)
	decl := tree.Parent(x)
	if tree.Kind(decl) != ast.KindVarDecl {
		t.Fatalf("parent kind = %s", tree.Kind(decl))
	}
	prev := tree.PrevSignificantSibling(x)
	if tree.TokenKind(prev) != token.KwConst {
		t.Fatalf("previous significant sibling = %s", tree.TokenKind(prev))
	}
	if tree.TokenKind(tree.PrevSibling(x)) != token.Whitespace {
		t.Fatalf("raw previous sibling must be whitespace")
	}
	y := symbolNamed(t, tree, "y", 0)
	if tree.Enclosing(y, ast.KindVarDecl) != decl {
		t.Fatalf("enclosing decl mismatch")
	}
	if !tree.IsAncestor(tree.Root(), y) || tree.IsAncestor(y, y) {
		t.Fatalf("IsAncestor must be strict")
	}
	if !tree.Contains(y, y) || !tree.Contains(decl, y) || tree.Contains(y, decl) {
		t.Fatalf("Contains must include the node itself")
	}
	if !tree.Attached(y) || tree.Attached(ast.NoNodeID) {
		t.Fatalf("Attached mismatch")
	}
}

func TestLeafAndSymbolAt(t *testing.T) {
	src := "const foo = bar;"
	tree := parse(t, src)
	off := uint32(strings.Index(src, "bar"))

	if s := tree.SymbolAt(off + 1); tree.Name(s) != "bar" {
		t.Fatalf("SymbolAt inside = %q", tree.Name(s))
	}
	// caret right after the identifier
	if s := tree.SymbolAt(off + 3); tree.Name(s) != "bar" {
		t.Fatalf("SymbolAt after = %q", tree.Name(s))
	}
	if s := tree.SymbolAt(0); s.IsValid() {
		t.Fatalf("keyword is not a symbol")
	}
	if leaf := tree.LeafAt(uint32(len(src))); tree.TokenKind(leaf) != token.EOF {
		t.Fatalf("leaf at end = %s", tree.TokenKind(leaf))
	}
}

func TestReplaceTokenShiftsSpans(t *testing.T) {
	src := "const a = 1;\nconst b = a;\n"
	tree := parse(t, src)
	a := symbolNamed(t, tree, "a", 0)
	b := symbolNamed(t, tree, "b", 0)
	bStart := tree.Span(b).Start
	gen := tree.Generation()

	leaf := tree.FirstSignificantChild(a)
	if err := tree.ReplaceToken(leaf, "alpha"); err != nil {
		t.Fatalf("ReplaceToken: %v", err)
	}
	want := "const alpha = 1;\nconst b = a;\n"
	if got := tree.Text(tree.Root()); got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
	if tree.Name(a) != "alpha" {
		t.Fatalf("symbol name = %q", tree.Name(a))
	}
	if got := tree.Span(b).Start; got != bStart+4 {
		t.Fatalf("later symbol start = %d, want %d", got, bStart+4)
	}
	if int(tree.Span(tree.Root()).End) != len(want) {
		t.Fatalf("root span not extended")
	}
	if tree.Generation() != gen+1 {
		t.Fatalf("generation = %d, want %d", tree.Generation(), gen+1)
	}
	if tree.ChangedAt(a) != gen+1 || tree.ChangedAt(tree.Root()) != gen+1 {
		t.Fatalf("changed subtree must be stamped")
	}
	if tree.ChangedAt(b) != gen {
		t.Fatalf("untouched subtree must keep its stamp")
	}
	// tokens stay in sync with the text
	for _, tok := range tree.Tokens() {
		if got := want[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("token %s text %q does not match span text %q", tok.Kind, tok.Text, got)
		}
	}
}

func TestReplaceTokenRejectsNonIdent(t *testing.T) {
	tree := parse(t, "const a = 1;")
	decl := tree.FirstSignificantChild(tree.Root())
	kw := tree.FirstSignificantChild(decl)
	if err := tree.ReplaceToken(kw, "var"); err == nil {
		t.Fatalf("replacing a keyword must fail")
	}
	if err := tree.ReplaceToken(decl, "x"); err == nil {
		t.Fatalf("replacing an inner node must fail")
	}
}

func TestArena(t *testing.T) {
	a := ast.NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena must return nil")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 || a.Len() != 1 {
		t.Fatalf("allocate/get mismatch")
	}
}
