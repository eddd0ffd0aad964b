package symbols_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zigscope/internal/ast"
	"zigscope/internal/parser"
	"zigscope/internal/symbols"
)

func parseSnippet(t *testing.T, src string) (*ast.Tree, *symbols.Resolver) {
	t.Helper()
	tree, bag := parser.ParseText("snippet.zig", src)
	require.NotNil(t, tree)
	require.NotNil(t, bag)
	return tree, symbols.NewResolver(tree)
}

// nthSymbol returns the n-th (0-based) occurrence of name in document order.
func nthSymbol(t *testing.T, tree *ast.Tree, name string, n int) ast.NodeID {
	t.Helper()
	for id := range tree.Symbols() {
		if tree.Name(id) != name {
			continue
		}
		if n == 0 {
			return id
		}
		n--
	}
	require.Failf(t, "symbol not found", "%s #%d", name, n)
	return ast.NoNodeID
}

func TestClassifyRoles(t *testing.T) {
	tree, res := parseSnippet(t, `const std = @import("std");
const E = error{ Boom };
fn run(n: u32) !void {
    outer: while (n > 0) : (n -= 1) {
        break :outer;
    }
    for (items, 0..) |item, i| {
        _ = .{ .x = item, .y = i };
    }
    const p = Point{ .x = 1 };
    p.x = .red;
    return error.Boom;
}`)
	type occ struct {
		name string
		role symbols.Role
	}
	want := []occ{
		{"std", symbols.RoleVarDeclaration},
		{"E", symbols.RoleVarDeclaration},
		{"Boom", symbols.RoleErrorDeclaration},
		{"run", symbols.RoleFnDeclaration},
		{"n", symbols.RoleParameterDeclaration},
		{"u32", symbols.RoleExpression},
		{"void", symbols.RoleExpression},
		{"outer", symbols.RoleBreakLabelDeclaration},
		{"n", symbols.RoleExpression},
		{"n", symbols.RoleExpression},
		{"outer", symbols.RoleBreakLabelReference},
		{"items", symbols.RoleExpression},
		{"item", symbols.RolePayloadDeclaration},
		{"i", symbols.RolePayloadIndexDeclaration},
		{"_", symbols.RoleExpression},
		{"x", symbols.RoleFieldReference},
		{"item", symbols.RoleExpression},
		{"y", symbols.RoleFieldReference},
		{"i", symbols.RoleExpression},
		{"p", symbols.RoleVarDeclaration},
		{"Point", symbols.RoleExpression},
		{"x", symbols.RoleFieldReference},
		{"p", symbols.RoleExpression},
		{"x", symbols.RoleFieldOrConstantReference},
		{"red", symbols.RoleEnumReference},
		{"Boom", symbols.RoleErrorReference},
	}
	var got []occ
	for id := range tree.Symbols() {
		got = append(got, occ{tree.Name(id), res.Role(id)})
		// memoised answer must match the pure classifier
		assert.Equal(t, symbols.Classify(tree, id), res.Role(id))
	}
	assert.Equal(t, want, got)
}

func TestDeclarationBooleans(t *testing.T) {
	tree, _ := parseSnippet(t, "fn f(a: u8) void { var b = a; }\nconst c = 1;")
	f := nthSymbol(t, tree, "f", 0)
	a := nthSymbol(t, tree, "a", 0)
	b := nthSymbol(t, tree, "b", 0)
	c := nthSymbol(t, tree, "c", 0)
	aRef := nthSymbol(t, tree, "a", 1)

	assert.True(t, symbols.IsFunctionName(tree, f))
	assert.True(t, symbols.IsParameter(tree, a))
	assert.True(t, symbols.IsVariableName(tree, b))
	assert.True(t, symbols.IsVariableName(tree, c))
	for _, id := range []ast.NodeID{f, a, b, c} {
		assert.True(t, symbols.IsDeclarationName(tree, id))
	}
	assert.False(t, symbols.IsDeclarationName(tree, aRef))
}

func TestResolveExpression(t *testing.T) {
	ctx := context.Background()
	t.Run("sound", func(t *testing.T) {
		tree, res := parseSnippet(t, "const x = 1; const y = x;")
		target, err := res.Resolve(ctx, nthSymbol(t, tree, "x", 1))
		require.NoError(t, err)
		assert.Equal(t, nthSymbol(t, tree, "x", 0), target)
	})
	t.Run("block order matters", func(t *testing.T) {
		tree, res := parseSnippet(t, "fn f() void { const y = x; const x = 1; }")
		target, err := res.Resolve(ctx, nthSymbol(t, tree, "x", 0))
		require.NoError(t, err)
		assert.False(t, target.IsValid())
	})
	t.Run("top level order does not", func(t *testing.T) {
		tree, res := parseSnippet(t, "const y = x; const x = 1;")
		target, err := res.Resolve(ctx, nthSymbol(t, tree, "x", 0))
		require.NoError(t, err)
		assert.Equal(t, nthSymbol(t, tree, "x", 1), target)
	})
	t.Run("parameters and payloads", func(t *testing.T) {
		tree, res := parseSnippet(t, `fn f(a: u32, opt: ?u32) u32 {
    if (opt) |v| {
        return v + a;
    } else {
        return v;
    }
}`)
		v, err := res.Resolve(ctx, nthSymbol(t, tree, "v", 1))
		require.NoError(t, err)
		assert.Equal(t, nthSymbol(t, tree, "v", 0), v)

		a, err := res.Resolve(ctx, nthSymbol(t, tree, "a", 1))
		require.NoError(t, err)
		assert.Equal(t, nthSymbol(t, tree, "a", 0), a)

		// the else branch does not see the capture
		miss, err := res.Resolve(ctx, nthSymbol(t, tree, "v", 2))
		require.NoError(t, err)
		assert.False(t, miss.IsValid())
	})
	t.Run("container members", func(t *testing.T) {
		tree, res := parseSnippet(t, `const S = struct {
    fn a() void { b(); }
    fn b() void {}
};`)
		target, err := res.Resolve(ctx, nthSymbol(t, tree, "b", 0))
		require.NoError(t, err)
		assert.Equal(t, nthSymbol(t, tree, "b", 1), target)
	})
}

func TestResolveLabelByNesting(t *testing.T) {
	tree, res := parseSnippet(t, "fn f() void { outer: while (true) { inner: while (true) { break :outer; } } }")
	target, err := res.Resolve(context.Background(), nthSymbol(t, tree, "outer", 1))
	require.NoError(t, err)
	assert.Equal(t, nthSymbol(t, tree, "outer", 0), target)
	assert.Equal(t, symbols.RoleBreakLabelDeclaration, res.Role(target))
}

func TestErrorMultiResolution(t *testing.T) {
	ctx := context.Background()
	tree, res := parseSnippet(t, "const E = error{ Foo, Foo };\nconst e = error.Foo;")
	first := nthSymbol(t, tree, "Foo", 0)
	second := nthSymbol(t, tree, "Foo", 1)
	literal := nthSymbol(t, tree, "Foo", 2)

	results, err := res.MultiResolve(ctx, literal)
	require.NoError(t, err)
	assert.Equal(t, []symbols.Result{{Target: first, Valid: true}, {Target: second, Valid: true}}, results)

	target, err := res.Resolve(ctx, literal)
	require.NoError(t, err)
	assert.Equal(t, first, target)

	ref, ok := res.Reference(first)
	require.True(t, ok)
	assert.True(t, ref.Soft)

	// a declaration refers to the other occurrences, never to itself
	results, err = res.MultiResolve(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, []symbols.Result{{Target: second, Valid: true}, {Target: literal, Valid: true}}, results)
}

func TestErrorResolutionPrefersValid(t *testing.T) {
	ctx := context.Background()
	tree, res := parseSnippet(t, "const E = error{ Foo };\nconst bad = .{ error.Foo, ) };\nconst e = error.Foo;")
	decl := nthSymbol(t, tree, "Foo", 0)
	broken := nthSymbol(t, tree, "Foo", 1)
	good := nthSymbol(t, tree, "Foo", 2)

	results, err := res.MultiResolve(ctx, decl)
	require.NoError(t, err)
	assert.Equal(t, []symbols.Result{{Target: broken, Valid: false}, {Target: good, Valid: true}}, results)

	target, err := res.Resolve(ctx, decl)
	require.NoError(t, err)
	assert.Equal(t, good, target)
}

func TestUnsupportedRoles(t *testing.T) {
	ctx := context.Background()
	tree, res := parseSnippet(t, "const a = .{ .x = 1 };\nconst b = P{ .y = 2 };\nconst c = b.y;\nconst d = .red;")

	_, ok := res.Reference(nthSymbol(t, tree, "x", 0))
	assert.False(t, ok, "anonymous field init declares the field")

	ref, ok := res.Reference(nthSymbol(t, tree, "y", 0))
	require.True(t, ok)
	assert.True(t, ref.Unsupported)

	for _, sym := range []ast.NodeID{nthSymbol(t, tree, "y", 1), nthSymbol(t, tree, "red", 0)} {
		target, err := res.Resolve(ctx, sym)
		require.NoError(t, err)
		assert.False(t, target.IsValid())
	}

	_, ok = res.Reference(nthSymbol(t, tree, "a", 0))
	assert.False(t, ok, "declarations carry no reference")
}

func TestResolveAfterRename(t *testing.T) {
	ctx := context.Background()
	tree, res := parseSnippet(t, "const x = 1;\nconst y = x;")
	decl := nthSymbol(t, tree, "x", 0)
	use := nthSymbol(t, tree, "x", 1)

	target, err := res.Resolve(ctx, use)
	require.NoError(t, err)
	require.Equal(t, decl, target)

	require.NoError(t, tree.ReplaceToken(tree.FirstSignificantChild(decl), "z"))
	target, err = res.Resolve(ctx, use)
	require.NoError(t, err)
	assert.False(t, target.IsValid(), "stale target after rename")

	require.NoError(t, tree.ReplaceToken(tree.FirstSignificantChild(use), "z"))
	target, err = res.Resolve(ctx, use)
	require.NoError(t, err)
	assert.Equal(t, decl, target)
}

func TestForkLeavesOriginalAlone(t *testing.T) {
	ctx := context.Background()
	tree, res := parseSnippet(t, "const x = 1;\nconst y = x;")
	decl := nthSymbol(t, tree, "x", 0)
	use := nthSymbol(t, tree, "x", 1)
	target, err := res.Resolve(ctx, use)
	require.NoError(t, err)
	require.Equal(t, decl, target)

	clone := tree.Clone()
	forked := res.Fork(clone)
	require.NoError(t, clone.ReplaceToken(clone.FirstSignificantChild(decl), "z"))

	target, err = forked.Resolve(ctx, use)
	require.NoError(t, err)
	assert.False(t, target.IsValid())

	target, err = res.Resolve(ctx, use)
	require.NoError(t, err)
	assert.Equal(t, decl, target)
	assert.Equal(t, "const x = 1;\nconst y = x;", tree.Source())
	assert.Equal(t, "const z = 1;\nconst y = x;", clone.Source())
}

func TestResolveCanceled(t *testing.T) {
	tree, res := parseSnippet(t, "const x = 1; const y = x;")
	use := nthSymbol(t, tree, "x", 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	target, err := res.Resolve(ctx, use)
	require.Error(t, err)
	assert.True(t, errors.Is(err, symbols.ErrCanceled))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, target.IsValid())

	// cancellation is not cached
	target, err = res.Resolve(context.Background(), use)
	require.NoError(t, err)
	assert.Equal(t, nthSymbol(t, tree, "x", 0), target)
}

func TestWalkUpStopsAtBoundary(t *testing.T) {
	tree, _ := parseSnippet(t, "fn f() void { const a = b; }")
	b := nthSymbol(t, tree, "b", 0)
	block := tree.Enclosing(b, ast.KindBlock)

	var visited []ast.Kind
	done, err := symbols.WalkUp(context.Background(), tree, symbols.VisitorFunc(func(scope, _ ast.NodeID) bool {
		visited = append(visited, tree.Kind(scope))
		return true
	}), b, block)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []ast.Kind{ast.KindSymbol, ast.KindPrimaryReferenceExpr, ast.KindVarDecl, ast.KindBlock}, visited)

	done, err = symbols.WalkUp(context.Background(), tree, symbols.VisitorFunc(func(ast.NodeID, ast.NodeID) bool {
		return false
	}), b, ast.NoNodeID)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestCompletions(t *testing.T) {
	tree, res := parseSnippet(t, `const top = 1;
fn helper() void {}
fn run(arg: u32) void {
    const early = 2;
    const probe = early;
    const late = 3;
}`)
	cands, err := res.Completions(context.Background(), nthSymbol(t, tree, "early", 1))
	require.NoError(t, err)

	var names []string
	for _, c := range cands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"early", "arg", "top", "helper", "run"}, names)
	assert.Equal(t, symbols.CandidateParameter, cands[1].Kind)
	assert.Equal(t, symbols.CandidateFunction, cands[3].Kind)
	assert.Equal(t, "()", cands[3].Tail)
}

func TestVisibleDeclarationsIsLazy(t *testing.T) {
	tree, res := parseSnippet(t, "const a = 1; const b = 2; const c = a;")
	from := nthSymbol(t, tree, "a", 1)
	var got []string
	for decl, err := range res.VisibleDeclarations(context.Background(), from, ast.NoNodeID) {
		require.NoError(t, err)
		got = append(got, tree.Name(decl))
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestUsages(t *testing.T) {
	tree, res := parseSnippet(t, "const x = 1;\nconst y = x + x;\nfn f() void { _ = x; }")
	uses, err := res.Usages(context.Background(), nthSymbol(t, tree, "x", 0))
	require.NoError(t, err)
	assert.Equal(t, []ast.NodeID{nthSymbol(t, tree, "x", 1), nthSymbol(t, tree, "x", 2), nthSymbol(t, tree, "x", 3)}, uses)
}

func TestIsPrimitive(t *testing.T) {
	for _, name := range []string{"u8", "i32", "u0", "usize", "bool", "void", "type", "anyerror", "comptime_int", "f32", "_"} {
		assert.True(t, symbols.IsPrimitive(name), name)
	}
	for _, name := range []string{"u", "i01", "user", "Point", "x", "u1234567"} {
		assert.False(t, symbols.IsPrimitive(name), name)
	}
}

func TestRoleStrings(t *testing.T) {
	role, ok := symbols.ParseRole("PayloadIndexDeclaration")
	require.True(t, ok)
	assert.Equal(t, symbols.RolePayloadIndexDeclaration, role)
	assert.True(t, role.IsDeclaration())
	assert.True(t, symbols.RoleErrorReference.IsDeclaration())
	assert.False(t, symbols.RoleExpression.IsDeclaration())
	assert.True(t, symbols.RoleBreakLabelReference.IsBreakLabel())
}
