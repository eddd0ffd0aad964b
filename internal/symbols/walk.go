package symbols

import (
	"context"
	"errors"

	"zigscope/internal/ast"
	"zigscope/internal/token"
)

// ErrCanceled is returned when a walk notices cancellation. The returned error
// also matches the context's own error with errors.Is.
var ErrCanceled = errors.New("operation canceled")

type canceledError struct{ cause error }

func (e *canceledError) Error() string        { return ErrCanceled.Error() + ": " + e.cause.Error() }
func (e *canceledError) Is(target error) bool { return target == ErrCanceled }
func (e *canceledError) Unwrap() error        { return e.cause }

func checkCanceled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &canceledError{cause: err}
	}
	return nil
}

// Visitor is called once per scope on the way up. prev is the child of scope
// the walk came from (the start node itself on the first call). Returning
// false stops the walk.
type Visitor interface {
	Visit(scope, prev ast.NodeID) bool
}

type VisitorFunc func(scope, prev ast.NodeID) bool

func (f VisitorFunc) Visit(scope, prev ast.NodeID) bool { return f(scope, prev) }

// WalkUp visits start, then every ancestor up to and including boundary (the
// root when boundary is NoNodeID). It returns false when the visitor stopped
// the walk. ctx is checked before every step.
func WalkUp(ctx context.Context, tree *ast.Tree, v Visitor, start, boundary ast.NodeID) (bool, error) {
	if !tree.Valid(start) {
		return true, nil
	}
	prev := start
	for scope := start; scope.IsValid(); scope = tree.Parent(scope) {
		if err := checkCanceled(ctx); err != nil {
			return false, err
		}
		if !v.Visit(scope, prev) {
			return false, nil
		}
		if scope == boundary {
			break
		}
		prev = scope
	}
	return true, nil
}

// ProcessDeclarations yields the declaration symbols that scope makes visible
// to code under its child prev. origin is never yielded. It returns false when
// yield asked to stop.
//
//   - File, ContainerDecl: every member constant/variable and function, in any order.
//   - Block: constants/variables of statements before prev, nearest first.
//   - FnDecl: parameters, for the body only. FnProto: parameters.
//   - Anything with captures: the closest payload before prev, unless an
//     `else` sits between them.
func ProcessDeclarations(tree *ast.Tree, scope, prev, origin ast.NodeID, yield func(decl ast.NodeID) bool) bool {
	emit := func(decl ast.NodeID) bool {
		if !decl.IsValid() || decl == origin {
			return true
		}
		return yield(decl)
	}

	switch tree.Kind(scope) {
	case ast.KindFile, ast.KindContainerDecl:
		for _, member := range tree.Children(scope) {
			if !emit(memberName(tree, member)) {
				return false
			}
		}
		return true

	case ast.KindBlock:
		children := tree.Children(scope)
		end := len(children)
		if tree.Parent(prev) == scope {
			end = int(tree.Node(prev).Index)
		}
		for i := end - 1; i >= 0; i-- {
			if tree.Kind(children[i]) != ast.KindVarDecl {
				continue
			}
			if !emit(tree.ChildOfKind(children[i], ast.KindSymbol)) {
				return false
			}
		}
		return true

	case ast.KindFnDecl:
		if tree.Kind(prev) != ast.KindBlock {
			return true
		}
		return eachParam(tree, tree.ChildOfKind(scope, ast.KindFnProto), emit)

	case ast.KindFnProto:
		return eachParam(tree, scope, emit)
	}

	if payload := payloadBefore(tree, scope, prev); payload.IsValid() {
		for _, s := range tree.ChildrenOfKind(payload, ast.KindSymbol) {
			if !emit(s) {
				return false
			}
		}
	}
	return true
}

// memberName returns the declared name of a container member, if any.
func memberName(tree *ast.Tree, member ast.NodeID) ast.NodeID {
	switch tree.Kind(member) {
	case ast.KindVarDecl:
		return tree.ChildOfKind(member, ast.KindSymbol)
	case ast.KindFnDecl:
		return tree.ChildOfKind(tree.ChildOfKind(member, ast.KindFnProto), ast.KindSymbol)
	case ast.KindFnProto:
		return tree.ChildOfKind(member, ast.KindSymbol)
	}
	return ast.NoNodeID
}

func eachParam(tree *ast.Tree, proto ast.NodeID, emit func(ast.NodeID) bool) bool {
	list := tree.ChildOfKind(proto, ast.KindParamDeclList)
	for _, param := range tree.ChildrenOfKind(list, ast.KindParamDecl) {
		if !emit(tree.ChildOfKind(param, ast.KindSymbol)) {
			return false
		}
	}
	return true
}

// payloadBefore finds the capture that binds names for prev: the nearest
// payload sibling to the left of prev with no `else` in between.
func payloadBefore(tree *ast.Tree, scope, prev ast.NodeID) ast.NodeID {
	if tree.Parent(prev) != scope {
		return ast.NoNodeID
	}
	children := tree.Children(scope)
	for i := int(tree.Node(prev).Index) - 1; i >= 0; i-- {
		c := children[i]
		if tree.Kind(c).IsPayload() {
			return c
		}
		if tree.TokenKind(c) == token.KwElse {
			return ast.NoNodeID
		}
	}
	return ast.NoNodeID
}
