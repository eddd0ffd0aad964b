package symbols

import (
	"context"
	"iter"
	"maps"
	"sync"

	"zigscope/internal/ast"
	"zigscope/internal/trace"
)

// Reference describes what an identifier occurrence refers to, before resolution.
type Reference struct {
	Origin ast.NodeID
	Role   Role
	// Soft references are not errors when they fail to resolve.
	Soft bool
	// Unsupported references need container-type inference and never resolve.
	Unsupported bool
}

// Result is one resolution target. Valid is false when the target sits in or
// next to broken syntax.
type Result struct {
	Target ast.NodeID
	Valid  bool
}

type roleEntry struct {
	role  Role
	stamp uint64
}

type targetEntry struct {
	target ast.NodeID
	gen    uint64
}

// Resolver answers role and reference queries over one tree. Results are
// memoised and checked against the tree's generation stamps, so in-place
// renames never yield stale targets. Safe for concurrent use as long as the
// tree itself is not being mutated at the same time; Document never mutates
// a tree it has handed out, it forks instead.
type Resolver struct {
	tree *ast.Tree

	mu      sync.Mutex
	roles   map[ast.NodeID]roleEntry
	targets map[ast.NodeID]targetEntry
}

func NewResolver(tree *ast.Tree) *Resolver {
	return &Resolver{
		tree:    tree,
		roles:   make(map[ast.NodeID]roleEntry),
		targets: make(map[ast.NodeID]targetEntry),
	}
}

// Fork returns a resolver for a clone of r's tree. Memoised answers are
// carried over and still checked against the clone's stamps.
func (r *Resolver) Fork(clone *ast.Tree) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Resolver{
		tree:    clone,
		roles:   maps.Clone(r.roles),
		targets: maps.Clone(r.targets),
	}
}

func (r *Resolver) Tree() *ast.Tree { return r.tree }

// Role returns the memoised classification of sym.
func (r *Resolver) Role(sym ast.NodeID) Role {
	stamp := r.tree.ChangedAt(r.tree.Parent(sym))
	r.mu.Lock()
	e, ok := r.roles[sym]
	r.mu.Unlock()
	if ok && e.stamp == stamp {
		return e.role
	}
	role := Classify(r.tree, sym)
	r.mu.Lock()
	r.roles[sym] = roleEntry{role: role, stamp: stamp}
	r.mu.Unlock()
	return role
}

// Reference returns the reference carried by sym. Declarations have none,
// except error names which softly refer to each other. Field names inside an
// anonymous `.{}` literal declare the field and have none either.
func (r *Resolver) Reference(sym ast.NodeID) (Reference, bool) {
	role := r.Role(sym)
	ref := Reference{Origin: sym, Role: role}
	switch {
	case role.IsError():
		ref.Soft = true
		return ref, true
	case role.IsDeclaration():
		return Reference{}, false
	case role == RoleExpression, role == RoleBreakLabelReference:
		return ref, true
	case role == RoleEnumReference:
		ref.Unsupported = true
		return ref, true
	case role == RoleFieldReference:
		if inAnonymousInit(r.tree, sym) {
			return Reference{}, false
		}
		ref.Unsupported = true
		return ref, true
	default:
		// FieldOrConstantReference, Assembly, Invalid
		return Reference{}, false
	}
}

// Resolve returns the single best target of sym, or NoNodeID.
func (r *Resolver) Resolve(ctx context.Context, sym ast.NodeID) (ast.NodeID, error) {
	ref, ok := r.Reference(sym)
	if !ok || ref.Unsupported {
		return ast.NoNodeID, nil
	}
	ctx, span := trace.Start(ctx, trace.ScopeQuery, "resolve")
	defer span.End(r.tree.Name(sym))

	switch {
	case ref.Role == RoleExpression:
		return r.resolveExpression(ctx, sym)
	case ref.Role == RoleBreakLabelReference:
		return r.resolveLabel(ctx, sym)
	case ref.Role.IsError():
		results, err := r.resolveErrors(ctx, sym)
		if err != nil {
			return ast.NoNodeID, err
		}
		return bestResult(results), nil
	}
	return ast.NoNodeID, nil
}

// bestResult picks the first valid target, else the first partial one.
func bestResult(results []Result) ast.NodeID {
	partial := ast.NoNodeID
	for _, res := range results {
		if res.Valid {
			return res.Target
		}
		if !partial.IsValid() {
			partial = res.Target
		}
	}
	return partial
}

// MultiResolve returns every target of sym ranked in document order. Only
// error names can have more than one.
func (r *Resolver) MultiResolve(ctx context.Context, sym ast.NodeID) ([]Result, error) {
	ref, ok := r.Reference(sym)
	if !ok || ref.Unsupported {
		return nil, nil
	}
	if ref.Role.IsError() {
		return r.resolveErrors(ctx, sym)
	}
	target, err := r.Resolve(ctx, sym)
	if err != nil || !target.IsValid() {
		return nil, err
	}
	return []Result{{Target: target, Valid: r.wellFormed(target)}}, nil
}

func (r *Resolver) resolveExpression(ctx context.Context, sym ast.NodeID) (ast.NodeID, error) {
	gen := r.tree.Generation()
	r.mu.Lock()
	e, ok := r.targets[sym]
	r.mu.Unlock()
	if ok && e.gen == gen {
		return e.target, nil
	}

	name := r.tree.Name(sym)
	found := ast.NoNodeID
	for decl, err := range r.VisibleDeclarations(ctx, sym, ast.NoNodeID) {
		if err != nil {
			return ast.NoNodeID, err
		}
		if r.tree.Name(decl) == name {
			found = decl
			break
		}
	}
	r.mu.Lock()
	r.targets[sym] = targetEntry{target: found, gen: gen}
	r.mu.Unlock()
	return found, nil
}

// resolveLabel walks ancestors looking for `name:` as the first child.
func (r *Resolver) resolveLabel(ctx context.Context, sym ast.NodeID) (ast.NodeID, error) {
	name := r.tree.Name(sym)
	for anc := range r.tree.Ancestors(sym) {
		if err := checkCanceled(ctx); err != nil {
			return ast.NoNodeID, err
		}
		label := r.tree.FirstSignificantChild(anc)
		if r.tree.Kind(label) != ast.KindBlockLabel {
			continue
		}
		decl := r.tree.ChildOfKind(label, ast.KindSymbol)
		if r.tree.Name(decl) == name {
			return decl, nil
		}
	}
	return ast.NoNodeID, nil
}

// resolveErrors scans the whole file for error-set members and error.Name
// literals spelled like sym.
func (r *Resolver) resolveErrors(ctx context.Context, sym ast.NodeID) ([]Result, error) {
	name := r.tree.Name(sym)
	var out []Result
	n := 0
	for s := range r.tree.Symbols() {
		if n++; n%256 == 0 {
			if err := checkCanceled(ctx); err != nil {
				return nil, err
			}
		}
		if s == sym || !r.Role(s).IsError() || r.tree.Name(s) != name {
			continue
		}
		out = append(out, Result{Target: s, Valid: r.wellFormed(s)})
	}
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// statementKinds bound the "enclosing member or statement" of a target.
var statementKinds = []ast.Kind{
	ast.KindVarDecl, ast.KindFnDecl, ast.KindContainerField, ast.KindTestDecl,
	ast.KindTopLevelComptime, ast.KindUsingNamespace, ast.KindExprStatement,
	ast.KindDeferStatement,
}

// wellFormed: no Error ancestor and no error or missing token inside the
// enclosing statement.
func (r *Resolver) wellFormed(target ast.NodeID) bool {
	if r.tree.Enclosing(target, ast.KindError).IsValid() {
		return false
	}
	stmt := r.tree.Enclosing(target, statementKinds...)
	return !stmt.IsValid() || !r.tree.Malformed(stmt)
}

// VisibleDeclarations lazily yields every declaration visible from `from`, in
// walk order, up to boundary (the root for NoNodeID). On cancellation it
// yields a single (NoNodeID, err) pair and stops.
func (r *Resolver) VisibleDeclarations(ctx context.Context, from, boundary ast.NodeID) iter.Seq2[ast.NodeID, error] {
	return func(yield func(ast.NodeID, error) bool) {
		stopped := false
		visit := VisitorFunc(func(scope, prev ast.NodeID) bool {
			return ProcessDeclarations(r.tree, scope, prev, from, func(decl ast.NodeID) bool {
				if !yield(decl, nil) {
					stopped = true
					return false
				}
				return true
			})
		})
		if _, err := WalkUp(ctx, r.tree, visit, from, boundary); err != nil && !stopped {
			yield(ast.NoNodeID, err)
		}
	}
}

// Usages returns every occurrence in the file whose resolution includes decl,
// in document order. decl itself is not included.
func (r *Resolver) Usages(ctx context.Context, decl ast.NodeID) ([]ast.NodeID, error) {
	ctx, span := trace.Start(ctx, trace.ScopeQuery, "usages")
	defer span.End(r.tree.Name(decl))

	name := r.tree.Name(decl)
	var out []ast.NodeID
	for s := range r.tree.Symbols() {
		if s == decl || r.tree.Name(s) != name {
			continue
		}
		results, err := r.MultiResolve(ctx, s)
		if err != nil {
			return nil, err
		}
		for _, res := range results {
			if res.Target == decl {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

// Declaration returns the declaration a symbol stands for: itself when it
// declares, otherwise its resolved target.
func (r *Resolver) Declaration(ctx context.Context, sym ast.NodeID) (ast.NodeID, error) {
	if role := r.Role(sym); role.IsDeclaration() {
		return sym, nil
	}
	return r.Resolve(ctx, sym)
}
