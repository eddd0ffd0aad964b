package document

import (
	"context"
	"fmt"

	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/source"
	"zigscope/internal/symbols"
	"zigscope/internal/trace"
)

// Change records how one reference resolved around a rename.
type Change struct {
	Origin ast.NodeID
	Before ast.NodeID
	After  ast.NodeID
}

// Changed reports whether the reference now points elsewhere.
func (c Change) Changed() bool { return c.Before != c.After }

// RenameResult lists the renamed occurrences and every re-resolved reference.
type RenameResult struct {
	OldName    string
	NewName    string
	Renamed    []ast.NodeID
	Changes    []Change
	Generation uint64
}

// Rename rewrites the single identifier sym into a new version of the
// document; the previous tree and resolver are left as they were. References that
// depended on sym before the change, and references that may be captured by
// the new spelling, are resolved again and reported with their old and new
// targets.
func (d *Document) Rename(ctx context.Context, sym ast.NodeID, newName string) (RenameResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tree.Kind(sym) != ast.KindSymbol {
		return RenameResult{}, fmt.Errorf("rename: node %d is not an identifier", sym)
	}
	return d.rename(ctx, []ast.NodeID{sym}, newName)
}

// RenameSymbol renames the declaration behind sym together with every usage
// of it. sym may be the declaration itself or any reference to it.
func (d *Document) RenameSymbol(ctx context.Context, sym ast.NodeID, newName string) (RenameResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tree.Kind(sym) != ast.KindSymbol {
		return RenameResult{}, fmt.Errorf("rename: node %d is not an identifier", sym)
	}
	decl, err := d.res.Declaration(ctx, sym)
	if err != nil {
		return RenameResult{}, fmt.Errorf("rename: %w", err)
	}
	if !decl.IsValid() {
		return RenameResult{}, fmt.Errorf("rename: %q does not resolve to a declaration", d.tree.Name(sym))
	}
	usages, err := d.res.Usages(ctx, decl)
	if err != nil {
		return RenameResult{}, fmt.Errorf("rename: %w", err)
	}
	return d.rename(ctx, append([]ast.NodeID{decl}, usages...), newName)
}

func (d *Document) rename(ctx context.Context, targets []ast.NodeID, newName string) (RenameResult, error) {
	name, err := NormalizeName(newName)
	if err != nil {
		return RenameResult{}, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeFile, "rename")
	defer span.End(name)

	out := RenameResult{OldName: d.tree.Name(targets[0]), NewName: name, Renamed: targets}

	// Anything spelled like the old or the new name may change target.
	var deps []ast.NodeID
	for s := range d.tree.Symbols() {
		n := d.tree.Name(s)
		if n != out.OldName && n != name {
			continue
		}
		if ref, ok := d.res.Reference(s); ok && !ref.Unsupported {
			deps = append(deps, s)
		}
	}
	before := make([]ast.NodeID, len(deps))
	for i, s := range deps {
		if before[i], err = d.res.Resolve(ctx, s); err != nil {
			return RenameResult{}, fmt.Errorf("rename: %w", err)
		}
	}

	v := d.fork()
	for _, sym := range targets {
		if err := v.patch(sym, name); err != nil {
			return RenameResult{}, fmt.Errorf("rename: %w", err)
		}
	}
	d.commit(&v.file, v.tree, v.bag, v.res)
	out.Generation = d.tree.Generation()

	for i, s := range deps {
		after, err := d.res.Resolve(ctx, s)
		if err != nil {
			return out, fmt.Errorf("rename applied, re-resolution stopped: %w", err)
		}
		out.Changes = append(out.Changes, Change{Origin: s, Before: before[i], After: after})
	}
	return out, nil
}

// version is the next state of a document while a rename is applied to it.
// Nothing in it is visible to readers until commit.
type version struct {
	file source.File
	tree *ast.Tree
	bag  *diag.Bag
	res  *symbols.Resolver
}

func (d *Document) fork() *version {
	tree := d.tree.Clone()
	return &version{file: *d.file, tree: tree, bag: d.bag, res: d.res.Fork(tree)}
}

// patch replaces the identifier token of sym in the tree and in the file
// buffer, and shifts diagnostics that follow it.
func (v *version) patch(sym ast.NodeID, name string) error {
	leaf := v.tree.FirstSignificantChild(sym)
	old := v.tree.Span(leaf)
	if err := v.tree.ReplaceToken(leaf, name); err != nil {
		return err
	}
	if err := v.file.Splice(old.Start, old.End, name); err != nil {
		return err
	}
	if delta := int64(len(name)) - int64(old.Len()); delta != 0 {
		v.bag = v.bag.Map(func(dg diag.Diagnostic) diag.Diagnostic {
			return dg.ShiftAfter(v.file.ID, old.End, delta)
		})
	}
	return nil
}
