package document

import (
	"context"
	"fmt"
	"sync"

	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/parser"
	"zigscope/internal/source"
	"zigscope/internal/symbols"
	"zigscope/internal/trace"
)

const defaultMaxDiagnostics = 256

// Document is one open file: its text, the current tree and a resolver bound
// to that tree.
type Document struct {
	mu   sync.Mutex
	fs   *source.FileSet
	file *source.File
	tree *ast.Tree
	bag  *diag.Bag
	res  *symbols.Resolver

	maxDiagnostics int
}

// Open parses text as the first generation of path. The file is registered in
// fs as a virtual buffer.
func Open(fs *source.FileSet, path string, text []byte) *Document {
	d := &Document{fs: fs, maxDiagnostics: defaultMaxDiagnostics}
	d.file = fs.Get(fs.AddVirtual(path, text))
	d.tree, d.bag = d.parse(context.Background(), d.file, 1)
	d.res = symbols.NewResolver(d.tree)
	return d
}

// SetMaxDiagnostics caps the diagnostics kept by later reparses.
func (d *Document) SetMaxDiagnostics(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n > 0 {
		d.maxDiagnostics = n
	}
}

func (d *Document) parse(ctx context.Context, file *source.File, gen uint64) (*ast.Tree, *diag.Bag) {
	bag := diag.NewBag(d.maxDiagnostics)
	res := parser.ParseFile(ctx, file, parser.Options{
		Reporter:   &diag.BagReporter{Bag: bag},
		Generation: gen,
	})
	return res.Tree, bag
}

// commit registers next as the newest version of the file and publishes tree,
// bag and res, which were built against next's old id and are not shared yet.
func (d *Document) commit(next *source.File, tree *ast.Tree, bag *diag.Bag, res *symbols.Resolver) {
	from := next.ID
	id := d.fs.Add(next.Path, next.Content, next.Flags)
	tree.Rebind(id)
	d.file = d.fs.Get(id)
	d.tree = tree
	d.bag = bag.Map(func(dg diag.Diagnostic) diag.Diagnostic { return dg.Retarget(from, id) })
	d.res = res
}

func (d *Document) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file.Path
}

func (d *Document) File() *source.File {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file
}

func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return string(d.file.Content)
}

func (d *Document) Tree() *ast.Tree {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree
}

func (d *Document) Resolver() *symbols.Resolver {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.res
}

// Diagnostics returns the syntax diagnostics of the current tree.
func (d *Document) Diagnostics() *diag.Bag {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bag
}

func (d *Document) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree.Generation()
}

// Edit replaces the bytes in [start, end) with text and reparses into a new
// tree. Trees and resolvers handed out earlier stay valid and unchanged. When
// ctx is canceled mid-parse the document and its file set keep their
// previous state.
func (d *Document) Edit(ctx context.Context, start, end uint32, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "edit", 0)
	defer span.End(d.file.Path)

	next := *d.file
	if err := next.Splice(start, end, text); err != nil {
		return fmt.Errorf("edit %s: %w", d.file.Path, err)
	}
	tree, bag := d.parse(ctx, &next, d.tree.Generation()+1)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("edit %s: %w", d.file.Path, err)
	}
	d.commit(&next, tree, bag, symbols.NewResolver(tree))
	return nil
}
