package parser

import (
	"context"

	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/lexer"
	"zigscope/internal/source"
	"zigscope/internal/token"
	"zigscope/internal/trace"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// Generation is stamped on the produced tree.
	Generation uint64
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree *ast.Tree
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл
type Parser struct {
	ctx  context.Context
	toks []token.Token
	pos  int // next unconsumed token, trivia included
	b    *ast.Builder
	opts Options
	file source.FileID
}

// ParseFile lexes and parses one file. It never fails: malformed input is
// represented by Error nodes and diagnostics. The root always spans the whole
// file. ctx is polled between container members; on cancellation the rest of
// the file is wrapped into one Error node so the tree stays lossless.
func ParseFile(ctx context.Context, file *source.File, opts Options) Result {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
	defer span.End(file.Path)

	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = br.Bag
	case *diag.BagReporter:
		bag = br.Bag
	}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	p := &Parser{
		ctx:  ctx,
		toks: toks,
		b:    ast.NewBuilder(file.ID, file.Content, toks, opts.Generation),
		opts: opts,
		file: file.ID,
	}
	p.parseRoot()
	return Result{Tree: p.b.Finish(), Bag: bag}
}

// ParseText parses an in-memory buffer with a private FileSet.
func ParseText(name, text string) (*ast.Tree, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, []byte(text)))
	bag := diag.NewBag(256)
	res := ParseFile(context.Background(), file, Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.Tree, bag
}

func (p *Parser) parseRoot() {
	p.b.Open(ast.KindFile)
	p.parseContainerMembers(token.EOF)
	for !p.at(token.EOF) {
		// лишние '}' на верхнем уровне
		p.errorToken(diag.SynStrayToken, "unexpected '"+p.peek().Text+"' at top level")
	}
	p.bump() // EOF: root covers trailing trivia
}

func (p *Parser) canceled() bool {
	return p.ctx != nil && p.ctx.Err() != nil
}

// skipRest wraps every remaining token into a single Error node.
func (p *Parser) skipRest() {
	if p.at(token.EOF) {
		return
	}
	p.open(ast.KindError)
	for !p.at(token.EOF) {
		p.bump()
	}
	p.b.Close()
}
