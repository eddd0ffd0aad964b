package driver

import (
	"context"
	"strconv"

	"zigscope/internal/diag"
	"zigscope/internal/lexer"
	"zigscope/internal/source"
	"zigscope/internal/token"
	"zigscope/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	// Trivia counts whitespace and comment tokens in Tokens.
	Trivia int
}

// Tokenize loads path and lexes it without parsing. Lex errors land in Bag.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*TokenizeResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "tokenize", trace.CurrentSpan(ctx))
	defer span.End(path)

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	res := &TokenizeResult{FileSet: fs, File: fs.Get(fileID), Bag: diag.NewBag(maxDiagnostics)}
	res.Tokens = lexer.Tokenize(res.File, lexer.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
	for _, tok := range res.Tokens {
		if tok.IsTrivia() {
			res.Trivia++
		}
	}
	span.WithExtra("tokens", strconv.Itoa(len(res.Tokens)))
	return res, nil
}
