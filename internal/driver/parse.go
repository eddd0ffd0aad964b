package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/parser"
	"zigscope/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree
	Bag     *diag.Bag
}

func Parse(ctx context.Context, filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	tree, bag, err := parseFile(ctx, file, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    tree,
		Bag:     bag,
	}, nil
}

// parseFile runs the parser with syntax errors capped at maxDiagnostics.
func parseFile(ctx context.Context, file *source.File, maxDiagnostics int) (*ast.Tree, *diag.Bag, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, nil, fmt.Errorf("maxDiagnostics overflow: %w", err)
	}
	bag := diag.NewBag(maxDiagnostics)
	res := parser.ParseFile(ctx, file, parser.Options{
		Reporter:   &diag.BagReporter{Bag: bag},
		MaxErrors:  maxErrors,
		Generation: 1,
	})
	return res.Tree, bag, nil
}
