package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/pipeline"
	"zigscope/internal/source"
)

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path   string
	FileID source.FileID
	Tree   *ast.Tree // nil, если файл не загрузился
	Bag    *diag.Bag
}

// build output directories are never analysed
var skippedDirs = map[string]bool{
	".git": true, ".zig-cache": true, "zig-cache": true, "zig-out": true,
}

// ListFiles returns every file under dir with one of exts, sorted.
func ListFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = []string{".zig"}
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// loadedFile is a preloaded file or its load error.
type loadedFile struct {
	path string
	file *source.File
	err  error
}

// loadAll reads every file up front. The FileSet is not safe for concurrent
// writes, workers only read from it afterwards.
func loadAll(files []string) (*source.FileSet, []loadedFile) {
	fileSet := source.NewFileSet()
	out := make([]loadedFile, len(files))
	for i, path := range files {
		out[i].path = path
		id, err := fileSet.Load(path)
		if err != nil {
			out[i].err = err
			continue
		}
		out[i].file = fileSet.Get(id)
	}
	return fileSet, out
}

func loadErrorBag(path string, err error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(max(maxDiagnostics, 1))
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  fmt.Sprintf("failed to load %s: %v", path, err),
	})
	return bag
}

// forEach runs fn over files with at most jobs workers. Results are written by
// index so no locking is needed.
func forEach(ctx context.Context, n, jobs int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, n))
	for i := range n {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// ParseDir парсит все файлы директории параллельно
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet, loaded := loadAll(files)
	results := make([]ParseDirResult, len(files))

	err = forEach(ctx, len(files), opts.Jobs, func(ctx context.Context, i int) error {
		lf := loaded[i]
		if lf.err != nil {
			results[i] = ParseDirResult{Path: lf.path, Bag: loadErrorBag(lf.path, lf.err, opts.MaxDiagnostics)}
			return nil
		}
		tree, bag, err := parseFile(ctx, lf.file, opts.MaxDiagnostics)
		if err != nil {
			return err
		}
		results[i] = ParseDirResult{Path: lf.path, FileID: lf.file.ID, Tree: tree, Bag: bag}
		return nil
	})
	return fileSet, results, err
}

// AnalyzeDir analyses every file of dir in parallel. Results come back in
// sorted path order whatever the scheduling was. A file that fails to load
// yields a result with an IOLoadFileError diagnostic, not an error.
func AnalyzeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*AnalyzeResult, error) {
	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet, loaded := loadAll(files)
	pipeline.EmitQueued(opts.Progress, pipeline.DisplayFiles(files, opts.BaseDir))

	results := make([]*AnalyzeResult, len(files))
	err = forEach(ctx, len(files), opts.Jobs, func(ctx context.Context, i int) error {
		lf := loaded[i]
		if lf.err != nil {
			pipeline.Emit(opts.Progress, pipeline.DisplayName(lf.path, opts.BaseDir), pipeline.StageLex, pipeline.StatusError, lf.err, 0)
			results[i] = &AnalyzeResult{Path: lf.path, FileSet: fileSet, Bag: loadErrorBag(lf.path, lf.err, opts.MaxDiagnostics)}
			return nil
		}
		res, err := analyzeFile(ctx, lf.file, &opts)
		if err != nil {
			return fmt.Errorf("%s: %w", lf.path, err)
		}
		res.FileSet = fileSet
		results[i] = res
		return nil
	})
	return fileSet, results, err
}
