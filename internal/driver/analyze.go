package driver

import (
	"context"
	"fmt"

	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/observ"
	"zigscope/internal/pipeline"
	"zigscope/internal/source"
	"zigscope/internal/symbols"
	"zigscope/internal/trace"
)

// Options control Analyze and AnalyzeDir.
type Options struct {
	MaxDiagnostics   int
	Jobs             int
	ReportUnresolved bool
	// Extensions selects files in directory mode; [".zig"] when empty.
	Extensions []string
	// Timings appends an ObsTimings diagnostic to every file's bag.
	Timings  bool
	Cache    *DiskCache
	Progress pipeline.ProgressSink
	// BaseDir shortens paths in progress events.
	BaseDir string
}

// AnalyzeResult is one analysed file. Tree and Resolver are nil when the
// result came from the disk cache or the file failed to load.
type AnalyzeResult struct {
	Path     string
	FileSet  *source.FileSet
	File     *source.File
	Tree     *ast.Tree
	Resolver *symbols.Resolver
	Bag      *diag.Bag
	Summary  *Summary
	Cached   bool
}

// Analyze parses one file from disk and checks its references.
func Analyze(ctx context.Context, path string, opts Options) (*AnalyzeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := analyzeFile(ctx, fs.Get(fileID), &opts)
	if err != nil {
		return nil, err
	}
	res.FileSet = fs
	return res, nil
}

func analyzeFile(ctx context.Context, file *source.File, opts *Options) (*AnalyzeResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "analyze", 0)
	defer span.End(file.Path)

	display := pipeline.DisplayName(file.Path, opts.BaseDir)
	key := cacheKey(file.Hash, opts)
	if opts.Cache != nil {
		var cached Summary
		if ok, err := opts.Cache.Get(key, &cached); err == nil && ok {
			pipeline.Emit(opts.Progress, display, pipeline.StageParse, pipeline.StatusCached, nil, 0)
			return &AnalyzeResult{
				Path:    file.Path,
				File:    file,
				Bag:     restoreBag(&cached, file.ID, opts.MaxDiagnostics),
				Summary: &cached,
				Cached:  true,
			}, nil
		}
	}

	timer := observ.NewTimer()
	var (
		tree *ast.Tree
		bag  *diag.Bag
		err  error
	)
	stage := func(s pipeline.Stage, fn func() string) {
		pipeline.Emit(opts.Progress, display, s, pipeline.StatusWorking, nil, 0)
		took := timer.Measure(string(s), fn)
		if err == nil {
			pipeline.Emit(opts.Progress, display, s, pipeline.StatusDone, nil, took)
		}
	}

	stage(pipeline.StageParse, func() string {
		tree, bag, err = parseFile(ctx, file, opts.MaxDiagnostics)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%d nodes", tree.Len())
	})
	if err != nil {
		pipeline.Emit(opts.Progress, display, pipeline.StageParse, pipeline.StatusError, err, 0)
		return nil, err
	}

	res := symbols.NewResolver(tree)
	var refs RefStats
	stage(pipeline.StageResolve, func() string {
		var reporter diag.Reporter
		if opts.ReportUnresolved {
			reporter = diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
		}
		refs, err = CheckReferences(ctx, res, reporter)
		return fmt.Sprintf("%d refs, %d unresolved", refs.References, refs.Unresolved)
	})
	if err != nil {
		pipeline.Emit(opts.Progress, display, pipeline.StageResolve, pipeline.StatusError, err, 0)
		return nil, err
	}

	var summary *Summary
	stage(pipeline.StageReport, func() string {
		summary = summarize(file, tree, res, bag, refs)
		summary.Timing = timer.Report()
		if putErr := opts.Cache.Put(key, summary); putErr != nil {
			trace.Point(ctx, trace.ScopeFile, "cache-put-failed", putErr.Error())
		}
		return ""
	})
	if opts.Timings {
		report := timer.Report()
		appendTimingDiagnostic(bag, timingPayload{Path: file.Path, TotalMS: report.TotalMS, Phases: report.Phases})
	}

	return &AnalyzeResult{
		Path:     file.Path,
		File:     file,
		Tree:     tree,
		Resolver: res,
		Bag:      bag,
		Summary:  summary,
	}, nil
}
