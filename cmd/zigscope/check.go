package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zigscope/internal/diag"
	"zigscope/internal/diagfmt"
	"zigscope/internal/driver"
	"zigscope/internal/fix"
	"zigscope/internal/pipeline"
	"zigscope/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.zig|directory>",
	Short: "Report syntax errors and unresolved references",
	Long: `Check parses Zig sources and resolves every identifier. Syntax errors are
reported as errors, unresolved references as warnings. Directories are analysed
in parallel.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0 = from zigscope.toml, then GOMAXPROCS)")
	checkCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "reuse analysis summaries from the user cache directory")
	checkCmd.Flags().Bool("clear-cache", false, "drop the analysis cache before running")
	checkCmd.Flags().Bool("no-warnings", false, "hide warnings")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit with status 1 on warnings")
	checkCmd.Flags().Bool("fix", false, "apply suggested fixes to the files on disk")
	checkCmd.Flags().String("fix-mode", "all", "which fixes --fix applies (once|all)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	useCache, err := flags.GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := flags.GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	noWarnings, err := flags.GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := flags.GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	applyFixes, err := flags.GetBool("fix")
	if err != nil {
		return fmt.Errorf("failed to get fix flag: %w", err)
	}
	fixModeFlag, err := flags.GetString("fix-mode")
	if err != nil {
		return fmt.Errorf("failed to get fix-mode flag: %w", err)
	}
	var fixMode fix.ApplyMode
	switch fixModeFlag {
	case "once":
		fixMode = fix.ApplyModeOnce
	case "all":
		fixMode = fix.ApplyModeAll
	default:
		return fmt.Errorf("unknown fix mode: %s", fixModeFlag)
	}

	opts := s.driverOptions()
	if jobs > 0 {
		opts.Jobs = jobs
	}
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("zigscope")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}
	var recorder *pipeline.Recorder
	if s.timings {
		recorder = &pipeline.Recorder{}
		opts.Progress = recorder
	}

	target := args[0]
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fs      *source.FileSet
		results []*driver.AnalyzeResult
	)
	if !st.IsDir() {
		res, err := driver.Analyze(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		fs, results = res.FileSet, []*driver.AnalyzeResult{res}
	} else if shouldUseTUI(mode, s.quiet) {
		files, err := driver.ListFiles(target, opts.Extensions)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("checking %s", filepath.Base(filepath.Clean(target)))
		fs, results, err = analyzeDirWithUI(cmd.Context(), title, target, pipeline.DisplayFiles(files, s.baseDir), opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	} else {
		fs, results, err = driver.AnalyzeDir(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	}

	merged := diag.NewBag(max(s.maxDiagnostics, 1))
	for _, r := range results {
		merged.Merge(r.Bag)
	}
	if noWarnings {
		merged = merged.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	}
	merged.Sort()

	if applyFixes {
		res, err := fix.Apply(fs, merged.Items(), fix.ApplyOptions{Mode: fixMode, Write: true})
		switch {
		case errors.Is(err, fix.ErrNoFixes):
			if !s.quiet {
				fmt.Fprintln(os.Stderr, "no fixes to apply")
			}
		case err != nil:
			return fmt.Errorf("failed to apply fixes: %w", err)
		default:
			printFixSummary(res, fs, s)
			// повторный прогон по исправленным файлам
			if err := flags.Set("fix", "false"); err != nil {
				return err
			}
			return runCheck(cmd, args)
		}
	}

	switch format {
	case "json":
		if err := diagfmt.JSON(os.Stdout, merged, fs, s.jsonOpts()); err != nil {
			return err
		}
	case "short":
		if out := diag.FormatShort(merged.Items(), fs, s.baseDir, false); out != "" {
			fmt.Fprintln(os.Stdout, out)
		}
	default:
		diagfmt.Pretty(os.Stdout, merged, fs, s.prettyOpts())
		if !s.quiet {
			printCheckSummary(results)
		}
	}
	if recorder != nil {
		if err := printStageTimings(os.Stderr, recorder.Timings()); err != nil {
			return err
		}
	}

	if merged.HasErrors() || (warningsAsErrors && merged.HasWarnings()) {
		return errHasErrors
	}
	return nil
}


func printCheckSummary(results []*driver.AnalyzeResult) {
	var refs driver.RefStats
	cached := 0
	for _, r := range results {
		if r.Summary != nil {
			refs.References += r.Summary.Refs.References
			refs.Unresolved += r.Summary.Refs.Unresolved
			refs.Partial += r.Summary.Refs.Partial
		}
		if r.Cached {
			cached++
		}
	}
	fmt.Fprintf(os.Stderr, "%d file(s), %d reference(s), %d unresolved, %d partial", len(results), refs.References, refs.Unresolved, refs.Partial)
	if cached > 0 {
		fmt.Fprintf(os.Stderr, ", %d from cache", cached)
	}
	fmt.Fprintln(os.Stderr)
}

func printFixSummary(res *fix.ApplyResult, fs *source.FileSet, s *settings) {
	if s.quiet {
		return
	}
	for _, a := range res.Applied {
		fmt.Fprintf(os.Stderr, "fixed %s: %s (%s)\n", diagfmt.DisplayPath(fs.Get(a.File), s.pathMode, s.baseDir), a.Title, a.Code.ID())
	}
	for _, sk := range res.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", sk.Title, sk.Reason)
	}
}
