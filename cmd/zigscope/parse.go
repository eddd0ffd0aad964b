package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zigscope/internal/ast"
	"zigscope/internal/diagfmt"
	"zigscope/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.zig|directory>",
	Short: "Parse Zig sources and print the syntax tree",
	Long:  `Parse builds the lossless syntax tree of a Zig file, or of every source file in a directory, and prints it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|sexpr|json|none)")
	parseCmd.Flags().Bool("trivia", false, "include whitespace and comments in tree output")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0 = from zigscope.toml, then GOMAXPROCS)")
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withTrivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	target := args[0]
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	printTree := func(tree *ast.Tree) error {
		switch format {
		case "tree":
			return diagfmt.FormatTreePretty(os.Stdout, tree, withTrivia)
		case "sexpr":
			return diagfmt.FormatTreeSexpr(os.Stdout, tree)
		case "json":
			return diagfmt.FormatTreeJSON(os.Stdout, tree, withTrivia)
		case "none":
			return nil
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}

	if !st.IsDir() {
		result, err := driver.Parse(cmd.Context(), target, s.maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		s.printDiagnostics(result.Bag, result.FileSet)
		if err := printTree(result.Tree); err != nil {
			return err
		}
		if result.Bag.HasErrors() {
			return errHasErrors
		}
		return nil
	}

	opts := s.driverOptions()
	if jobs > 0 {
		opts.Jobs = jobs
	}
	fs, results, err := driver.ParseDir(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	failed := false
	for _, r := range results {
		s.printDiagnostics(r.Bag, fs)
		failed = failed || r.Bag.HasErrors()
		if r.Tree == nil || format == "none" {
			continue
		}
		if !s.quiet {
			if _, err := fmt.Fprintf(os.Stdout, "== %s ==\n", diagfmt.DisplayPath(fs.Get(r.FileID), s.pathMode, s.baseDir)); err != nil {
				return err
			}
		}
		if err := printTree(r.Tree); err != nil {
			return err
		}
	}
	if failed {
		return errHasErrors
	}
	return nil
}
