package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"zigscope/internal/document"
)

var renameCmd = &cobra.Command{
	Use:   "rename [flags] file.zig POS NEW",
	Short: "Rename an identifier and report references that change meaning",
	Long: `Rename replaces the identifier at POS with NEW. With --all the declaration
and every usage are renamed together. References whose resolution changes are
reported. The new source goes to stdout unless -w is given.`,
	Args: cobra.ExactArgs(3),
	RunE: runRename,
}

func init() {
	renameCmd.Flags().String("format", "pretty", "report format (pretty|json)")
	renameCmd.Flags().Bool("all", false, "rename the declaration and all of its usages")
	renameCmd.Flags().BoolP("write", "w", false, "write the result back to the file")
}

func runRename(cmd *cobra.Command, args []string) error {
	path, pos, newName := args[0], args[1], args[2]
	q, err := newQueryContext(cmd, path)
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}

	sym, err := symbolAt(q.doc, pos)
	if err != nil {
		return err
	}
	var result document.RenameResult
	if all {
		result, err = q.doc.RenameSymbol(cmd.Context(), sym, newName)
	} else {
		result, err = q.doc.Rename(cmd.Context(), sym, newName)
	}
	if err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	q.view.Tree = q.doc.Tree()

	// отчёт в stdout только если исходник туда не пишется
	var report io.Writer = os.Stderr
	if write {
		if err := writeFilePreservingMode(path, []byte(q.doc.Text())); err != nil {
			return err
		}
		report = os.Stdout
	} else if _, err := io.WriteString(os.Stdout, q.doc.Text()); err != nil {
		return err
	}

	if q.settings.quiet {
		return nil
	}
	if q.json {
		return q.view.RenameJSON(report, &result)
	}
	return q.view.RenamePretty(report, &result)
}

func writeFilePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
