package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zigscope/internal/driver"
)

var indexCmd = &cobra.Command{
	Use:   "index [flags] <directory>",
	Short: "Write a msgpack index of the declarations of a directory",
	Long: `Index analyses every source file of a directory and writes the container-level
declarations of each to a msgpack file. With --lookup NAME an existing index is
queried instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringP("output", "o", "zigscope-index.mp", "index file to write")
	indexCmd.Flags().String("lookup", "", "read the index given as argument and print declarations named NAME")
	indexCmd.Flags().Bool("cache", false, "reuse analysis summaries from the user cache directory")
}

func runIndex(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	lookup, err := cmd.Flags().GetString("lookup")
	if err != nil {
		return fmt.Errorf("failed to get lookup flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	if lookup != "" {
		return lookupIndex(args[0], lookup)
	}

	opts := s.driverOptions()
	opts.Timings = false
	if useCache {
		if opts.Cache, err = driver.OpenDiskCache("zigscope"); err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}
	root, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	_, results, err := driver.AnalyzeDir(cmd.Context(), root, opts)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}
	idx := driver.BuildIndex(root, results)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	w := bufio.NewWriter(f)
	if err := idx.Write(w); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if !s.quiet {
		fmt.Fprintf(os.Stderr, "indexed %d declaration(s) from %d file(s) into %s\n", idx.Count(), len(idx.Files), output)
	}
	return nil
}

func lookupIndex(path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	idx, err := driver.ReadIndex(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("failed to read index %s: %w", path, err)
	}
	hits := idx.Lookup(name)
	if len(hits) == 0 {
		return fmt.Errorf("%s: not found", name)
	}
	for _, h := range hits {
		vis := ""
		if h.Public {
			vis = "pub "
		}
		fmt.Fprintf(os.Stdout, "%s:%d:%d: %s%s (%s)\n", h.File, h.Line, h.Col, vis, h.Name, h.Role)
	}
	return nil
}
