package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zigscope/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "zigscope",
	Short: "Zig source analysis: tokens, syntax trees and name resolution",
	Long:  `zigscope lexes and parses Zig sources into lossless trees and resolves identifiers to their declarations`,
	// Ошибки печатаем сами
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			stopProfiling()
			return err
		}
		profileCleanup = stopProfiling
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runCleanup()
	},
}

var (
	traceCleanup   func()
	profileCleanup func()
)

func runCleanup() {
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	if profileCleanup != nil {
		profileCleanup()
		profileCleanup = nil
	}
}

// main registers subcommands and persistent flags, then executes the root
// command. Any error exits with status 1.
func main() {
	rootCmd.Version = version.Plain()

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(usagesCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from zigscope.toml)")
	rootCmd.PersistentFlags().String("config", "", "path to zigscope.toml (default: search upwards)")
	rootCmd.PersistentFlags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	addTraceFlags(rootCmd)
	addProfileFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintf(os.Stderr, "zigscope: %v\n", err)
		}
		runCleanup()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
