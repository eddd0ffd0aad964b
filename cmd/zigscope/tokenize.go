package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zigscope/internal/diagfmt"
	"zigscope/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.zig",
	Short: "Tokenize a Zig source file",
	Long:  `Tokenize prints the token stream of a Zig source file; --trivia keeps whitespace and comments`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("trivia", false, "include whitespace and comment tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
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

	result, err := driver.Tokenize(cmd.Context(), args[0], s.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	s.printDiagnostics(result.Bag, result.FileSet)

	filter := diagfmt.TokensSignificant
	if withTrivia {
		filter = diagfmt.TokensAll
	}
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet, filter)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, filter)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
