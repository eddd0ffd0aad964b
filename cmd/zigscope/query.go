package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"zigscope/internal/ast"
	"zigscope/internal/diagfmt"
	"zigscope/internal/document"
	"zigscope/internal/source"
	"zigscope/internal/symbols"
)

var rolesCmd = &cobra.Command{
	Use:   "roles [flags] file.zig",
	Short: "List every identifier with its syntactic role",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoles,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] file.zig POS",
	Short: "Find the declaration an identifier refers to",
	Long: `Resolve prints the declaration the identifier at POS refers to.
POS is line:col (1-based) or a byte offset. With --all every target is
printed, which matters only for error names.`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

var completeCmd = &cobra.Command{
	Use:   "complete [flags] file.zig POS",
	Short: "List declarations visible at a position",
	Args:  cobra.ExactArgs(2),
	RunE:  runComplete,
}

var usagesCmd = &cobra.Command{
	Use:   "usages [flags] file.zig POS",
	Short: "List every reference to the declaration at or behind POS",
	Args:  cobra.ExactArgs(2),
	RunE:  runUsages,
}

func init() {
	for _, c := range []*cobra.Command{rolesCmd, resolveCmd, completeCmd, usagesCmd} {
		c.Flags().String("format", "pretty", "output format (pretty|json)")
	}
	resolveCmd.Flags().Bool("all", false, "print every target, not only the best one")
	rolesCmd.Flags().StringSlice("role", nil, "list only these roles (e.g. Expression,VarDeclaration)")
}

func parseRoleFilter(names []string) ([]symbols.Role, error) {
	var out []symbols.Role
	for _, name := range names {
		role, ok := symbols.ParseRole(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown role: %q", name)
		}
		out = append(out, role)
	}
	return out, nil
}

// queryContext is what every symbol query needs.
type queryContext struct {
	settings *settings
	doc      *document.Document
	fs       *source.FileSet
	view     diagfmt.SymbolView
	json     bool
}

func newQueryContext(cmd *cobra.Command, path string) (*queryContext, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	doc, fs, err := openDocument(path, s.maxDiagnostics)
	if err != nil {
		return nil, err
	}
	if !s.quiet {
		s.printDiagnostics(doc.Diagnostics(), fs)
	}
	return &queryContext{
		settings: s,
		doc:      doc,
		fs:       fs,
		view:     diagfmt.SymbolView{Tree: doc.Tree(), FileSet: fs, PathMode: s.pathMode, BaseDir: s.baseDir},
		json:     format == "json",
	}, nil
}

func (q *queryContext) out() io.Writer { return os.Stdout }

func runRoles(cmd *cobra.Command, args []string) error {
	names, err := cmd.Flags().GetStringSlice("role")
	if err != nil {
		return fmt.Errorf("failed to get role flag: %w", err)
	}
	only, err := parseRoleFilter(names)
	if err != nil {
		return err
	}
	q, err := newQueryContext(cmd, args[0])
	if err != nil {
		return err
	}
	q.view.Only = only
	if q.json {
		return q.view.RolesJSON(q.out(), q.doc.Resolver())
	}
	return q.view.RolesPretty(q.out(), q.doc.Resolver())
}

func runResolve(cmd *cobra.Command, args []string) error {
	q, err := newQueryContext(cmd, args[0])
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	sym, err := symbolAt(q.doc, args[1])
	if err != nil {
		return err
	}

	res := q.doc.Resolver()
	var results []symbols.Result
	if all {
		results, err = res.MultiResolve(cmd.Context(), sym)
	} else {
		var target ast.NodeID
		target, err = res.Resolve(cmd.Context(), sym)
		if err == nil && target.IsValid() {
			results, err = res.MultiResolve(cmd.Context(), sym)
			results = pickTarget(results, target)
		}
	}
	if err != nil {
		return err
	}
	if q.json {
		return q.view.ResolutionJSON(q.out(), res, sym, results)
	}
	return q.view.ResolutionPretty(q.out(), res, sym, results)
}

// pickTarget keeps the result for target out of all results.
func pickTarget(results []symbols.Result, target ast.NodeID) []symbols.Result {
	for _, r := range results {
		if r.Target == target {
			return []symbols.Result{r}
		}
	}
	return nil
}

func runComplete(cmd *cobra.Command, args []string) error {
	q, err := newQueryContext(cmd, args[0])
	if err != nil {
		return err
	}
	off, err := parsePosition(q.doc.File(), args[1])
	if err != nil {
		return err
	}
	cands, err := q.doc.Resolver().CompletionsAt(cmd.Context(), off)
	if err != nil {
		return err
	}
	if q.json {
		return q.view.CompletionsJSON(q.out(), cands)
	}
	return q.view.CompletionsPretty(q.out(), cands)
}

func runUsages(cmd *cobra.Command, args []string) error {
	q, err := newQueryContext(cmd, args[0])
	if err != nil {
		return err
	}
	sym, err := symbolAt(q.doc, args[1])
	if err != nil {
		return err
	}
	res := q.doc.Resolver()
	decl, err := res.Declaration(cmd.Context(), sym)
	if err != nil {
		return err
	}
	if !decl.IsValid() {
		return fmt.Errorf("%s at %s does not resolve to a declaration", q.doc.Tree().Name(sym), args[1])
	}
	usages, err := res.Usages(cmd.Context(), decl)
	if err != nil {
		return err
	}
	if q.json {
		return q.view.UsagesJSON(q.out(), decl, usages)
	}
	return q.view.UsagesPretty(q.out(), decl, usages)
}
