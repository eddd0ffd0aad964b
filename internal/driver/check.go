package driver

import (
	"context"
	"fmt"

	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/symbols"
)

// RefStats counts what CheckReferences looked at.
type RefStats struct {
	References int `msgpack:"references"`
	Unresolved int `msgpack:"unresolved"`
	Partial    int `msgpack:"partial"`
}

// CheckReferences resolves every hard reference in the tree and reports the
// ones without a target. Soft references (error names) and roles that need a
// container type are skipped, as are primitive type names.
func CheckReferences(ctx context.Context, res *symbols.Resolver, reporter diag.Reporter) (RefStats, error) {
	var stats RefStats
	tree := res.Tree()
	for sym := range tree.Symbols() {
		ref, ok := res.Reference(sym)
		if !ok || ref.Soft || ref.Unsupported {
			continue
		}
		name := tree.Name(sym)
		if ref.Role == symbols.RoleExpression && symbols.IsPrimitive(name) {
			continue
		}
		// names inside broken syntax are noise
		if tree.Enclosing(sym, ast.KindError).IsValid() {
			continue
		}
		stats.References++
		results, err := res.MultiResolve(ctx, sym)
		if err != nil {
			return stats, err
		}
		switch {
		case len(results) == 0:
			stats.Unresolved++
			code, msg := diag.ResUnresolved, fmt.Sprintf("use of undeclared identifier '%s'", name)
			if ref.Role == symbols.RoleBreakLabelReference {
				code, msg = diag.ResUnresolvedLabel, fmt.Sprintf("label '%s' not found", name)
			}
			if reporter != nil {
				diag.ReportWarning(reporter, code, tree.Span(sym), msg).Emit()
			}
		case !results[0].Valid:
			stats.Partial++
			if reporter != nil {
				diag.NewReportBuilder(reporter, diag.SevInfo, diag.ResPartialError, tree.Span(sym),
					fmt.Sprintf("'%s' is declared inside malformed code", name)).
					WithNote(tree.Span(results[0].Target), "declared here").
					Emit()
			}
		}
	}
	return stats, nil
}
