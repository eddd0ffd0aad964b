package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/mattn/go-runewidth"

	"zigscope/internal/ast"
	"zigscope/internal/document"
	"zigscope/internal/source"
	"zigscope/internal/symbols"
)

// SymbolJSON describes one identifier occurrence.
type SymbolJSON struct {
	Name     string       `json:"name"`
	Role     string       `json:"role,omitempty"`
	Location LocationJSON `json:"location"`
}

// RoleJSON is a row of the roles table.
type RoleJSON struct {
	SymbolJSON
	Declaration bool `json:"declaration,omitempty"`
	Function    bool `json:"function,omitempty"`
	Variable    bool `json:"variable,omitempty"`
	Parameter   bool `json:"parameter,omitempty"`
}

// TargetJSON is one resolution target.
type TargetJSON struct {
	SymbolJSON
	Valid bool `json:"valid"`
}

// ResolutionJSON is the answer to a resolve query.
type ResolutionJSON struct {
	Symbol      SymbolJSON   `json:"symbol"`
	Soft        bool         `json:"soft,omitempty"`
	Unsupported bool         `json:"unsupported,omitempty"`
	Targets     []TargetJSON `json:"targets"`
}

type CandidateJSON struct {
	Name     string       `json:"name"`
	Kind     string       `json:"kind"`
	Tail     string       `json:"tail,omitempty"`
	Location LocationJSON `json:"location"`
}

type ChangeJSON struct {
	Symbol SymbolJSON  `json:"symbol"`
	Before *SymbolJSON `json:"before,omitempty"`
	After  *SymbolJSON `json:"after,omitempty"`
}

type RenameJSON struct {
	OldName    string       `json:"old_name"`
	NewName    string       `json:"new_name"`
	Generation uint64       `json:"generation"`
	Renamed    []SymbolJSON `json:"renamed"`
	Changes    []ChangeJSON `json:"changes"`
}

// SymbolView renders symbols of one tree.
type SymbolView struct {
	Tree     *ast.Tree
	FileSet  *source.FileSet
	PathMode PathMode
	BaseDir  string
	// Only limits role listings to these roles; empty keeps all.
	Only []symbols.Role
}

func (v SymbolView) symbol(id ast.NodeID, role symbols.Role) SymbolJSON {
	out := SymbolJSON{
		Name:     v.Tree.Name(id),
		Location: locator{fs: v.FileSet, mode: v.PathMode, baseDir: v.BaseDir, positions: true}.at(v.Tree.Span(id)),
	}
	if role != symbols.RoleInvalid {
		out.Role = role.String()
	}
	return out
}

func (v SymbolView) optional(id ast.NodeID) *SymbolJSON {
	if !id.IsValid() {
		return nil
	}
	s := v.symbol(id, symbols.RoleInvalid)
	return &s
}

func (v SymbolView) where(id ast.NodeID) string {
	loc := v.symbol(id, symbols.RoleInvalid).Location
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.StartLine, loc.StartCol)
}

func encodeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// Roles lists every identifier occurrence with its role.
func (v SymbolView) Roles(res *symbols.Resolver) []RoleJSON {
	out := []RoleJSON{}
	for sym := range v.Tree.Symbols() {
		role := res.Role(sym)
		if len(v.Only) > 0 && !slices.Contains(v.Only, role) {
			continue
		}
		out = append(out, RoleJSON{
			SymbolJSON:  v.symbol(sym, role),
			Declaration: role.IsDeclaration(),
			Function:    symbols.IsFunctionName(v.Tree, sym),
			Variable:    symbols.IsVariableName(v.Tree, sym),
			Parameter:   symbols.IsParameter(v.Tree, sym),
		})
	}
	return out
}

func (v SymbolView) RolesPretty(w io.Writer, res *symbols.Resolver) error {
	rows := v.Roles(res)
	nameWidth := 0
	for _, r := range rows {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.Name))
	}
	for _, r := range rows {
		pos := fmt.Sprintf("%d:%d", r.Location.StartLine, r.Location.StartCol)
		flags := ""
		switch {
		case r.Function:
			flags = "  fn"
		case r.Variable:
			flags = "  var"
		case r.Parameter:
			flags = "  param"
		}
		if _, err := fmt.Fprintf(w, "%-8s %s  %s%s\n", pos, runewidth.FillRight(r.Name, nameWidth), r.Role, flags); err != nil {
			return err
		}
	}
	return nil
}

func (v SymbolView) RolesJSON(w io.Writer, res *symbols.Resolver) error {
	return encodeJSON(w, v.Roles(res))
}

// Resolution builds the resolve answer for sym from precomputed results.
func (v SymbolView) Resolution(res *symbols.Resolver, sym ast.NodeID, results []symbols.Result) ResolutionJSON {
	out := ResolutionJSON{Symbol: v.symbol(sym, res.Role(sym)), Targets: []TargetJSON{}}
	if ref, ok := res.Reference(sym); ok {
		out.Soft, out.Unsupported = ref.Soft, ref.Unsupported
	}
	for _, r := range results {
		out.Targets = append(out.Targets, TargetJSON{SymbolJSON: v.symbol(r.Target, res.Role(r.Target)), Valid: r.Valid})
	}
	return out
}

func (v SymbolView) ResolutionPretty(w io.Writer, res *symbols.Resolver, sym ast.NodeID, results []symbols.Result) error {
	out := v.Resolution(res, sym, results)
	fmt.Fprintf(w, "%s (%s) at %s\n", out.Symbol.Name, out.Symbol.Role, v.where(sym))
	switch {
	case out.Unsupported:
		_, err := fmt.Fprintln(w, "  -> not supported: needs the container type")
		return err
	case len(out.Targets) == 0:
		_, err := fmt.Fprintln(w, "  -> unresolved")
		return err
	}
	for i, t := range out.Targets {
		mark := ""
		if !t.Valid {
			mark = " (partial)"
		}
		if _, err := fmt.Fprintf(w, "  -> %s (%s)%s\n", v.where(results[i].Target), t.Role, mark); err != nil {
			return err
		}
	}
	return nil
}

func (v SymbolView) ResolutionJSON(w io.Writer, res *symbols.Resolver, sym ast.NodeID, results []symbols.Result) error {
	return encodeJSON(w, v.Resolution(res, sym, results))
}

func (v SymbolView) CompletionsPretty(w io.Writer, cands []symbols.Candidate) error {
	for _, c := range cands {
		if _, err := fmt.Fprintf(w, "%-10s %s%s\n", c.Kind, c.Name, c.Tail); err != nil {
			return err
		}
	}
	return nil
}

func (v SymbolView) CompletionsJSON(w io.Writer, cands []symbols.Candidate) error {
	out := make([]CandidateJSON, 0, len(cands))
	for _, c := range cands {
		out = append(out, CandidateJSON{
			Name:     c.Name,
			Kind:     c.Kind.String(),
			Tail:     c.Tail,
			Location: v.symbol(c.Decl, symbols.RoleInvalid).Location,
		})
	}
	return encodeJSON(w, out)
}

func (v SymbolView) UsagesPretty(w io.Writer, decl ast.NodeID, usages []ast.NodeID) error {
	fmt.Fprintf(w, "%s declared at %s, %d usage(s)\n", v.Tree.Name(decl), v.where(decl), len(usages))
	for _, u := range usages {
		if _, err := fmt.Fprintf(w, "  %s\n", v.where(u)); err != nil {
			return err
		}
	}
	return nil
}

func (v SymbolView) UsagesJSON(w io.Writer, decl ast.NodeID, usages []ast.NodeID) error {
	out := struct {
		Declaration SymbolJSON   `json:"declaration"`
		Usages      []SymbolJSON `json:"usages"`
	}{Declaration: v.symbol(decl, symbols.RoleInvalid), Usages: []SymbolJSON{}}
	for _, u := range usages {
		out.Usages = append(out.Usages, v.symbol(u, symbols.RoleInvalid))
	}
	return encodeJSON(w, out)
}

// Rename builds the report of a rename. v.Tree must be the tree after it.
func (v SymbolView) Rename(result *document.RenameResult) RenameJSON {
	out := RenameJSON{
		OldName:    result.OldName,
		NewName:    result.NewName,
		Generation: result.Generation,
		Renamed:    []SymbolJSON{},
		Changes:    []ChangeJSON{},
	}
	for _, id := range result.Renamed {
		out.Renamed = append(out.Renamed, v.symbol(id, symbols.RoleInvalid))
	}
	for _, ch := range result.Changes {
		if !ch.Changed() {
			continue
		}
		out.Changes = append(out.Changes, ChangeJSON{
			Symbol: v.symbol(ch.Origin, symbols.RoleInvalid),
			Before: v.optional(ch.Before),
			After:  v.optional(ch.After),
		})
	}
	return out
}

func (v SymbolView) RenamePretty(w io.Writer, result *document.RenameResult) error {
	out := v.Rename(result)
	fmt.Fprintf(w, "renamed %s -> %s at %d site(s)\n", out.OldName, out.NewName, len(out.Renamed))
	for _, ch := range out.Changes {
		before, after := "unresolved", "unresolved"
		if ch.Before != nil {
			before = fmt.Sprintf("%d:%d", ch.Before.Location.StartLine, ch.Before.Location.StartCol)
		}
		if ch.After != nil {
			after = fmt.Sprintf("%d:%d", ch.After.Location.StartLine, ch.After.Location.StartCol)
		}
		if _, err := fmt.Fprintf(w, "  warning: %s at %d:%d now binds to %s (was %s)\n",
			ch.Symbol.Name, ch.Symbol.Location.StartLine, ch.Symbol.Location.StartCol, after, before); err != nil {
			return err
		}
	}
	return nil
}

func (v SymbolView) RenameJSON(w io.Writer, result *document.RenameResult) error {
	return encodeJSON(w, v.Rename(result))
}
