package fix_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"zigscope/internal/diag"
	"zigscope/internal/fix"
	"zigscope/internal/parser"
	"zigscope/internal/source"
)

func parseWithFixes(t *testing.T, fs *source.FileSet, id source.FileID) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(64)
	parser.ParseFile(context.Background(), fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return bag
}

func TestApplyInsertsMissingSemicolons(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.zig", []byte("const a = 1\nconst b = 2 // tail\n"))
	bag := parseWithFixes(t, fs, id)
	if !bag.HasErrors() {
		t.Fatalf("expected missing ';' errors")
	}

	res, err := fix.Apply(fs, bag.Items(), fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Changes) != 1 {
		t.Fatalf("expected 1 changed file, got %d", len(res.Changes))
	}
	want := "const a = 1;\nconst b = 2; // tail\n"
	if got := string(res.Changes[0].Content); got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	if res.Changes[0].EditCount != 2 {
		t.Fatalf("edit count = %d, want 2", res.Changes[0].EditCount)
	}
	if string(fs.Get(id).Content) != "const a = 1\nconst b = 2 // tail\n" {
		t.Fatalf("apply must not touch the FileSet content")
	}

	// the fixed text parses cleanly
	fs2 := source.NewFileSet()
	if bag := parseWithFixes(t, fs2, fs2.AddVirtual("a.zig", res.Changes[0].Content)); bag.HasErrors() {
		t.Fatalf("fixed source still has errors: %v", bag.Items())
	}
}

func TestApplyOnceTakesFirstInDocumentOrder(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.zig", []byte("abcdef"))
	mk := func(start uint32, text string) diag.Diagnostic {
		sp := source.Span{File: id, Start: start, End: start + 1}
		return diag.Diagnostic{Code: diag.SynUnexpectedToken, Primary: sp, Fixes: []diag.Fix{fix.ReplaceSpan("r", sp, text)}}
	}
	res, err := fix.Apply(fs, []diag.Diagnostic{mk(4, "E"), mk(1, "B")}, fix.ApplyOptions{Mode: fix.ApplyModeOnce})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := string(res.Changes[0].Content); got != "aBcdef" {
		t.Fatalf("content = %q, want %q", got, "aBcdef")
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}
}

func TestApplySkipsConflicts(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.zig", []byte("abcdef"))
	first := source.Span{File: id, Start: 1, End: 4}
	second := source.Span{File: id, Start: 3, End: 5}
	diags := []diag.Diagnostic{
		{Primary: first, Fixes: []diag.Fix{fix.DeleteSpan("drop bcd", first)}},
		{Primary: second, Fixes: []diag.Fix{fix.ReplaceSpan("swap de", second, "XY")}},
	}
	res, err := fix.Apply(fs, diags, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Title != "swap de" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if got := string(res.Changes[0].Content); got != "aef" {
		t.Fatalf("content = %q, want %q", got, "aef")
	}
}

func TestApplyNoFixes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.zig", []byte("x"))
	bad := source.Span{File: id, Start: 0, End: 10}
	diags := []diag.Diagnostic{
		{Primary: bad},
		{Primary: bad, Fixes: []diag.Fix{fix.DeleteSpan("too far", bad)}},
	}
	res, err := fix.Apply(fs, diags, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "edit span out of range" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplyWritesFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.zig")
	if err := os.WriteFile(path, []byte("const a = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	bag := parseWithFixes(t, fs, id)
	if _, err := fix.Apply(fs, bag.Items(), fix.ApplyOptions{Mode: fix.ApplyModeAll, Write: true}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "const a = 1;\n" {
		t.Fatalf("file = %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
}
