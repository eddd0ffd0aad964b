package main

import (
	"os"
	"path/filepath"
	"testing"

	"zigscope/internal/source"
	"zigscope/internal/symbols"
	"zigscope/internal/trace"
)

func TestParsePosition(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("pos.zig", []byte("const a = 1;\nconst bb = a;\n")))

	cases := []struct {
		pos  string
		want uint32
	}{
		{"1:1", 0},
		{"2:7", 19},
		{"2:100", 26},
		{"19", 19},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := parsePosition(f, tc.pos)
		if err != nil {
			t.Fatalf("parsePosition(%q) error: %v", tc.pos, err)
		}
		if got != tc.want {
			t.Fatalf("parsePosition(%q) = %d, want %d", tc.pos, got, tc.want)
		}
	}

	for _, bad := range []string{"0:1", "1:0", "x", "1:y", "999", "9:1"} {
		if _, err := parsePosition(f, bad); err == nil {
			t.Fatalf("parsePosition(%q) accepted", bad)
		}
	}
}

func TestSymbolAtAfterIdentifier(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sym.zig")
	if err := os.WriteFile(path, []byte("const abc = 1;\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, _, err := openDocument(path, 10)
	if err != nil {
		t.Fatalf("openDocument: %v", err)
	}
	for _, pos := range []string{"1:7", "1:9", "1:10"} {
		sym, err := symbolAt(doc, pos)
		if err != nil {
			t.Fatalf("symbolAt(%q): %v", pos, err)
		}
		if name := doc.Tree().Name(sym); name != "abc" {
			t.Fatalf("symbolAt(%q) = %q", pos, name)
		}
	}
	if _, err := symbolAt(doc, "1:2"); err == nil {
		t.Fatalf("keyword position resolved to a symbol")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("invalid mode accepted")
	}
	if shouldUseTUI(uiModeOff, false) || !shouldUseTUI(uiModeOn, true) {
		t.Fatalf("explicit modes ignored")
	}
}

func TestTraceFlagsConfig(t *testing.T) {
	cfg, err := traceFlags{output: "run.ndjson", level: "off", mode: "both", format: "auto"}.config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level != trace.LevelPhase || cfg.Mode != trace.ModeBoth || cfg.OutputPath != "run.ndjson" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	cfg, err = traceFlags{level: "debug", mode: "ring", format: "text"}.config()
	if err != nil || cfg.OutputPath != "-" || cfg.Format != trace.FormatText {
		t.Fatalf("config = %+v, %v", cfg, err)
	}

	if _, err := (traceFlags{level: "debug", mode: "disk"}).config(); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

func TestParseRoleFilter(t *testing.T) {
	only, err := parseRoleFilter([]string{"Expression", " VarDeclaration"})
	if err != nil {
		t.Fatalf("parseRoleFilter: %v", err)
	}
	if len(only) != 2 || only[0] != symbols.RoleExpression || only[1] != symbols.RoleVarDeclaration {
		t.Fatalf("roles = %v", only)
	}
	if _, err := parseRoleFilter([]string{"expression"}); err == nil {
		t.Fatalf("role names are case sensitive")
	}
	if only, err := parseRoleFilter(nil); err != nil || only != nil {
		t.Fatalf("empty filter = %v, %v", only, err)
	}
}
