package project

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadFindsManifestUpwards(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[analysis]
extensions = [".zig", ".zon"]
max_diagnostics = 7
jobs = 2
report_unresolved = false

[zig]
exe = "bin/zig"
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	a := m.Config.Analysis
	if len(a.Extensions) != 2 || a.MaxDiagnostics != 7 || a.Jobs != 2 || a.ReportUnresolved {
		t.Fatalf("analysis = %+v", a)
	}
	if !m.Config.HasExtension("x/build.zon") || m.Config.HasExtension("a.txt") {
		t.Fatalf("HasExtension mismatch")
	}
	if _, err := m.ZigExe(); err == nil {
		t.Fatalf("missing exe must not validate")
	}
}

func TestLoadDefaultsWithoutManifest(t *testing.T) {
	m, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok && m.Path == "" {
		t.Fatalf("found manifest without path")
	}
	if !ok && (m.Config.Analysis.MaxDiagnostics != 100 || !m.Config.HasExtension("a.zig")) {
		t.Fatalf("defaults = %+v", m.Config)
	}
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[analysis]\njobs = 3\n")
	m, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Config.Analysis.Jobs != 3 || m.Config.Analysis.MaxDiagnostics != 100 || !m.Config.Analysis.ReportUnresolved {
		t.Fatalf("config = %+v", m.Config.Analysis)
	}
}

func TestLoadFileErrors(t *testing.T) {
	cases := []struct {
		body string
		want error
		text string
	}{
		{body: "[analysis]\nextensions = [\"zig\"]\n", want: ErrBadExtension},
		{body: "[analysis]\njobs = -1\n", want: ErrNegativeLimit},
		{body: "[analysis]\nbogus = 1\n", text: "unknown keys"},
		{body: "[analysis\n", text: "failed to parse TOML"},
	}
	for _, tc := range cases {
		path := writeManifest(t, t.TempDir(), tc.body)
		_, err := LoadFile(path)
		if err == nil {
			t.Fatalf("%q: expected error", tc.body)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Errorf("%q: err = %v, want %v", tc.body, err, tc.want)
		}
		if tc.text != "" && !strings.Contains(err.Error(), tc.text) {
			t.Errorf("%q: err = %v, want %q", tc.body, err, tc.text)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	path := writeManifest(t, t.TempDir(), buf.String())
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("reload: %v\n%s", err, buf.String())
	}
	if m.Config.Analysis.MaxDiagnostics != 100 {
		t.Fatalf("reloaded = %+v", m.Config)
	}
}

func TestLocateBuildRoot(t *testing.T) {
	root := t.TempDir()
	pkg := filepath.Join(root, "pkg")
	src := filepath.Join(pkg, "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{root, pkg} {
		if err := os.WriteFile(filepath.Join(dir, BuildFileName), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	writeManifest(t, root, "")

	loc, err := Locate(src)
	if err != nil {
		t.Fatal(err)
	}
	if loc.BuildRoot != pkg {
		t.Fatalf("build root = %q, want nearest %q", loc.BuildRoot, pkg)
	}
	if loc.Manifest != filepath.Join(root, ManifestName) {
		t.Fatalf("manifest = %q", loc.Manifest)
	}

	m, ok, err := Load(src)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.BaseDir() != root || m.BuildRoot != pkg {
		t.Fatalf("base=%q build=%q", m.BaseDir(), m.BuildRoot)
	}
}

func TestDigestStrings(t *testing.T) {
	var d Digest
	d[0] = 0xab
	if d.Short() != "ab0000000000" || len(d.String()) != 64 {
		t.Fatalf("short=%q full=%q", d.Short(), d.String())
	}
	if Combine(d, []byte("a")) == Combine(d, []byte("b")) {
		t.Fatalf("parts must change the digest")
	}
}
