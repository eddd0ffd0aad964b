package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.zig", []byte("const a = 1;"), 0)
	id2 := fs.Add("main.zig", []byte("const b = 2;"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("main.zig")
	if !ok || latest != id2 {
		t.Fatalf("expected latest id %d, got %d (ok=%v)", id2, latest, ok)
	}
	if got := string(fs.Get(id1).Content); got != "const a = 1;" {
		t.Errorf("old version lost: %q", got)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.zig", []byte("ab\ncd\n\nx"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Errorf("offset %d: want %+v, got %+v", tc.off, tc.want, start)
		}
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.zig", []byte("fn f() void {\n    return;\n}\n")))

	for off := uint32(0); off <= f.Len(); off++ {
		pos := f.Position(off)
		back, err := f.Offset(pos)
		if err != nil {
			t.Fatalf("offset %d: %v", off, err)
		}
		if back != off {
			t.Fatalf("offset %d -> %+v -> %d", off, pos, back)
		}
	}
	if _, err := f.Offset(LineCol{Line: 10, Col: 1}); err == nil {
		t.Fatal("expected error for line past end")
	}
}

func TestSplice(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.zig", []byte("const x = 1;\nconst y = x;\n")))
	before := f.Hash

	if err := f.Splice(6, 7, "value"); err != nil {
		t.Fatalf("splice: %v", err)
	}
	if got := string(f.Content); got != "const value = 1;\nconst y = x;\n" {
		t.Fatalf("unexpected content %q", got)
	}
	if f.Hash == before {
		t.Error("hash not refreshed")
	}
	if f.LineIdx[0] != 16 {
		t.Errorf("line index not rebuilt: %v", f.LineIdx)
	}
	if err := f.Splice(5, 100, ""); err == nil {
		t.Error("expected range error")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.zig", []byte("one\ntwo\nthree")))
	for i, want := range []string{"one", "two", "three"} {
		if got := f.GetLine(uint32(i + 1)); got != want {
			t.Errorf("line %d: want %q, got %q", i+1, want, got)
		}
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("line 0 should be empty, got %q", got)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.zig")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFconst a = 1;\r\nconst b = 2;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "const a = 1;\nconst b = 2;\n" {
		t.Fatalf("not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags not set: %b", f.Flags)
	}
}

func TestSpanShiftAndContains(t *testing.T) {
	s := Span{Start: 10, End: 20}
	if got := s.Shift(-4); got.Start != 6 || got.End != 16 {
		t.Errorf("shift left: %v", got)
	}
	if got := s.Shift(-30); got.Start != 0 || got.End != 0 {
		t.Errorf("shift clamps at zero: %v", got)
	}
	if !s.Contains(10) || s.Contains(20) {
		t.Error("contains must be half-open")
	}
	if !(Span{Start: 5, End: 5}).Contains(5) {
		t.Error("empty span contains its start")
	}
	if got := s.Cover(Span{Start: 2, End: 12}); got.Start != 2 || got.End != 20 {
		t.Errorf("cover: %v", got)
	}
}
