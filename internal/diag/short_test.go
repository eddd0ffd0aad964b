package diag

import (
	"testing"

	"zigscope/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("/workspace/src/main.zig", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     ResUnresolved,
			Message:  "unresolved reference 'b'",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
	}

	expected := "error SYN2001 src/main.zig:1:1 first line second\n" +
		"note SYN2001 src/main.zig:2:1 note line\n" +
		"warning RES3001 src/main.zig:2:1 unresolved reference 'b'"

	if got := FormatShort(diags, fs, "/workspace", true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagSortDedupAndLimit(t *testing.T) {
	bag := NewBag(3)
	r := BagReporter{Bag: bag}
	ReportError(r, SynExpectSemicolon, source.Span{Start: 9, End: 10}, "expected ';'").Emit()
	ReportError(r, SynExpectSemicolon, source.Span{Start: 9, End: 10}, "expected ';'").Emit()
	ReportWarning(r, ResUnresolved, source.Span{Start: 1, End: 2}, "unresolved").Emit()
	if bag.Add(NewError(SynStrayToken, source.Span{}, "over the limit")) {
		t.Fatal("bag must respect its limit")
	}

	bag.Dedup()
	bag.Sort()
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].Code != ResUnresolved || items[1].Code != SynExpectSemicolon {
		t.Fatalf("unexpected order: %v, %v", items[0].Code, items[1].Code)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("severity queries are wrong")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		r.Report(LexUnknownChar, SevError, source.Span{Start: 4, End: 5}, "unknown character '$'", nil, nil)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected a single diagnostic, got %d", bag.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexBadNumber:       "LEX1004",
		SynExpectSemicolon: "SYN2002",
		ResUnresolved:      "RES3001",
		PrjManifestError:   "PRJ5001",
	}
	for c, want := range cases {
		if c.ID() != want {
			t.Errorf("%d: want %s, got %s", c, want, c.ID())
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Error("unknown codes should fall back")
	}
}
