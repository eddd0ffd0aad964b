package fix

import (
	"testing"

	"zigscope/internal/source"
)

func TestInsertTextCollapsesSpan(t *testing.T) {
	f := InsertText("insert", source.Span{Start: 3, End: 9}, ";")
	if len(f.Edits) != 1 {
		t.Fatalf("edits = %d", len(f.Edits))
	}
	if e := f.Edits[0]; e.Span.Start != 3 || e.Span.End != 3 || e.NewText != ";" {
		t.Fatalf("edit = %+v", e)
	}
}

func TestSpansConflict(t *testing.T) {
	sp := func(a, b uint32) source.Span { return source.Span{Start: a, End: b} }
	cases := []struct {
		a, b source.Span
		want bool
	}{
		{sp(0, 3), sp(3, 5), false},
		{sp(0, 4), sp(3, 5), true},
		{sp(2, 2), sp(2, 2), true},
		{sp(2, 2), sp(0, 2), false},
		{sp(2, 2), sp(1, 3), true},
		{sp(4, 4), sp(2, 2), false},
	}
	for _, c := range cases {
		if got := spansConflict(c.a, c.b); got != c.want {
			t.Errorf("spansConflict(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
		if got := spansConflict(c.b, c.a); got != c.want {
			t.Errorf("spansConflict(%v, %v) = %v, want %v", c.b, c.a, got, c.want)
		}
	}
}
