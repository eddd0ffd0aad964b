package pipeline

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestDisplayFiles(t *testing.T) {
	got := DisplayFiles([]string{"/w/src/b.zig", "/w/src/a.zig", "/w/src/./a.zig", "/other/c.zig", ""}, "/w")
	want := []string{"/other/c.zig", "src/a.zig", "src/b.zig"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DisplayFiles = %v, want %v", got, want)
	}
}

func TestRecorderTimings(t *testing.T) {
	rec := &Recorder{}
	sink := Tee(nil, rec)
	EmitQueued(sink, []string{"a.zig", "b.zig"})
	Emit(sink, "a.zig", StageParse, StatusDone, nil, 2*time.Millisecond)
	Emit(sink, "b.zig", StageParse, StatusDone, nil, 3*time.Millisecond)
	Emit(sink, "b.zig", StageResolve, StatusError, errors.New("boom"), time.Millisecond)

	if n := len(rec.Events()); n != 5 {
		t.Fatalf("events = %d, want 5", n)
	}
	tm := rec.Timings()
	if tm.Duration(StageParse) != 5*time.Millisecond {
		t.Fatalf("parse = %s", tm.Duration(StageParse))
	}
	if tm.Has(StageResolve) {
		t.Fatalf("failed stages are not timed")
	}
	if tm.Sum() != 5*time.Millisecond {
		t.Fatalf("sum = %s", tm.Sum())
	}
}

func TestTerminal(t *testing.T) {
	cases := []struct {
		evt  Event
		want bool
	}{
		{Event{Stage: StageParse, Status: StatusDone}, false},
		{Event{Stage: StageReport, Status: StatusDone}, true},
		{Event{Stage: StageLex, Status: StatusError}, true},
		{Event{Stage: StageLex, Status: StatusCached}, true},
		{Event{Stage: StageLex, Status: StatusQueued}, false},
	}
	for _, tc := range cases {
		if got := tc.evt.Terminal(); got != tc.want {
			t.Errorf("%+v Terminal = %v", tc.evt, got)
		}
	}
}
