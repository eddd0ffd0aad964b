package ui

import (
	"fmt"
	"strings"
	"testing"

	"zigscope/internal/pipeline"
)

func TestProgressModelCountsTerminalEvents(t *testing.T) {
	events := make(chan pipeline.Event)
	m := NewProgressModel("check", []string{"a.zig", "b.zig"}, events).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.zig", Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	if m.items[0].status != "parsing" || m.finished != 0 {
		t.Fatalf("item = %+v", m.items[0])
	}
	m.applyEvent(pipeline.Event{File: "a.zig", Stage: pipeline.StageReport, Status: pipeline.StatusDone})
	m.applyEvent(pipeline.Event{File: "b.zig", Stage: pipeline.StageParse, Status: pipeline.StatusCached})
	// late events for a finished file are ignored
	m.applyEvent(pipeline.Event{File: "b.zig", Stage: pipeline.StageResolve, Status: pipeline.StatusWorking})
	m.applyEvent(pipeline.Event{File: "unknown.zig", Stage: pipeline.StageParse, Status: pipeline.StatusWorking})

	if m.finished != 2 || m.cached != 1 {
		t.Fatalf("finished = %d, cached = %d", m.finished, m.cached)
	}
	if m.items[1].status != "cached" {
		t.Fatalf("b status = %q", m.items[1].status)
	}
	if m.fraction() != 1 {
		t.Fatalf("fraction = %v", m.fraction())
	}
	view := m.View()
	for _, want := range []string{"[2/2]", "a.zig", "0 failed, 1 from cache"} {
		if !strings.Contains(view, want) {
			t.Fatalf("%q missing in view:\n%s", want, view)
		}
	}
}

func TestVisibleRowsPrefersActiveFiles(t *testing.T) {
	files := make([]string, maxRows+5)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.zig", i)
	}
	m := NewProgressModel("check", files, make(chan pipeline.Event)).(*progressModel)
	last := files[len(files)-1]
	m.applyEvent(pipeline.Event{File: last, Stage: pipeline.StageResolve, Status: pipeline.StatusWorking})
	m.applyEvent(pipeline.Event{File: files[3], Stage: pipeline.StageReport, Status: pipeline.StatusDone})

	rows, hidden := m.visibleRows()
	if len(rows) != maxRows || hidden != 5 {
		t.Fatalf("rows = %d, hidden = %d", len(rows), hidden)
	}
	if rows[0].path != last || rows[1].path != files[3] {
		t.Fatalf("order: %s, %s", rows[0].path, rows[1].path)
	}
	if !strings.Contains(m.View(), "… 5 more") {
		t.Fatalf("hidden count missing")
	}
}

func TestTruncatePath(t *testing.T) {
	if got := truncatePath("internal/symbols/resolver.zig", 12); got != "…esolver.zig" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncatePath("short", 12); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}
