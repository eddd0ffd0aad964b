package trace

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestStartNestsSpans(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx1, outer := Start(ctx, ScopePass, "parse")
	if CurrentSpan(ctx1) != outer.ID() {
		t.Fatalf("context does not carry the outer span")
	}
	_, inner := Start(ctx1, ScopeQuery, "resolve")
	inner.End("x")
	outer.WithExtra("nodes", "12").End("main.zig")

	evs := ring.Snapshot()
	if len(evs) != 4 {
		t.Fatalf("expected 4 events, got %d", len(evs))
	}
	if evs[1].ParentID != outer.ID() || evs[1].Name != "resolve" {
		t.Fatalf("inner begin = %+v", evs[1])
	}
	if evs[3].Kind != KindSpanEnd || evs[3].Extra["nodes"] != "12" {
		t.Fatalf("outer end = %+v", evs[3])
	}
	if CurrentSpan(ctx) != 0 {
		t.Fatalf("parent context must stay without span")
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeQuery, Seq: uint64(i)})
	}
	if ring.Len() != 3 {
		t.Fatalf("len = %d", ring.Len())
	}
	evs := ring.Snapshot()
	for i, ev := range evs {
		if ev.Seq != uint64(i+2) {
			t.Fatalf("event %d has seq %d, want %d", i, ev.Seq, i+2)
		}
	}
}

func TestRingAtErrorLevelKeepsEverything(t *testing.T) {
	ring := NewRingTracer(4, LevelError)
	Begin(ring, ScopeQuery, "resolve", 0).End("")
	if ring.Len() != 2 {
		t.Fatalf("error level ring must keep query spans, got %d events", ring.Len())
	}
}

func TestStreamFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatText)
	Begin(st, ScopeQuery, "resolve", 0).End("")
	Begin(st, ScopePass, "parse", 0).End("a.zig")
	if err := st.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "resolve") {
		t.Fatalf("query scope leaked at phase level:\n%s", out)
	}
	if !strings.Contains(out, "[pass] → parse") || !strings.Contains(out, "← parse (a.zig)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestNDJSON(t *testing.T) {
	ev := &Event{Time: time.Unix(0, 0).UTC(), Seq: 7, Kind: KindPoint, Scope: ScopeFile, Name: "cache", Detail: "hit"}
	got := string(FormatEvent(ev, FormatNDJSON))
	for _, want := range []string{`"seq":7`, `"kind":"point"`, `"scope":"file"`, `"detail":"hit"`} {
		if !strings.Contains(got, want) {
			t.Errorf("%s missing in %s", want, got)
		}
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("event must end with newline")
	}
}

func TestHeartbeatStop(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	hb := StartHeartbeat(ring, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	hb.Stop()
	hb.Stop()
	n := ring.Len()
	if n == 0 {
		t.Fatalf("expected heartbeats")
	}
	time.Sleep(5 * time.Millisecond)
	if ring.Len() != n {
		t.Fatalf("heartbeat kept running after Stop")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("nop tracer must not get a heartbeat")
	}
}

func TestHeartbeatCountsEventsSinceLastBeat(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	hb := StartHeartbeat(ring, 30*time.Millisecond)
	for range 5 {
		NextSeq()
	}
	time.Sleep(50 * time.Millisecond)
	hb.Stop()

	events := ring.Snapshot()
	if len(events) == 0 || events[0].Kind != KindHeartbeat {
		t.Fatalf("expected a heartbeat, got %v", events)
	}
	var beat, since int
	if _, err := fmt.Sscanf(events[0].Detail, "#%d +%d", &beat, &since); err != nil {
		t.Fatalf("detail %q: %v", events[0].Detail, err)
	}
	if beat != 1 || since < 5 {
		t.Fatalf("first beat = %q, want #1 with at least 5 events", events[0].Detail)
	}
}

func TestLevelsAndModes(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must yield Nop")
	}
}

func TestNewBothTeesToStreamAndRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, OutputPath: "out.ndjson"})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "parse", 0).End("a.zig")
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}
	ring := Ring(tr)
	if ring == nil || ring.Len() != 2 {
		t.Fatalf("ring missing or wrong size: %v", ring)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 2 || !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("stream output:\n%s", buf.String())
	}
	if _, err := New(Config{Level: LevelPhase, Mode: 9}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
