package trace

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var seq, spanIDs atomic.Uint64

func NextSeq() uint64    { return seq.Add(1) }
func NextSpanID() uint64 { return spanIDs.Add(1) }

// goroutineID reads N from the "goroutine N [...]" stack header, 0 if unparsable.
func goroutineID() uint64 {
	var buf [64]byte
	hdr := bytes.TrimPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	num, _, _ := bytes.Cut(hdr, []byte{' '})
	gid, err := strconv.ParseUint(string(num), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is one traced operation. The zero-id span from a disabled tracer is
// inert; all methods are safe on it and on nil.
type Span struct {
	tracer  Tracer
	proto   Event
	started time.Time
	extra   map[string]string
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// admits: LevelError keeps spans of every scope for the ring dump.
func admits(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && (t.Level() == LevelError || t.Level().ShouldEmit(scope))
}

// Begin emits SpanBegin under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !admits(t, scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:  t,
		started: time.Now(),
		proto: Event{
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			GID:      goroutineID(),
			Name:     name,
		},
	}
	t.Emit(s.next(KindSpanBegin, s.started, ""))
	return s
}

// Start is Begin with the parent taken from ctx; the returned context makes
// the new span current.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx))
	if s.ID() == 0 {
		return ctx, s
	}
	return withSpan(ctx, s.ID()), s
}

// End emits SpanEnd carrying detail and any extras, and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	ev := s.next(KindSpanEnd, now, detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = map[string]string{}
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.proto.SpanID
}

func (s *Span) next(kind Kind, at time.Time, detail string) *Event {
	ev := s.proto
	ev.Time, ev.Seq, ev.Kind, ev.Detail = at, NextSeq(), kind, detail
	return &ev
}

// Point emits an instant event under the current span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: CurrentSpan(ctx),
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
