package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last len(buf) events, for a dump after a panic.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	total uint64 // events ever stored
	level Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// Emit stores ev. At LevelError every scope is kept, so a dump shows the
// queries that led to a failure even though nothing is streamed.
func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && t.level != LevelError && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	t.buf[t.total%uint64(len(t.buf))] = *ev
	t.total++
	t.mu.Unlock()
}

// Len returns the number of events currently held.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(min(t.total, uint64(len(t.buf)))) // #nosec G115 -- bounded by len(buf)
}

// Snapshot returns the held events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.buf))
	if t.total <= size {
		return append([]Event(nil), t.buf[:t.total]...)
	}
	head := t.total % size
	out := make([]Event, 0, size)
	out = append(out, t.buf[head:]...)
	return append(out, t.buf[:head]...)
}

func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
