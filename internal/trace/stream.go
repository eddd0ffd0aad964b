package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes every event as it happens. Output to a file is
// buffered and flushed on Flush/Close; stderr and stdout are written through.
type StreamTracer struct {
	mu     sync.Mutex
	out    io.Writer
	buf    *bufio.Writer // nil for std streams
	level  Level
	format Format
	failed int // writes that returned an error
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{out: w, level: level, format: format}
	if !isStdStream(w) {
		t.buf = bufio.NewWriter(w)
	}
	return t
}

// Emit never fails: a broken trace output must not stop the analysis.
func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	var w io.Writer = t.out
	if t.buf != nil {
		w = t.buf
	}
	if _, err := w.Write(data); err != nil {
		t.failed++
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushLocked()
}

func (t *StreamTracer) flushLocked() error {
	if t.buf != nil {
		if err := t.buf.Flush(); err != nil {
			return err
		}
	}
	if f, ok := t.out.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the output unless it is stderr/stdout.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.flushLocked(); err != nil {
		return err
	}
	if c, ok := t.out.(io.Closer); ok && !isStdStream(t.out) {
		return c.Close()
	}
	return nil
}

// Failed returns the number of events lost to write errors.
func (t *StreamTracer) Failed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
