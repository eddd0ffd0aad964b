package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat emits a liveness event every interval. Each beat carries the
// number of events seen since the previous one: beats with "+0" while a
// span is open mean the analyzer is stuck inside it.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
	exited   chan struct{}
}

// StartHeartbeat returns nil when tracing is off or interval <= 0.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer close(h.exited)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	last := seq.Load()
	beat := 0
	for {
		select {
		case <-h.done:
			return
		case now := <-ticker.C:
			beat++
			cur := seq.Load()
			h.tracer.Emit(&Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d +%d", beat, cur-last),
			})
			last = cur + 1
		}
	}
}

// Stop is idempotent and returns after the goroutine has exited.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.done) })
	<-h.exited
}
