package pipeline

import (
	"sync"
	"time"
)

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function to ProgressSink.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

// Recorder keeps every event and sums stage durations. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	events  []Event
	timings Timings
}

func (r *Recorder) OnEvent(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	if evt.Status == StatusDone && evt.Elapsed > 0 {
		r.timings.Add(evt.Stage, evt.Elapsed)
	}
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *Recorder) Timings() Timings {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := Timings{}
	for stage, dur := range r.timings.stages {
		out.Add(stage, dur)
	}
	return out
}

// Tee sends every event to each non-nil sink.
func Tee(sinks ...ProgressSink) ProgressSink {
	var live []ProgressSink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	if len(live) == 1 {
		return live[0]
	}
	return FuncSink(func(evt Event) {
		for _, s := range live {
			s.OnEvent(evt)
		}
	})
}

// Emit sends an event if sink is set.
func Emit(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// EmitQueued announces files before any work starts.
func EmitQueued(sink ProgressSink, files []string) {
	for _, f := range files {
		Emit(sink, f, StageLex, StatusQueued, nil, 0)
	}
}
