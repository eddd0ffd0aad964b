package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// PhaseReport — фаза в виде, пригодном для JSON и msgpack.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

type phase struct {
	name string
	dur  time.Duration
	note string
	open bool
}

// Timer records how long each named phase of one file's analysis took.
// Phases are reported in the order they were started.
type Timer struct {
	mu     sync.Mutex
	phases []phase
}

func NewTimer() *Timer { return &Timer{} }

// Start opens a phase. The returned stop function closes it with a note and
// returns the elapsed time; only its first call counts.
func (t *Timer) Start(name string) (stop func(note string) time.Duration) {
	began := time.Now()
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, phase{name: name, open: true})
	t.mu.Unlock()

	return func(note string) time.Duration {
		d := time.Since(began)
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		if !p.open {
			return p.dur
		}
		p.dur, p.note, p.open = d, note, false
		return d
	}
}

// Measure times fn, whose result becomes the phase note.
func (t *Timer) Measure(name string, fn func() string) time.Duration {
	stop := t.Start(name)
	return stop(fn())
}

// Report snapshots the closed phases. Open ones count as zero.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: ms(p.dur), Note: p.note})
	}
	r.TotalMS = ms(total)
	return r
}

// String renders the report as an aligned table.
func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, v float64, note string) {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", name, v)
		if note != "" {
			sb.WriteString("  // " + note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}

func ms(d time.Duration) float64 { return d.Seconds() * 1e3 }
