package pipeline

import "time"

// Stage describes a phase of file analysis.
type Stage string

const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StageResolve Stage = "resolve"
	// StageReport covers rendering diagnostics and writing caches.
	StageReport Stage = "report"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageLex, StageParse, StageResolve, StageReport}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	// StatusCached marks a file answered from the analysis cache.
	StatusCached Status = "cached"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Terminal reports whether no further events are expected for the file.
func (e Event) Terminal() bool {
	switch e.Status {
	case StatusError, StatusCached:
		return true
	case StatusDone:
		return e.Stage == StageReport
	default:
		return false
	}
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings sums elapsed time per stage. The zero value is ready to use.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = map[Stage]time.Duration{}
	}
	t.stages[stage] += dur
}

// Has is true once stage has been added, even with zero time.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration { return t.stages[stage] }

// Sum adds up the given stages, or all of them.
func (t Timings) Sum(stages ...Stage) (total time.Duration) {
	if len(stages) == 0 {
		stages = Stages
	}
	for _, s := range stages {
		total += t.stages[s]
	}
	return total
}
