package diag

import (
	"sync"

	"zigscope/internal/source"
)

type dedupKey struct {
	code    Code
	sev     Severity
	primary source.Span
	msg     string
}

func keyOf(code Code, sev Severity, primary source.Span, msg string) dedupKey {
	return dedupKey{code: code, sev: sev, primary: primary, msg: msg}
}

// DedupReporter forwards each distinct diagnostic once. The resolver can
// reach the same reference through several queries, so the driver puts one
// in front of the reference check.
type DedupReporter struct {
	next Reporter

	mu         sync.Mutex
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	k := keyOf(code, sev, primary, msg)
	r.mu.Lock()
	_, dup := r.seen[k]
	if dup {
		r.suppressed++
	} else {
		r.seen[k] = struct{}{}
	}
	r.mu.Unlock()
	if !dup && r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// Suppressed returns how many duplicates were dropped.
func (r *DedupReporter) Suppressed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suppressed
}
