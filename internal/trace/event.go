package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end
	KindPoint                     // instant event
	KindHeartbeat                 // periodic liveness signal
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope indicates the granularity level of the event.
// Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver: CLI command and whole-directory runs.
	ScopeDriver Scope = iota + 1
	// ScopePass: lex, parse, resolve over one file.
	ScopePass
	// ScopeFile: per-file bookkeeping (cache hits, index writes).
	ScopeFile
	// ScopeQuery: single resolver queries, only at debug level.
	ScopeQuery
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64 // goroutine that opened the span
	Name     string // "parse", "resolve", "file:src/main.zig"
	Detail   string
	Extra    map[string]string
}
