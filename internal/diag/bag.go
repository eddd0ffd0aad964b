package diag

import (
	"slices"
)

// Bag collects diagnostics up to a limit. Diagnostics over the limit are
// counted but not stored.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

func NewBag(limit int) *Bag {
	limit = max(limit, 0)
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), max: limit}
}

// Add возвращает false, если лимит исчерпан.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap is the limit the bag was created with (or grown to by Merge).
func (b *Bag) Cap() int { return b.max }

// Dropped counts diagnostics rejected by the limit.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) Len() int { return len(b.items) }

// Items возвращает внутренний срез: не модифицировать.
func (b *Bag) Items() []Diagnostic { return b.items }

// Count returns the number of diagnostics at least as serious as sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool   { return b.Count(SevError) > 0 }
func (b *Bag) HasWarnings() bool { return b.Count(SevWarning) > 0 }

// Merge appends other, growing the limit so nothing is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.max = max(b.max, len(b.items)+len(other.items))
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Filter returns a new bag with the diagnostics keep accepts.
func (b *Bag) Filter(keep func(Diagnostic) bool) *Bag {
	out := &Bag{max: b.max, dropped: b.dropped}
	for _, d := range b.items {
		if keep(d) {
			out.items = append(out.items, d)
		}
	}
	return out
}

// Map returns a new bag with fn applied to every diagnostic.
func (b *Bag) Map(fn func(Diagnostic) Diagnostic) *Bag {
	out := &Bag{items: make([]Diagnostic, len(b.items)), max: b.max, dropped: b.dropped}
	for i, d := range b.items {
		out.items[i] = fn(d)
	}
	return out
}

// Sort: file, start, end, severity (серьёзные первыми), code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, compareDiagnostics)
}

func compareDiagnostics(a, c Diagnostic) int {
	switch {
	case a.Primary.File != c.Primary.File:
		return cmpUint(uint32(a.Primary.File), uint32(c.Primary.File))
	case a.Primary.Start != c.Primary.Start:
		return cmpUint(a.Primary.Start, c.Primary.Start)
	case a.Primary.End != c.Primary.End:
		return cmpUint(a.Primary.End, c.Primary.End)
	case a.Severity != c.Severity:
		return int(c.Severity) - int(a.Severity)
	}
	return int(a.Code) - int(c.Code)
}

func cmpUint(a, b uint32) int {
	if a < b {
		return -1
	}
	return 1
}

// Dedup drops repeated diagnostics with the same code, severity, primary
// span and message, keeping the first.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := keyOf(d.Code, d.Severity, d.Primary, d.Message)
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
