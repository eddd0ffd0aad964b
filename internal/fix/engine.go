package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"zigscope/internal/diag"
	"zigscope/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first fix in document order.
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
)

type ApplyOptions struct {
	Mode ApplyMode
	// Write stores the changed files on disk. Virtual files are never written.
	Write bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title   string
	Code    diag.Code
	Message string
	File    source.FileID
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// FileChange is the new content of one file.
type FileChange struct {
	File      source.FileID
	Path      string
	Content   []byte
	EditCount int
}

type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Changes []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply selects fixes from diagnostics and computes the edited files. Fixes
// whose edits overlap an already selected fix are skipped.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(fs, diagnostics, result)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)
	if opts.Mode == ApplyModeOnce {
		candidates = candidates[:1]
	}

	accepted := make(map[source.FileID][]diag.FixEdit)
	for _, cand := range candidates {
		if reason := conflict(accepted, cand.fix.Edits); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{Title: cand.fix.Title, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		result.Applied = append(result.Applied, AppliedFix{
			Title:   cand.fix.Title,
			Code:    cand.diag.Code,
			Message: cand.diag.Message,
			File:    cand.fix.Edits[0].Span.File,
		})
	}

	files := make([]source.FileID, 0, len(accepted))
	for id := range accepted {
		files = append(files, id)
	}
	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })
	for _, id := range files {
		file := fs.Get(id)
		change := FileChange{
			File:      id,
			Path:      file.Path,
			Content:   applyEdits(file.Content, accepted[id]),
			EditCount: len(accepted[id]),
		}
		if opts.Write && file.Flags&source.FileVirtual == 0 {
			if err := writePreservingMode(file.Path, change.Content); err != nil {
				return result, err
			}
		}
		result.Changes = append(result.Changes, change)
	}
	return result, nil
}

// gatherCandidates keeps fixes whose edits all point into fs.
func gatherCandidates(fs *source.FileSet, diagnostics []diag.Diagnostic, result *ApplyResult) []candidate {
	var cands []candidate
	order := 0
	for _, d := range diagnostics {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				result.Skipped = append(result.Skipped, SkippedFix{Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if !editsInRange(fs, f.Edits) {
				result.Skipped = append(result.Skipped, SkippedFix{Title: f.Title, Reason: "edit span out of range"})
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

func editsInRange(fs *source.FileSet, edits []diag.FixEdit) bool {
	for _, e := range edits {
		if int(e.Span.File) >= fs.Len() || e.Span.Start > e.Span.End || e.Span.End > fs.Get(e.Span.File).Len() {
			return false
		}
	}
	return true
}

// sortCandidates orders by file, primary span and insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func conflict(accepted map[source.FileID][]diag.FixEdit, edits []diag.FixEdit) string {
	for _, e := range edits {
		for _, prev := range accepted[e.Span.File] {
			if spansConflict(prev.Span, e.Span) {
				return "conflicts with a previously selected fix"
			}
		}
	}
	return ""
}

// spansConflict reports whether two edit spans overlap as half-open
// intervals. Two insertions at the same offset conflict as well, since their
// order would be ambiguous.
func spansConflict(a, b source.Span) bool {
	if a.Empty() && b.Empty() {
		return a.Start == b.Start
	}
	if a.Empty() {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Empty() {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// applyEdits applies non-overlapping edits back to front.
func applyEdits(content []byte, edits []diag.FixEdit) []byte {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Span.Start > sorted[j].Span.Start })
	out := append([]byte(nil), content...)
	for _, e := range sorted {
		tail := append([]byte(e.NewText), out[e.Span.End:]...)
		out = append(out[:e.Span.Start], tail...)
	}
	return out
}

func writePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
