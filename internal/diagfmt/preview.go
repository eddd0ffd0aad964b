package diagfmt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"zigscope/internal/diag"
	"zigscope/internal/source"
)

// editPreview holds the whole lines an edit touches, before and after it.
type editPreview struct {
	before []string
	after  []string
}

func fileOf(fs *source.FileSet, sp source.Span) (*source.File, error) {
	if fs == nil {
		return nil, errors.New("no file set")
	}
	if int(sp.File) >= fs.Len() {
		return nil, fmt.Errorf("file %d not in set", sp.File)
	}
	return fs.Get(sp.File), nil
}

func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (editPreview, error) {
	f, err := fileOf(fs, edit.Span)
	if err != nil {
		return editPreview{}, err
	}
	sp := edit.Span
	if sp.Start > sp.End || sp.End > f.Len() {
		return editPreview{}, fmt.Errorf("edit %d..%d out of range (len %d)", sp.Start, sp.End, f.Len())
	}
	lo, hi, err := wholeLines(f.Content, sp.Start, sp.End)
	if err != nil {
		return editPreview{}, err
	}

	var next bytes.Buffer
	next.Grow(int(hi-lo) + len(edit.NewText))
	next.Write(f.Content[lo:sp.Start])
	next.WriteString(edit.NewText)
	next.Write(f.Content[sp.End:hi])

	return editPreview{
		before: previewLines(f.Content[lo:hi]),
		after:  previewLines(next.Bytes()),
	}, nil
}

// wholeLines widens [start, end) to line boundaries; hi keeps the last '\n'.
func wholeLines(content []byte, start, end uint32) (lo, hi uint32, err error) {
	if i := bytes.LastIndexByte(content[:start], '\n'); i >= 0 {
		if lo, err = safecast.Conv[uint32](i + 1); err != nil {
			return 0, 0, err
		}
	}
	hi, err = safecast.Conv[uint32](len(content))
	if err != nil {
		return 0, 0, err
	}
	if i := bytes.IndexByte(content[end:], '\n'); i >= 0 {
		n, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			return 0, 0, err
		}
		hi = end + n
	}
	return lo, hi, nil
}

func previewLines(block []byte) []string {
	s := strings.TrimSuffix(string(block), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// spanText returns the source covered by sp, or "" when sp is out of range.
func spanText(fs *source.FileSet, sp source.Span) string {
	f, err := fileOf(fs, sp)
	if err != nil || sp.Start > sp.End || sp.End > f.Len() {
		return ""
	}
	return string(f.Content[sp.Start:sp.End])
}
