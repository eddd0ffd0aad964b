package source

import "fmt"

type (
	FileID    uint32
	FileFlags uint8
)

const (
	FileVirtual        FileFlags = 1 << iota // buffer, stdin or test input; never written back
	FileHadBOM                               // a UTF-8 BOM was stripped on load
	FileNormalizedCRLF                       // CRLF was folded to LF on load
)

// File is one loaded Zig source. LineIdx holds the offset of every '\n';
// Hash is the SHA-256 of Content.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is 1-based; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Span is the byte range [Start, End) of one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool    { return s.Start == s.End }
func (s Span) Len() uint32    { return s.End - s.Start }
func (s Span) String() string { return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End) }

// Contains reports whether off is inside s. An empty span contains only its start.
func (s Span) Contains(off uint32) bool {
	if s.Empty() {
		return off == s.Start
	}
	return s.Start <= off && off < s.End
}

// Cover widens s to include other; spans of different files leave s as is.
func (s Span) Cover(other Span) Span {
	if s.File == other.File {
		s.Start, s.End = min(s.Start, other.Start), max(s.End, other.End)
	}
	return s
}

// Shift moves both ends by delta, clamping at zero.
func (s Span) Shift(delta int64) Span {
	s.Start, s.End = shiftOffset(s.Start, delta), shiftOffset(s.End, delta)
	return s
}

func shiftOffset(off uint32, delta int64) uint32 {
	return uint32(max(int64(off)+delta, 0)) // #nosec G115 -- files are bounded by uint32 offsets
}
