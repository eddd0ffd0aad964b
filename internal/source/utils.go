package source

import (
	"bytes"
	"path/filepath"
	"slices"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
	lf      = []byte("\n")
)

// normalizeCRLF turns \r\n into \n. A lone \r is left for the lexer to reject.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, lf), true
}

func removeBOM(content []byte) ([]byte, bool) {
	return bytes.CutPrefix(content, utf8BOM)
}

// buildLineIndex returns the offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, lf))
	base := 0
	for {
		i := bytes.IndexByte(content[base:], '\n')
		if i < 0 {
			return out
		}
		out = append(out, uint32(base+i)) // #nosec G115 -- guarded by Add
		base += i + 1
	}
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число переводов строк строго до off
	line, _ := slices.BinarySearch(lineIdx, off)
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - lineStart + 1} // #nosec G115
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
