package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and provides span resolution.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	normalizedPath := normalizePath(path)
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	// индекс всегда указывает на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (editor buffer, stdin, test) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Len returns the number of files (all versions) in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Len returns the content length in bytes.
func (f *File) Len() uint32 {
	return uint32(len(f.Content)) // #nosec G115 -- checked in Add
}

// Splice replaces the bytes in [start, end) with text and refreshes the
// line index and hash. The file keeps its ID.
func (f *File) Splice(start, end uint32, text string) error {
	if start > end || end > f.Len() {
		return fmt.Errorf("splice %d..%d out of range (len %d)", start, end, f.Len())
	}
	next := make([]byte, 0, len(f.Content)-int(end-start)+len(text))
	next = append(next, f.Content[:start]...)
	next = append(next, text...)
	next = append(next, f.Content[end:]...)
	if _, err := safecast.Conv[uint32](len(next)); err != nil {
		return fmt.Errorf("splice result too large: %w", err)
	}
	f.Content = next
	f.LineIdx = buildLineIndex(next)
	f.Hash = sha256.Sum256(next)
	return nil
}

// Position converts a byte offset to a line/column pair.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Offset converts a 1-based line/column back to a byte offset.
// Columns past the end of the line clamp to the line end.
func (f *File) Offset(pos LineCol) (uint32, error) {
	if pos.Line == 0 || pos.Col == 0 {
		return 0, fmt.Errorf("position %d:%d is not 1-based", pos.Line, pos.Col)
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		return 0, err
	}
	if pos.Line-1 > lines {
		return 0, fmt.Errorf("line %d past end of file (%d lines)", pos.Line, lines+1)
	}
	var start uint32
	if pos.Line > 1 {
		start = f.LineIdx[pos.Line-2] + 1
	}
	end := f.Len()
	if pos.Line-1 < lines {
		end = f.LineIdx[pos.Line-1]
	}
	off := start + pos.Col - 1
	if off > end {
		off = end
	}
	return off, nil
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	start, err := f.Offset(LineCol{Line: lineNum, Col: 1})
	if err != nil {
		return ""
	}
	end := f.Len()
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	return string(f.Content[start:end])
}

// FormatPath форматирует путь к файлу: "absolute", "relative", "basename" или "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil && !filepath.IsAbs(rel) {
			return filepath.ToSlash(rel)
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
