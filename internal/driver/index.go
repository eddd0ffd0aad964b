package driver

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

const indexSchemaVersion uint16 = 1

// Index maps container-level declarations of a directory to their files.
type Index struct {
	Schema uint16    `msgpack:"schema"`
	Root   string    `msgpack:"root"`
	Files  []Summary `msgpack:"files"`
}

// IndexHit is one declaration found by Lookup.
type IndexHit struct {
	File string
	Declaration
}

// BuildIndex collects the summaries of results. Files that failed to load
// are skipped.
func BuildIndex(root string, results []*AnalyzeResult) *Index {
	idx := &Index{Schema: indexSchemaVersion, Root: root}
	for _, r := range results {
		if r == nil || r.Summary == nil {
			continue
		}
		idx.Files = append(idx.Files, *r.Summary)
	}
	sort.Slice(idx.Files, func(i, j int) bool { return idx.Files[i].Path < idx.Files[j].Path })
	return idx
}

func (idx *Index) Write(w io.Writer) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(idx)
}

func ReadIndex(r io.Reader) (*Index, error) {
	var idx Index
	if err := msgpack.NewDecoder(r).Decode(&idx); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	if idx.Schema != indexSchemaVersion {
		return nil, fmt.Errorf("index schema %d, want %d", idx.Schema, indexSchemaVersion)
	}
	return &idx, nil
}

// Lookup finds declarations by name. A qualified query ("List.append")
// matches exactly; a bare one also matches the last component.
func (idx *Index) Lookup(name string) []IndexHit {
	var hits []IndexHit
	for _, f := range idx.Files {
		for _, d := range f.Declarations {
			if d.Name == name || (!strings.Contains(name, ".") && strings.HasSuffix(d.Name, "."+name)) {
				hits = append(hits, IndexHit{File: f.Path, Declaration: d})
			}
		}
	}
	return hits
}

// Count returns the number of declarations in the index.
func (idx *Index) Count() int {
	n := 0
	for _, f := range idx.Files {
		n += len(f.Declarations)
	}
	return n
}
