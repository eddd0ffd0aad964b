package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zigscope/internal/diag"
	"zigscope/internal/pipeline"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
	return dir
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestAnalyzeReportsUnresolved(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.zig": "const std = @import(\"std\");\nfn f(a: u32) u32 {\n    return a + b;\n}\nfn g() void {\n    while (true) {\n        break :nope;\n    }\n}\n",
	})
	res, err := Analyze(context.Background(), filepath.Join(dir, "main.zig"), Options{MaxDiagnostics: 10, ReportUnresolved: true})
	require.NoError(t, err)
	require.NotNil(t, res.Tree)
	require.Same(t, res.File, res.FileSet.Get(res.File.ID))

	assert.Equal(t, []diag.Code{diag.ResUnresolved, diag.ResUnresolvedLabel}, codes(res.Bag))
	assert.Equal(t, RefStats{References: 3, Unresolved: 2}, res.Summary.Refs)

	var names []string
	for _, d := range res.Summary.Declarations {
		names = append(names, d.Name+":"+d.Role)
	}
	assert.Equal(t, []string{"std:VarDeclaration", "f:FnDeclaration", "g:FnDeclaration"}, names)
	assert.Equal(t, uint32(2), res.Summary.Declarations[1].Line)
}

func TestAnalyzeQuietWithoutReporting(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.zig": "const a = b;\n"})
	res, err := Analyze(context.Background(), filepath.Join(dir, "main.zig"), Options{MaxDiagnostics: 10, Timings: true})
	require.NoError(t, err)
	assert.Equal(t, []diag.Code{diag.ObsTimings}, codes(res.Bag))
	assert.Equal(t, 1, res.Summary.Refs.Unresolved, "stats are kept even when not reported")
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := Analyze(context.Background(), filepath.Join(t.TempDir(), "nope.zig"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestListFilesSkipsBuildOutput(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.zig":            "",
		"a.zig":            "",
		"sub/c.zig":        "",
		"zig-out/x.zig":    "",
		".zig-cache/y.zig": "",
		"notes.txt":        "",
	})
	files, err := ListFiles(dir, nil)
	require.NoError(t, err)
	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"a.zig", "b.zig", "sub/c.zig"}, rel)
}

func TestAnalyzeDirOrderAndCache(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"z.zig":     "const z = 1;\n",
		"m.zig":     "const m = undefinedName;\n",
		"a/one.zig": "pub fn one() void {}\n",
		"a/two.zig": "const two = ;\n",
	})
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)

	rec := &pipeline.Recorder{}
	opts := Options{MaxDiagnostics: 20, Jobs: 3, ReportUnresolved: true, Cache: cache, Progress: rec, BaseDir: dir}
	_, first, err := AnalyzeDir(context.Background(), dir, opts)
	require.NoError(t, err)
	require.Len(t, first, 4)

	var order []string
	for _, r := range first {
		rel, err := filepath.Rel(dir, r.Path)
		require.NoError(t, err)
		order = append(order, filepath.ToSlash(rel))
		assert.False(t, r.Cached)
	}
	assert.Equal(t, []string{"a/one.zig", "a/two.zig", "m.zig", "z.zig"}, order)
	assert.True(t, first[1].Bag.HasErrors())
	assert.Equal(t, []diag.Code{diag.ResUnresolved}, codes(first[2].Bag))
	assert.True(t, first[0].Summary.Declarations[0].Public)

	rec2 := &pipeline.Recorder{}
	opts.Progress = rec2
	_, second, err := AnalyzeDir(context.Background(), dir, opts)
	require.NoError(t, err)
	require.Len(t, second, 4)
	for i, r := range second {
		assert.True(t, r.Cached, r.Path)
		assert.Nil(t, r.Tree)
		assert.Equal(t, codes(first[i].Bag), codes(r.Bag), r.Path)
		assert.Equal(t, first[i].Summary.Declarations, r.Summary.Declarations)
	}

	cached := 0
	for _, evt := range rec2.Events() {
		if evt.Status == pipeline.StatusCached {
			cached++
		}
	}
	assert.Equal(t, 4, cached)
	assert.Positive(t, rec.Timings().Duration(pipeline.StageParse))
}

func TestAnalyzeDirCanceled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.zig": "const a = 1;\n", "b.zig": "const b = a;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := AnalyzeDir(ctx, dir, Options{Jobs: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParseDir(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ok.zig": "const a = 1;\n", "bad.zig": "fn (\n"})
	_, results, err := ParseDir(context.Background(), dir, Options{MaxDiagnostics: 5})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "bad.zig", filepath.Base(results[0].Path))
	assert.True(t, results[0].Bag.HasErrors())
	assert.Equal(t, 0, results[1].Bag.Len())
	assert.Equal(t, "const a = 1;\n", results[1].Tree.Source())
}

func TestIndexRoundTrip(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"list.zig": "pub const List = struct {\n    items: u32,\n    pub fn append() void {}\n};\n",
		"main.zig": "fn append() void {}\n",
	})
	_, results, err := AnalyzeDir(context.Background(), dir, Options{MaxDiagnostics: 5})
	require.NoError(t, err)

	idx := BuildIndex(dir, results)
	assert.Equal(t, 4, idx.Count())

	var buf bytes.Buffer
	require.NoError(t, idx.Write(&buf))
	back, err := ReadIndex(&buf)
	require.NoError(t, err)
	assert.Equal(t, idx, back)

	hits := back.Lookup("append")
	require.Len(t, hits, 2)
	assert.Equal(t, "List.append", hits[0].Name)
	assert.True(t, hits[0].Public)
	assert.Equal(t, "append", hits[1].Name)

	assert.Len(t, back.Lookup("List.items"), 1)
	assert.Empty(t, back.Lookup("List.missing"))
}

func TestDiskCacheSchemaMiss(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	key := cacheKey([32]byte{1}, &Options{})

	var out Summary
	ok, err := cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(key, &Summary{Schema: summarySchemaVersion + 1, Path: "x.zig"}))
	ok, err = cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, ok, "foreign schema is a miss")

	require.NoError(t, cache.Put(key, &Summary{Schema: summarySchemaVersion, Path: "x.zig"}))
	ok, err = cache.Get(key, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x.zig", out.Path)

	st, err := cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, st.Entries)
	assert.Positive(t, st.Bytes)

	require.NoError(t, cache.DropAll())
	ok, err = cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, ok)
	st, err = cache.Stats()
	require.NoError(t, err)
	assert.Zero(t, st.Entries)
}

func TestDiskCacheCorruptEntryIsMiss(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	key := cacheKey([32]byte{2}, &Options{})
	require.NoError(t, cache.Put(key, &Summary{Schema: summarySchemaVersion, Path: "y.zig"}))
	require.NoError(t, os.WriteFile(cache.entry(key), []byte{0xc1}, 0o600))

	var out Summary
	ok, err := cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = os.Stat(cache.entry(key))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	content := [32]byte{7}
	a := cacheKey(content, &Options{MaxDiagnostics: 10})
	b := cacheKey(content, &Options{MaxDiagnostics: 10, ReportUnresolved: true})
	c := cacheKey(content, &Options{MaxDiagnostics: 11})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, cacheKey(content, &Options{MaxDiagnostics: 10}))
}
