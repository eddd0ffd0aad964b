package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"zigscope/internal/project"
)

// DiskCache keeps msgpack-encoded summaries under <dir>/files, one file per
// project.Digest. A nil *DiskCache is a cache that never hits.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CacheStats describes what DiskCache currently holds.
type CacheStats struct {
	Entries int
	Bytes   int64
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		base, err = xdg, nil
	}
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return nil, errors.Join(err, herr)
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "files"), 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// entry shards by the first two hex digits of the key.
func (c *DiskCache) entry(key project.Digest) string {
	name := key.String()
	return filepath.Join(c.dir, "files", name[:2], name+".mp")
}

func (c *DiskCache) Put(key project.Digest, payload *Summary) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeAtomic(c.entry(key), data)
}

// writeAtomic goes through a temp file in the target directory and a rename.
func writeAtomic(path string, data []byte) (err error) {
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Get loads the entry for key into out. A missing entry, one written under
// another schema and one that fails to decode are all misses; the undecodable
// one is removed.
func (c *DiskCache) Get(key project.Digest, out *Summary) (bool, error) {
	if c == nil {
		return false, nil
	}
	path := c.entry(key)
	c.mu.RLock()
	data, err := os.ReadFile(path) // #nosec G304 -- path is derived from a digest
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		c.mu.Lock()
		_ = os.Remove(path)
		c.mu.Unlock()
		return false, nil
	}
	return out.Schema == summarySchemaVersion, nil
}

// Stats walks the entry tree.
func (c *DiskCache) Stats() (CacheStats, error) {
	var st CacheStats
	if c == nil {
		return st, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	err := filepath.WalkDir(filepath.Join(c.dir, "files"), func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(d.Name()) != ".mp" {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		st.Entries++
		st.Bytes += info.Size()
		return nil
	})
	return st, err
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	files := filepath.Join(c.dir, "files")
	if err := os.RemoveAll(files); err != nil {
		return err
	}
	return os.MkdirAll(files, 0o755)
}
