// Package viewengine caches compiled templates: a (root path, flags hash)
// pair maps to the last compiled artifact and the dependency map that
// produced it, invalidated by comparing each dependency's current mtime
// against the one recorded at compile time — spec.md §5's "render" path
// is expected to be called repeatedly against the same templates, so
// recompiling an unchanged file on every call is wasted work.
//
// Grounded on the teacher's plain-struct-registry style (pkgs/plan/types.go)
// rather than a framework cache: one owned map behind a mutex, no eviction
// policy beyond "stale entries get overwritten on next compile".
package viewengine

import (
	"io/fs"
	"sync"

	"github.com/pugc-lang/pugc/internal/source"
)

// Entry is one compiled template's cached result.
type Entry struct {
	Artifact string
	Deps     source.DepMap
}

// BuildFunc compiles root from scratch, returning the artifact string and
// the dependency map (every file the compile touched, with its mtime at
// read time).
type BuildFunc func() (artifact string, deps source.DepMap, err error)

// Cache is a (root, flagsHash) -> Entry map guarded by a single mutex; hit
// rate matters far more than lock granularity for a template cache this
// size.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: map[string]*Entry{}}
}

func cacheKey(root, flagsHash string) string {
	return root + "|" + flagsHash
}

// Get returns a cached, still-fresh entry for (root, flagsHash), compiling
// and caching via build otherwise. A cached entry is fresh only if every
// one of its recorded dependencies still exists in fsys with the same
// mtime; any mismatch forces a rebuild.
func (c *Cache) Get(fsys fs.FS, root, flagsHash string, build BuildFunc) (*Entry, error) {
	key := cacheKey(root, flagsHash)

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()

	if ok && c.fresh(fsys, entry) {
		return entry, nil
	}

	artifact, deps, err := build()
	if err != nil {
		return nil, err
	}
	entry = &Entry{Artifact: artifact, Deps: deps}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	return entry, nil
}

// Invalidate drops any cached entry for (root, flagsHash), forcing the
// next Get to rebuild unconditionally.
func (c *Cache) Invalidate(root, flagsHash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(root, flagsHash))
}

func (c *Cache) fresh(fsys fs.FS, entry *Entry) bool {
	for path, mtime := range entry.Deps {
		info, err := fs.Stat(fsys, path)
		if err != nil {
			return false
		}
		if !info.ModTime().Equal(mtime) {
			return false
		}
	}
	return true
}
