package lintconf

import (
	"errors"
	"os"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

// fileMeta is the metadata snapshot used for staleness detection.
// Modification time is compared at full precision; coarse second-level
// comparison would miss rapid successive writes.
type fileMeta struct {
	dev     uint64
	ino     uint64
	size    int64
	modTime time.Time
}

func newFileMeta(fi os.FileInfo) fileMeta {
	meta := fileMeta{
		size:    fi.Size(),
		modTime: fi.ModTime(),
	}
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		meta.dev = uint64(st.Dev)
		meta.ino = uint64(st.Ino)
	}
	return meta
}

func (m fileMeta) equal(other fileMeta) bool {
	return m.dev == other.dev &&
		m.ino == other.ino &&
		m.size == other.size &&
		m.modTime.Equal(other.modTime)
}

type entry struct {
	config Config
	meta   *fileMeta
}

// Cache maps configuration file paths to their last-loaded configuration and
// metadata snapshot. Entries live for the cache's lifetime; there is no
// eviction (the key space is the set of config paths an editor touches).
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	// load is swappable so tests can count or fake file reads.
	load func(path string) (Config, error)
}

// NewCache creates an empty configuration cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		load:    Load,
	}
}

// Get returns the configuration for path, reloading it only when the file's
// metadata snapshot differs from the one stored with the cached entry.
//
// Failures never propagate: a file that cannot be stat'ed or read yields the
// previously cached configuration (or an empty one), and a file that reads
// but does not parse keeps the prior configuration while still refreshing
// the metadata snapshot so the broken file is not re-parsed on every call.
func (c *Cache) Get(path string) Config {
	if path == "" {
		return Config{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if !ok {
		e = &entry{config: Config{}}
		c.entries[path] = e
	}

	fi, err := os.Stat(path)
	if err != nil {
		log.Warnf("Cannot stat config %s: %v", path, err)
		return e.config
	}

	meta := newFileMeta(fi)
	if e.meta != nil && e.meta.equal(meta) {
		return e.config
	}

	cfg, err := c.load(path)
	if err != nil {
		log.Warnf("Failed to load config %s: %v", path, err)
		if errors.Is(err, ErrParse) {
			// A file that reads but will not parse gets its metadata
			// recorded anyway; retrying on every request cannot help
			// until the file changes again.
			e.meta = &meta
		}
		return e.config
	}

	e.config = cfg
	e.meta = &meta
	return e.config
}

// Len returns the number of cached config paths.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
