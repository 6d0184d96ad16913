// Package assets handles game asset loading and caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// ErrNotFound is returned when no source holds the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager reads asset files from a stack of file systems.
type Manager struct {
	sources []fs.FS
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(DefaultCacheBytes),
	}
}

// AddSource adds a file system to the manager.
// Sources are searched in reverse order (last added = highest priority).
func (m *Manager) AddSource(fsys fs.FS) {
	m.mu.Lock()
	m.sources = append(m.sources, fsys)
	m.mu.Unlock()
}

// Read loads a file, serving repeated reads from the cache.
func (m *Manager) Read(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.sources[i], path)
		if err == nil {
			m.cache.Set(path, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Cache returns the byte cache.
func (m *Manager) Cache() *Cache { return m.cache }

// Close drops every source and clears the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = nil
	m.cache.Clear()
}

// DefaultCacheBytes bounds the byte cache of a new Manager.
const DefaultCacheBytes = 64 << 20

// Cache keeps file contents by path up to a byte budget. When a new entry
// does not fit, the oldest entries are dropped first.
type Cache struct {
	mu     sync.Mutex
	budget int
	used   int
	data   map[string][]byte
	order  []string // insertion order, oldest first

	hits, misses int
}

// NewCache creates a cache holding at most budget bytes.
func NewCache(budget int) *Cache {
	return &Cache{budget: budget, data: make(map[string][]byte)}
}

// Get returns the cached contents of key.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores data under key. Entries larger than the whole budget are not kept.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(data) > c.budget {
		return
	}
	if old, ok := c.data[key]; ok {
		c.used -= len(old)
		c.forget(key)
	}
	for c.used+len(data) > c.budget && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.used -= len(c.data[oldest])
		delete(c.data, oldest)
	}
	c.data[key] = data
	c.order = append(c.order, key)
	c.used += len(data)
}

func (c *Cache) forget(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.order = nil
	c.used, c.hits, c.misses = 0, 0, 0
}

// Stats returns the hit and miss counts since the last Clear.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Used returns the bytes currently held.
func (c *Cache) Used() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}
