// Package assets locates and caches model and texture files.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/hologram/internal/logger"
)

// DefaultModel is the built-in mesh shown when no model is configured.
const DefaultModel = "cube.obj"

//go:embed defaults
var defaults embed.FS

// ErrNotFound is returned when no search location holds the file.
var ErrNotFound = errors.New("asset not found")

// Manager resolves asset names against a list of directories and finally
// the embedded defaults.
type Manager struct {
	dirs     []string
	fallback fs.FS
	cache    *Cache
	mu       sync.RWMutex
}

// NewManager creates a new asset manager searching dirs in order.
func NewManager(dirs ...string) *Manager {
	sub, _ := fs.Sub(defaults, "defaults")
	return &Manager{
		dirs:     dirs,
		fallback: sub,
		cache:    NewCache(),
	}
}

// AddDir appends a search directory.
// Directories are searched in the order added.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding asset dir %s: not a directory", dir)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()

	return nil
}

// Load returns the contents of name. Absolute paths are read directly;
// relative ones are tried as given, then in each search dir, then in the
// embedded defaults.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	data, from, err := m.find(name)
	if err != nil {
		return nil, err
	}

	logger.Debug("asset loaded",
		zap.String("name", name),
		zap.String("from", from),
		zap.Int("bytes", len(data)),
	)
	m.cache.Set(name, data)
	return data, nil
}

func (m *Manager) find(name string) ([]byte, string, error) {
	if filepath.IsAbs(name) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, "", fmt.Errorf("loading %s: %w", name, err)
		}
		return data, name, nil
	}

	m.mu.RLock()
	candidates := make([]string, 0, len(m.dirs)+1)
	candidates = append(candidates, name)
	for _, dir := range m.dirs {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	m.mu.RUnlock()

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("loading %s: %w", p, err)
		}
	}

	if data, err := fs.ReadFile(m.fallback, path.Clean(filepath.ToSlash(name))); err == nil {
		return data, "embedded", nil
	}

	return nil, "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	// Stats are written, so a read lock is not enough.
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

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
