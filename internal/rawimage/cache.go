package rawimage

import (
	"log/slog"
	"sync"
)

// Cache keeps decoded raw files in memory, keyed by path.
//
// Decoding a raw file is expensive; tools that look at the same file several
// times in a session reuse the planes instead of running LibRaw again.
// Entries stay until Evict or Clear.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Decoded
	decode  func(path string) (*Decoded, error)
}

// NewCache creates an empty cache that decodes with LibRaw.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*Decoded),
		decode:  Decode,
	}
}

// NewCacheWithDecoder creates an empty cache that calls decode on a miss.
// It lets callers serve files from somewhere other than LibRaw.
func NewCacheWithDecoder(decode func(path string) (*Decoded, error)) *Cache {
	return &Cache{
		entries: make(map[string]*Decoded),
		decode:  decode,
	}
}

// Load returns the decoded file at path, decoding it on first use.
//
// The path string is the key: a relative and an absolute path to the same
// file are cached separately.
func (c *Cache) Load(path string) (*Decoded, error) {
	c.mu.RLock()
	if d, ok := c.entries[path]; ok {
		c.mu.RUnlock()
		return d, nil
	}
	c.mu.RUnlock()

	slog.Debug("decoding raw file", "path", path)
	d, err := c.decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = d
	c.mu.Unlock()

	return d, nil
}

// Evict drops the entry for path, if any.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*Decoded)
	c.mu.Unlock()
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// DimensionsResult contains the raw buffer size.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LoadInfo returns the metadata of the file at path.
func LoadInfo(cache *Cache, path string) (*Info, error) {
	d, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	info := d.Info
	return &info, nil
}

// GetDimensions returns only the raw buffer size of the file at path.
func GetDimensions(cache *Cache, path string) (*DimensionsResult, error) {
	d, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{Width: d.Cols, Height: d.Rows}, nil
}
