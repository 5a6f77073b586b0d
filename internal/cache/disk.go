package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Disk is a persistent backend that keeps composed results warm across
// process restarts.
type Disk struct {
	dir string
	ttl time.Duration
}

// NewDisk creates a disk backend rooted at dir.
func NewDisk(dir string, ttl time.Duration) *Disk {
	return &Disk{dir: dir, ttl: ttl}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value, dropping it if expired.
func (c *Disk) Get(key string) ([]byte, bool) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

// Set stores a value with the given TTL (0 means the backend default).
func (c *Disk) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	entry := diskEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes a value from the disk cache
func (c *Disk) Delete(key string) error {
	return os.Remove(c.path(key))
}

// Clear removes all cached files
func (c *Disk) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *Disk) path(key string) string {
	return filepath.Join(c.dir, key+".cache")
}
