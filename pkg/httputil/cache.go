package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by Cache.Get when an entry exists but is older
// than the cache TTL. The stale entry stays on disk until overwritten.
var ErrExpired = errors.New("cache entry expired")

// Entry is a cached response body.
type Entry struct {
	URL         string    `json:"url"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Cache stores response entries as JSON files named by the SHA-256 of
// their key. Age is taken from the file modification time; a zero TTL
// never expires. A Cache is not safe for concurrent use, but several
// processes may share one directory.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates dir if needed.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

func (c *Cache) Dir() string { return c.dir }
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get loads the entry for key. It returns (nil, nil) on a miss.
func (c *Cache) Get(key string) (*Entry, error) {
	path := c.path(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Set writes e under key, replacing any previous entry.
func (c *Cache) Set(key string, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// Namespace returns a view of the cache whose keys carry prefix.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{dir: c.dir, ttl: c.ttl, prefix: c.prefix + prefix}
}

func (c *Cache) path(key string) string {
	h := sha256.Sum256([]byte(c.prefix + key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:])+".body")
}

// Clear removes every entry in the cache directory and reports how many
// were deleted.
func (c *Cache) Clear() (int, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.body"))
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return n, err
		}
		n++
	}
	return n, nil
}
