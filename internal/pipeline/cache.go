package pipeline

import (
	"sync"
	"time"
)

// Cache is the single-slot streaming transcript cache. The streaming loop
// overwrites it on every successful pre-pass; finalize may consume the entry
// only while it is fresh. Text stored here has already been sanitized.
type Cache struct {
	mu   sync.Mutex
	text string
	at   time.Time
}

func NewCache() *Cache {
	return &Cache{}
}

// Put replaces the slot with text stamped at now.
func (c *Cache) Put(text string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.at = now
}

// Get returns the cached transcript when the slot is populated and no older
// than maxAge relative to now.
func (c *Cache) Get(now time.Time, maxAge time.Duration) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.text == "" {
		return "", false
	}
	if now.Sub(c.at) > maxAge {
		return "", false
	}
	return c.text, true
}

// Reset clears the slot. Called at the start of every capture so a stale
// entry from a previous utterance can never leak into the next one.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = ""
	c.at = time.Time{}
}
