package pipeline

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestCacheEmpty(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get(time.Now(), time.Second); ok {
		t.Error("Get() on empty cache = hit, want miss")
	}
}

func TestCacheFreshAndStale(t *testing.T) {
	c := NewCache()
	now := time.Now()
	c.Put("git status", now)

	if got, ok := c.Get(now.Add(500*time.Millisecond), time.Second); !ok || got != "git status" {
		t.Errorf("Get(fresh) = %q, %v; want %q, true", got, ok, "git status")
	}
	if _, ok := c.Get(now.Add(2*time.Second), time.Second); ok {
		t.Error("Get(stale) = hit, want miss")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := NewCache()
	now := time.Now()
	c.Put("first", now.Add(-10*time.Second))
	c.Put("second", now)

	got, ok := c.Get(now, time.Second)
	if !ok || got != "second" {
		t.Errorf("Get() = %q, %v; want latest entry", got, ok)
	}
}

func TestCacheReset(t *testing.T) {
	c := NewCache()
	c.Put("text", time.Now())
	c.Reset()
	if _, ok := c.Get(time.Now(), time.Hour); ok {
		t.Error("Get() after Reset() = hit, want miss")
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c.Put("entry "+strconv.Itoa(i), time.Now())
		}(i)
		go func() {
			defer wg.Done()
			c.Get(time.Now(), time.Second)
		}()
	}
	wg.Wait()

	if _, ok := c.Get(time.Now(), time.Second); !ok {
		t.Error("Get() after concurrent puts = miss, want hit")
	}
}
