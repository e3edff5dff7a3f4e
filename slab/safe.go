package slab

import (
	"io"
	"sync"
	"unsafe"
)

// SafeCache wraps a Cache with a mutex so multiple goroutines can share
// one cache. It adds per-cache mutual exclusion around every call rather
// than changing the core's data model.
//
// SafeCache never reaches into a Cache's internals; a Cache used directly
// remains exactly as specified: unsynchronized.
type SafeCache struct {
	mu sync.Mutex
	c  *Cache
}

// NewSafeCache wraps an already-initialized Cache.
func NewSafeCache(c *Cache) *SafeCache {
	return &SafeCache{c: c}
}

func (s *SafeCache) Alloc() unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Alloc()
}

func (s *SafeCache) Free(obj unsafe.Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Free(obj)
}

func (s *SafeCache) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Destroy()
}

func (s *SafeCache) Stats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Stats()
}

func (s *SafeCache) Dump(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Dump(w)
}
