package viewcache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	body      []byte
	expiresAt time.Time
}

// Memory is a process-local cache store for single-instance deployments.
// Expired entries are dropped lazily on Get; Sweep removes them eagerly
// and is meant to run on a timer.
type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl: ttl,
		m:   make(map[string]entry),
	}
}

func (c *Memory) Get(_ context.Context, path string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.m[path]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrMiss
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.m, path)
		c.mu.Unlock()
		return nil, ErrMiss
	}
	return e.body, nil
}

func (c *Memory) Set(_ context.Context, path string, body []byte) error {
	c.mu.Lock()
	c.m[path] = entry{body: body, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *Memory) Invalidate(_ context.Context, path string) error {
	c.mu.Lock()
	delete(c.m, path)
	c.mu.Unlock()
	return nil
}

// Sweep drops all expired entries.
func (c *Memory) Sweep() {
	now := time.Now()
	c.mu.Lock()
	for path, e := range c.m {
		if now.After(e.expiresAt) {
			delete(c.m, path)
		}
	}
	c.mu.Unlock()
}

// Ping satisfies the health checker; the in-memory store is always up.
func (c *Memory) Ping(_ context.Context) error {
	return nil
}
