package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-process token bucket per key, used when Redis is not configured.
type MemoryLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	every     rate.Limit
	burst     int
	idle      time.Duration
	lastPrune time.Time
	now       func() time.Time
}

// NewMemoryLimiter allows limit requests per window with bursts of up to limit.
// A non-positive limit allows everything.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	every := rate.Inf
	if limit > 0 {
		every = rate.Every(window / time.Duration(limit))
	}
	return &MemoryLimiter{
		clients: make(map[string]*client),
		every:   every,
		burst:   limit,
		idle:    5 * window,
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Close() error {
	return nil
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.prune(now)

	c, ok := m.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(m.every, m.burst)}
		m.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1), nil
}

// prune drops clients idle for longer than m.idle, at most once per idle period.
func (m *MemoryLimiter) prune(now time.Time) {
	if now.Sub(m.lastPrune) < m.idle {
		return
	}
	for key, c := range m.clients {
		if now.Sub(c.lastSeen) > m.idle {
			delete(m.clients, key)
		}
	}
	m.lastPrune = now
}
