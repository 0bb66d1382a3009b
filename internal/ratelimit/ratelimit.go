package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const sweepInterval = 5 * time.Minute

// Limiter counts hits per key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) Decision
	Close()
}

type Decision struct {
	Allowed   bool
	Count     int
	WindowEnd time.Time
}

// RetryAfter is the time left in the current window.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.WindowEnd.Before(now) {
		return 0
	}
	return d.WindowEnd.Sub(now)
}

// New returns a redis limiter when redisURL is set and reachable, otherwise
// an in-memory one.
func New(redisURL string, log logrus.FieldLogger) Limiter {
	if redisURL == "" {
		return NewMemory()
	}
	rl, err := NewRedis(redisURL, log)
	if err != nil {
		log.WithError(err).Warn("redis rate limiter unavailable, using in-memory limiter")
		return NewMemory()
	}
	return rl
}

type memoryLimiter struct {
	mu      sync.Mutex
	entries map[string]window
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

type window struct {
	count int
	end   time.Time
}

func NewMemory() Limiter {
	rl := newMemory(time.Now)
	go rl.sweepLoop()
	return rl
}

func newMemory(now func() time.Time) *memoryLimiter {
	return &memoryLimiter{
		entries: make(map[string]window),
		now:     now,
		stopCh:  make(chan struct{}),
	}
}

func (rl *memoryLimiter) Allow(_ context.Context, key string, limit int, win time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}
	if win <= 0 {
		win = time.Minute
	}
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.entries[key]
	if !ok || now.After(state.end) {
		state = window{count: 1, end: now.Add(win)}
		rl.entries[key] = state
		return Decision{Allowed: true, Count: state.count, WindowEnd: state.end}
	}
	if state.count >= limit {
		return Decision{Allowed: false, Count: state.count, WindowEnd: state.end}
	}
	state.count++
	rl.entries[key] = state
	return Decision{Allowed: true, Count: state.count, WindowEnd: state.end}
}

func (rl *memoryLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup(rl.now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *memoryLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, state := range rl.entries {
		if now.After(state.end) {
			delete(rl.entries, key)
		}
	}
}

func (rl *memoryLimiter) Close() {
	rl.once.Do(func() {
		close(rl.stopCh)
	})
}
