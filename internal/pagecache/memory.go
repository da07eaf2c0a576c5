package pagecache

import (
	"context"
	"sync"
	"time"

	"github.com/yatube-dev/yatube/internal/logger"
)

const DefaultSweepInterval = time.Minute

type entry struct {
	value   []byte
	expires time.Time
}

// Memory keeps entries in process memory. Expired entries are dropped lazily
// on Get and by the optional background sweeper.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expires) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && cur.expires.Equal(e.expires) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = entry{value: stored, expires: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// sweep removes expired entries and returns how many were dropped.
func (m *Memory) sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

// StartBackgroundCleanup periodically drops expired entries until ctx is done.
// A non-positive interval uses DefaultSweepInterval.
func (m *Memory) StartBackgroundCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	logger.Log.Info("started page cache sweeper", "component", "pagecache", "interval", interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := m.sweep(); n > 0 {
					logger.Log.Debug("page cache swept", "component", "pagecache", "removed", n)
				}
			case <-ctx.Done():
				logger.Log.Info("page cache sweeper stopped", "component", "pagecache")
				return
			}
		}
	}()
}
