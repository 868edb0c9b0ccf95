package cache

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"errors"
	"path"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache is a bounded in-process backend. Each instance is an isolated
// key space, the way a separate cache connection is in production.
// Keys written with TrySetNX live outside the LRU and only leave on expiry
// or delete, so cache traffic never evicts a held lock.
type MemoryCache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, memoryEntry]
	held    map[string]memoryEntry
	now     func() time.Time
}

var _ contracts.CacheBackend = (*MemoryCache)(nil)

func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		return nil, errors.New(constvars.ErrDevMemoryCacheCapacity)
	}
	entries, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{entries: entries, held: map[string]memoryEntry{}, now: time.Now}, nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.lookup(key)
	return entry.value, ok, nil
}

func (m *MemoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, key)
	m.entries.Add(key, m.newEntry(value, ttl))
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, keys ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for _, key := range keys {
		if _, ok := m.lookup(key); ok {
			deleted++
		}
		m.entries.Remove(key)
		delete(m.held, key)
	}
	return deleted, nil
}

func (m *MemoryCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidates := m.entries.Keys()
	for key := range m.held {
		candidates = append(candidates, key)
	}

	var keys []string
	for _, key := range candidates {
		if _, ok := m.lookup(key); !ok {
			continue
		}
		matched, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if matched {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *MemoryCache) TrySetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lookup(key); ok {
		return false, nil
	}
	m.pruneHeld()
	m.held[key] = m.newEntry(value, ttl)
	return true, nil
}

func (m *MemoryCache) CompareAndDelete(ctx context.Context, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.lookup(key)
	if !ok || entry.value != value {
		return false, nil
	}
	m.entries.Remove(key)
	delete(m.held, key)
	return true, nil
}

// lookup returns a live entry and drops an expired one. Callers hold mu.
func (m *MemoryCache) lookup(key string) (memoryEntry, bool) {
	if entry, ok := m.held[key]; ok {
		if entry.expired(m.now()) {
			delete(m.held, key)
			return memoryEntry{}, false
		}
		return entry, true
	}

	entry, ok := m.entries.Peek(key)
	if !ok {
		return memoryEntry{}, false
	}
	if entry.expired(m.now()) {
		m.entries.Remove(key)
		return memoryEntry{}, false
	}
	m.entries.Get(key)
	return entry, true
}

func (m *MemoryCache) pruneHeld() {
	now := m.now()
	for key, entry := range m.held {
		if entry.expired(now) {
			delete(m.held, key)
		}
	}
}

func (m *MemoryCache) newEntry(value string, ttl time.Duration) memoryEntry {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	return entry
}
