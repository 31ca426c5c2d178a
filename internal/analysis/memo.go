package analysis

import (
	"sync"
	"sync/atomic"

	"happydash/domain/happiness"

	"golang.org/x/sync/singleflight"
)

// Memo caches analysis tables keyed by parameters and analysis id.
// Capacity is bounded; the oldest entry is evicted first. Concurrent misses
// on the same key compute once.
type Memo struct {
	mu      sync.RWMutex
	entries map[string]any
	order   []string
	max     int
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// MemoStats reports cache effectiveness
type MemoStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// NewMemo creates a memo holding at most max entries
func NewMemo(max int) *Memo {
	if max < 1 {
		max = 1
	}
	return &Memo{entries: make(map[string]any, max), max: max}
}

// Do returns the cached value for key or computes and stores it
func (m *Memo) Do(key string, compute func() any) any {
	if m == nil {
		return compute()
	}

	m.mu.RLock()
	v, ok := m.entries[key]
	m.mu.RUnlock()
	if ok {
		m.hits.Add(1)
		return v
	}

	v, _, _ = m.group.Do(key, func() (any, error) {
		m.mu.RLock()
		cached, ok := m.entries[key]
		m.mu.RUnlock()
		if ok {
			return cached, nil
		}

		m.misses.Add(1)
		val := compute()
		m.store(key, val)
		return val, nil
	})
	return v
}

func (m *Memo) store(key string, val any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; exists {
		return
	}
	for len(m.order) >= m.max {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	m.entries[key] = val
	m.order = append(m.order, key)
}

// Stats returns the current counters
func (m *Memo) Stats() MemoStats {
	if m == nil {
		return MemoStats{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MemoStats{Entries: len(m.entries), Hits: m.hits.Load(), Misses: m.misses.Load()}
}

// Reset drops every entry
func (m *Memo) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]any, m.max)
	m.order = nil
}

// memoized runs an analysis through the memo and restores its concrete type.
// Every caller gets its own copy of the rows; the cached table is never handed out.
func memoized[R any](m *Memo, key string, compute func() happiness.Table[R]) happiness.Table[R] {
	v := m.Do(key, func() any { return compute() })
	typed, ok := v.(happiness.Table[R])
	if !ok {
		return compute()
	}
	return typed.Clone()
}
