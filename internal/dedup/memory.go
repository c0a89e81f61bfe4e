package dedup

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type entry struct {
	key     string
	addedAt time.Time
}

// Memory keeps recently seen keys with a TTL and a size cap so a long-running
// process does not grow without bound.
type Memory struct {
	mu         sync.Mutex
	seen       map[string]*list.Element
	order      *list.List
	ttl        time.Duration
	maxEntries int
}

func NewMemory() *Memory {
	return &Memory{
		seen:       make(map[string]*list.Element),
		order:      list.New(),
		ttl:        24 * time.Hour,
		maxEntries: 10000,
	}
}

func (m *Memory) Seen(ctx context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.seen[key]
	if !ok {
		return false
	}
	if time.Since(el.Value.(entry).addedAt) > m.ttl {
		m.order.Remove(el)
		delete(m.seen, key)
		return false
	}
	return true
}

func (m *Memory) Mark(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.seen[key]; ok {
		m.order.Remove(el)
	}
	m.seen[key] = m.order.PushBack(entry{key: key, addedAt: time.Now()})

	for m.order.Len() > m.maxEntries {
		oldest := m.order.Front()
		m.order.Remove(oldest)
		delete(m.seen, oldest.Value.(entry).key)
	}
	return nil
}
