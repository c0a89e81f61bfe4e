package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: map[string]Record{}}
}

func (m *MemoryStore) Create(_ context.Context, id, repo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobs[id] = Record{
		ID:        id,
		Repo:      repo,
		Status:    StatusRunning,
		Progress:  "queued",
		StartedAt: time.Now(),
	}
	return nil
}

func (m *MemoryStore) SetProgress(_ context.Context, id, progress string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("unknown job %s", id)
	}
	r.Progress = progress
	m.jobs[id] = r
	return nil
}

func (m *MemoryStore) Complete(_ context.Context, id string, result any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("unknown job %s", id)
	}
	r.Status = StatusDone
	r.Progress = "complete"
	r.Result = result
	r.FinishedAt = time.Now()
	m.jobs[id] = r
	return nil
}

func (m *MemoryStore) Fail(_ context.Context, id, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("unknown job %s", id)
	}
	r.Status = StatusError
	r.Error = msg
	r.FinishedAt = time.Now()
	m.jobs[id] = r
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.jobs[id]
	return r, ok, nil
}
