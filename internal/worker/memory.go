package worker

import (
	"context"
	"fmt"
)

// MemoryQueue is the single-process transport: audit jobs flow through a
// buffered channel, so a full queue back-pressures the analyze endpoint.
type MemoryQueue struct {
	jobs chan Job
}

func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{
		jobs: make(chan Job, size),
	}
}

func (m *MemoryQueue) Push(ctx context.Context, j Job) error {
	select {
	case m.jobs <- j:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue audit %s: %w", j.ID, ctx.Err())
	}
}

func (m *MemoryQueue) Pop(ctx context.Context) (Job, error) {
	select {
	case j := <-m.jobs:
		return j, nil
	case <-ctx.Done():
		return Job{}, fmt.Errorf("wait for audit job: %w", ctx.Err())
	}
}
