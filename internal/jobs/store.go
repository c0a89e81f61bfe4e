package jobs

import (
	"context"
	"time"
)

type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Record is the externally visible state of one audit job.
type Record struct {
	ID         string    `json:"id"`
	Repo       string    `json:"repo"`
	Status     Status    `json:"status"`
	Progress   string    `json:"progress,omitempty"`
	Error      string    `json:"error,omitempty"`
	Result     any       `json:"result,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

// Store tracks job lifecycle so HTTP polling can observe progress from a
// different process than the worker.
type Store interface {
	Create(ctx context.Context, id, repo string) error
	SetProgress(ctx context.Context, id, progress string) error
	Complete(ctx context.Context, id string, result any) error
	Fail(ctx context.Context, id, msg string) error
	Get(ctx context.Context, id string) (Record, bool, error)
}
