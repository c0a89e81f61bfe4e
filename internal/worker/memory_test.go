package worker

import (
	"context"
	"testing"
	"time"
)

func TestMemoryQueue_PushPop(t *testing.T) {
	q := NewMemoryQueue(2)
	ctx := context.Background()

	if err := q.Push(ctx, Job{ID: "a", Owner: "octo", Repo: "demo"}); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	j, err := q.Pop(ctx)
	if err != nil {
		t.Fatalf("pop failed: %v", err)
	}
	if j.ID != "a" || j.FullName() != "octo/demo" {
		t.Fatalf("unexpected job %+v", j)
	}
}

func TestMemoryQueue_PopTimeout(t *testing.T) {
	q := NewMemoryQueue(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := q.Pop(ctx); err == nil {
		t.Fatalf("expected timeout error")
	}
}

type recordingRunner struct {
	got chan Job
}

func (r *recordingRunner) Run(_ context.Context, j Job) {
	r.got <- j
}

func TestProcessor_DrivesRunner(t *testing.T) {
	q := NewMemoryQueue(1)
	runner := &recordingRunner{got: make(chan Job, 1)}

	p := NewProcessor(q, runner, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	if err := q.Push(ctx, Job{ID: "x", Owner: "octo", Repo: "demo"}); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	select {
	case j := <-runner.got:
		if j.ID != "x" {
			t.Fatalf("unexpected job %+v", j)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner never invoked")
	}
}
