package worker

import (
	"context"

	"code-auditor/internal/jobs"

	"github.com/google/uuid"
)

// Adapter implements github.AuditQueue so the github package never sees the
// worker types. Webhook-triggered audits get a fresh job id and record.
type Adapter struct {
	q     Queue
	store jobs.Store
}

func NewAdapter(q Queue, store jobs.Store) *Adapter {
	return &Adapter{q: q, store: store}
}

func (a *Adapter) EnqueueAudit(ctx context.Context, owner, repo string) error {
	j := Job{
		ID:    uuid.NewString(),
		Owner: owner,
		Repo:  repo,
	}

	if err := a.store.Create(ctx, j.ID, j.FullName()); err != nil {
		return err
	}
	return a.q.Push(ctx, j)
}
