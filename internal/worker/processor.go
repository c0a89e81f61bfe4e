package worker

import (
	"context"
	"errors"
	"time"

	"code-auditor/internal/observability"
)

// Runner is the audit pipeline the processor drives. Defined here so the
// orchestrator can depend on worker and not the other way round.
type Runner interface {
	Run(ctx context.Context, j Job)
}

type Processor struct {
	queue   Queue
	runner  Runner
	logger  *observability.Logger
	timeout time.Duration
}

func NewProcessor(q Queue, r Runner, l *observability.Logger) *Processor {
	return &Processor{
		queue:   q,
		runner:  r,
		logger:  l,
		timeout: 10 * time.Minute,
	}
}

func (p *Processor) Start(ctx context.Context) {
	go func() {
		for {
			job, err := p.queue.Pop(ctx)
			if err != nil {
				if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return
				}
				continue
			}

			p.handle(ctx, job)
		}
	}()
}

func (p *Processor) handle(parent context.Context, j Job) {
	ctx, cancel := context.WithTimeout(parent, p.timeout)
	defer cancel()

	p.logger.Info("audit started", "job", j.ID, "repo", j.FullName())
	start := time.Now()

	p.runner.Run(ctx, j)

	observability.AuditDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("audit finished", "job", j.ID, "repo", j.FullName(), "seconds", time.Since(start).Seconds())
}
