package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"code-auditor/internal/config"
	"code-auditor/internal/github"
	"code-auditor/internal/jobs"
	"code-auditor/internal/observability"
	"code-auditor/internal/orchestrator"
	"code-auditor/internal/report"
	"code-auditor/internal/worker"
)

// Deps carries everything the HTTP layer needs; wiring happens in cmd/server.
type Deps struct {
	Github  github.Client
	OAuth   *github.OAuth
	Queue   worker.Queue
	Store   jobs.Store
	Webhook *github.WebhookHandler
	PRs     orchestrator.PROpener
	Mailer  *report.Mailer
}

type Server struct {
	cfg    *config.Config
	logger *observability.Logger
	deps   Deps
	http   *http.Server
}

func NewServer(cfg *config.Config, logger *observability.Logger, deps Deps) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		deps:   deps,
	}

	s.http = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return s
}

func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.http.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting server",
		"port", s.cfg.Port,
		"env", s.cfg.Env,
	)

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
