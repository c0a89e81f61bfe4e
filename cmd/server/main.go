package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"code-auditor/internal/ai"
	"code-auditor/internal/app"
	"code-auditor/internal/budget"
	"code-auditor/internal/config"
	"code-auditor/internal/dedup"
	"code-auditor/internal/github"
	"code-auditor/internal/gitops"
	"code-auditor/internal/jobs"
	"code-auditor/internal/observability"
	"code-auditor/internal/orchestrator"
	"code-auditor/internal/ratelimit"
	"code-auditor/internal/report"
	"code-auditor/internal/worker"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	observability.InitMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gh := github.NewClient(cfg, logger)
	oauth := github.NewOAuth(cfg)

	queue := worker.NewQueue(cfg)
	store := jobs.NewStore(cfg)

	// Webhook re-audits go through the adapter so the github package never
	// sees worker types.
	webhook := github.NewWebhookHandler(cfg, logger, worker.NewAdapter(queue, store))

	provider := buildProvider(cfg)

	guard := budget.NewGuard(cfg.BudgetEnabled, cfg.BudgetDailyUSD, cfg.BudgetPerJobUSD, budget.NewMemoryStore())
	limits := ratelimit.New(cfg.AIRatePerSecond, cfg.AIRateBurst)

	prs := gitops.New(gh, logger)
	mailer := report.NewMailer(cfg, logger)

	pipeline := orchestrator.New(
		cfg, logger, gh, provider, store,
		guard, limits, dedup.NewMemory(),
		prs, mailer,
	)

	worker.NewProcessor(queue, pipeline, logger).Start(ctx)

	server := app.NewServer(cfg, logger, app.Deps{
		Github:  gh,
		OAuth:   oauth,
		Queue:   queue,
		Store:   store,
		Webhook: webhook,
		PRs:     prs,
		Mailer:  mailer,
	})

	if err := server.Start(ctx); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

// buildProvider wraps the configured backend in a circuit breaker and, when a
// second backend has credentials, a fallback chain.
func buildProvider(cfg *config.Config) ai.Provider {
	primary := ai.NewCircuitBreaker(ai.NewProvider(cfg))

	if cfg.AIProvider != "openai" && cfg.OpenAIKey != "" {
		return ai.NewFallback(primary, ai.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel))
	}
	if cfg.AIProvider == "openai" && cfg.GeminiKey != "" {
		return ai.NewFallback(primary, ai.NewGemini(cfg.GeminiKey, cfg.GeminiModel))
	}
	return primary
}
