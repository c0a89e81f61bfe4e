package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerMetricsOnce sync.Once

	AuditJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_auditor_jobs_total",
			Help: "Total audit jobs by outcome",
		},
		[]string{"status"},
	)

	AuditDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "code_auditor_job_duration_seconds",
			Help:    "Audit job duration",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	AICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_auditor_ai_calls_total",
			Help: "Total AI calls",
		},
		[]string{"provider"},
	)

	AIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_auditor_ai_errors_total",
			Help: "Total AI errors",
		},
		[]string{"provider"},
	)

	AILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "code_auditor_ai_latency_seconds",
			Help:    "AI call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	AITokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_auditor_ai_tokens_total",
			Help: "Total AI tokens",
		},
		[]string{"provider", "model", "type"},
	)

	AICostUSD = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_auditor_ai_cost_usd_total",
			Help: "Total estimated AI cost in USD",
		},
		[]string{"provider", "model"},
	)

	BudgetBlocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_auditor_budget_block_total",
			Help: "Total budget block events",
		},
		[]string{"scope"},
	)

	PatchFilesApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_auditor_patch_files_total",
			Help: "Total files touched by patch application",
		},
		[]string{"kind"},
	)

	PatchHunksSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "code_auditor_patch_hunks_skipped_total",
			Help: "Total hunks dropped for malformed headers during replay",
		},
	)

	IssuesFiled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "code_auditor_issues_filed_total",
			Help: "Total GitHub issues created",
		},
	)

	PullRequestsOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_auditor_pull_requests_total",
			Help: "Total pull requests opened",
		},
		[]string{"kind"},
	)
)

func InitMetrics() {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(
			AuditJobs, AuditDuration,
			AICalls, AIErrors, AILatency, AITokens, AICostUSD, BudgetBlocks,
			PatchFilesApplied, PatchHunksSkipped, IssuesFiled, PullRequestsOpened,
		)
	})
}
