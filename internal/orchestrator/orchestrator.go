package orchestrator

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"code-auditor/internal/ai"
	"code-auditor/internal/analysis"
	"code-auditor/internal/audit"
	"code-auditor/internal/budget"
	"code-auditor/internal/chunker"
	"code-auditor/internal/config"
	"code-auditor/internal/cost"
	"code-auditor/internal/dedup"
	"code-auditor/internal/diff"
	"code-auditor/internal/fixer"
	"code-auditor/internal/github"
	"code-auditor/internal/gitops"
	"code-auditor/internal/hosting"
	"code-auditor/internal/jobs"
	"code-auditor/internal/observability"
	"code-auditor/internal/ratelimit"
	"code-auditor/internal/report"
	"code-auditor/internal/retry"
	"code-auditor/internal/scanner"
	"code-auditor/internal/worker"
)

// PROpener is the slice of gitops the pipeline needs.
type PROpener interface {
	CreateFixPR(ctx context.Context, req gitops.PRRequest) (github.PullRequest, error)
}

// Mailer is the slice of report delivery the pipeline needs.
type Mailer interface {
	Send(to, subject, htmlBody string, pdf []byte) error
}

// Orchestrator runs the full audit pipeline for one job: download, scan,
// analyze, synthesize patches, then the optional outward actions.
type Orchestrator struct {
	cfg      *config.Config
	logger   *observability.Logger
	gh       github.Client
	provider ai.Provider
	store    jobs.Store
	scanner  *scanner.Scanner
	chunker  *chunker.Chunker
	guard    *budget.Guard
	limits   *ratelimit.Limiter
	dedup    dedup.Store
	prs      PROpener
	mailer   Mailer
}

func New(
	cfg *config.Config,
	logger *observability.Logger,
	gh github.Client,
	provider ai.Provider,
	store jobs.Store,
	guard *budget.Guard,
	limits *ratelimit.Limiter,
	d dedup.Store,
	prs PROpener,
	mailer Mailer,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		logger:   logger,
		gh:       gh,
		provider: provider,
		store:    store,
		scanner:  scanner.New(cfg.MaxFileBytes),
		chunker:  chunker.New(cfg.PromptChunkChars),
		guard:    guard,
		limits:   limits,
		dedup:    d,
		prs:      prs,
		mailer:   mailer,
	}
}

// Run implements worker.Runner.
func (o *Orchestrator) Run(ctx context.Context, j worker.Job) {
	observability.AuditJobs.WithLabelValues("started").Inc()

	result, err := o.execute(ctx, j)
	if err != nil {
		observability.AuditJobs.WithLabelValues("failed").Inc()
		o.logger.Error("audit failed", "job", j.ID, "repo", j.FullName(), "err", err)
		_ = o.store.Fail(ctx, j.ID, err.Error())
		return
	}

	observability.AuditJobs.WithLabelValues("completed").Inc()
	_ = o.store.Complete(ctx, j.ID, result)
}

func (o *Orchestrator) execute(ctx context.Context, j worker.Job) (audit.Result, error) {
	repo := j.FullName()

	o.progress(ctx, j.ID, "downloading repository")
	zipData, err := o.gh.DownloadZipball(ctx, j.Owner, j.Repo, j.Token)
	if err != nil {
		return audit.Result{}, fmt.Errorf("download repo: %w", err)
	}

	o.progress(ctx, j.ID, "scanning files")
	files, err := o.scanner.ExtractAndScan(zipData)
	if err != nil {
		return audit.Result{}, fmt.Errorf("scan repo: %w", err)
	}
	if len(files) == 0 {
		return audit.Result{}, fmt.Errorf("no supported files found in %s", repo)
	}

	if j.Language != "" {
		files = scanner.FilterByLanguage(files, j.Language)
		if len(files) == 0 {
			return audit.Result{}, fmt.Errorf("no %s files found in %s", j.Language, repo)
		}
	}

	result := audit.Result{
		Repo:         repo,
		FilesScanned: len(files),
	}

	o.progress(ctx, j.ID, "analyzing code")
	capped := o.chunker.Cap(files)
	result.Issues = o.detectIssues(ctx, j, capped, files, &result)

	result.Enhancements = analysis.NewEnhancer().Analyze(files)
	result.Suggestions = analysis.BuildFileSuggestions(result.Issues, result.Enhancements)

	o.progress(ctx, j.ID, "generating patch")
	result.PatchText = o.generatePatch(ctx, j, capped, result.Issues, &result)
	if p, n := fixer.EnhancementPatch(result.Enhancements, files); n > 0 {
		result.EnhancementPatch = p
	}

	o.attachHosting(&result, j, files)

	if j.AutoIssue {
		o.progress(ctx, j.ID, "filing issues")
		o.fileIssue(ctx, j, &result)
	}
	if j.AutoPR && result.PatchText != "" && j.Token != "" {
		o.progress(ctx, j.ID, "opening pull request")
		o.openPR(ctx, j, &result)
	}
	if j.EmailTo != "" {
		o.progress(ctx, j.ID, "emailing report")
		o.emailReport(j, result)
	}

	return result, nil
}

func (o *Orchestrator) progress(ctx context.Context, id, msg string) {
	if err := o.store.SetProgress(ctx, id, msg); err != nil {
		o.logger.Warn("progress update failed", "job", id, "err", err)
	}
}

// batchFactor sizes provider batches relative to the per-file cap: an
// oversized repository becomes several detection calls instead of one
// overlong prompt.
const batchFactor = 4

// detectIssues asks the model batch by batch and falls back to textual
// heuristics when no batch produced a usable answer.
func (o *Orchestrator) detectIssues(ctx context.Context, j worker.Job, capped, full []scanner.File, result *audit.Result) []analysis.Issue {
	var issues []analysis.Issue
	answered := false

	for _, batch := range o.chunker.Batch(capped, batchFactor*o.cfg.PromptChunkChars) {
		resp, err := o.callAI(ctx, j, ai.BuildIssuePrompt(batch), result)
		if err != nil {
			o.logger.Warn("ai detection unavailable for batch", "job", j.ID, "err", err)
			continue
		}

		parsed, err := analysis.ParseIssues(resp.Content)
		if err != nil {
			o.logger.Warn("ai response unparseable for batch", "job", j.ID, "err", err)
			continue
		}
		issues = append(issues, parsed...)
		answered = true
	}

	if !answered {
		o.logger.Warn("no usable ai answer, using heuristics", "job", j.ID)
		return analysis.HeuristicIssues(full)
	}
	return issues
}

// generatePatch asks for a unified diff and keeps it only when the parser
// can see at least one file change in it.
func (o *Orchestrator) generatePatch(ctx context.Context, j worker.Job, capped []scanner.File, issues []analysis.Issue, result *audit.Result) string {
	if len(issues) == 0 {
		return ""
	}

	resp, err := o.callAI(ctx, j, ai.BuildPatchPrompt(capped, issues), result)
	if err != nil {
		o.logger.Warn("patch generation unavailable", "job", j.ID, "err", err)
		return ""
	}

	text := analysis.StripFences(resp.Content)
	if len(diff.Parse(text)) == 0 {
		o.logger.Warn("generated patch had no parseable changes", "job", j.ID)
		return ""
	}
	return text
}

func (o *Orchestrator) callAI(ctx context.Context, j worker.Job, prompt string, result *audit.Result) (ai.Response, error) {
	repo := j.FullName()

	// Rough token projection for the budget check; the provider reports the
	// real usage afterwards.
	projected := cost.EstimateUSD(o.configuredModel(), len(prompt)/4, 1024)
	ok, reason, err := o.guard.Allow(ctx, repo, j.ID, projected, time.Now())
	if err != nil {
		return ai.Response{}, fmt.Errorf("budget check: %w", err)
	}
	if !ok {
		scope := "daily"
		if strings.Contains(reason, "job") {
			scope = "job"
		}
		observability.BudgetBlocks.WithLabelValues(scope).Inc()
		return ai.Response{}, fmt.Errorf("budget: %s", reason)
	}

	if err := o.limits.Get(repo).Wait(ctx); err != nil {
		return ai.Response{}, fmt.Errorf("rate limit: %w", err)
	}

	var resp ai.Response
	start := time.Now()
	err = retry.Do(ctx, 2, time.Second, func() error {
		var genErr error
		resp, genErr = o.provider.Generate(ctx, ai.Request{Repo: repo, Prompt: prompt})
		return genErr
	})
	elapsed := time.Since(start).Seconds()

	observability.AICalls.WithLabelValues(resp.Provider).Inc()
	observability.AILatency.WithLabelValues(resp.Provider).Observe(elapsed)
	if err != nil {
		observability.AIErrors.WithLabelValues(resp.Provider).Inc()
		return ai.Response{}, err
	}

	usd := cost.EstimateUSD(resp.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	observability.AITokens.WithLabelValues(resp.Provider, resp.Model, "prompt").Add(float64(resp.Usage.PromptTokens))
	observability.AITokens.WithLabelValues(resp.Provider, resp.Model, "completion").Add(float64(resp.Usage.CompletionTokens))
	observability.AICostUSD.WithLabelValues(resp.Provider, resp.Model).Add(usd)
	if err := o.guard.Record(ctx, repo, j.ID, usd, time.Now()); err != nil {
		o.logger.Warn("spend record failed", "job", j.ID, "err", err)
	}

	result.Provider = resp.Provider
	result.Model = resp.Model
	result.CostUSD += usd

	return resp, nil
}

func (o *Orchestrator) configuredModel() string {
	if o.cfg.AIProvider == "openai" {
		return o.cfg.OpenAIModel
	}
	return o.cfg.GeminiModel
}

func (o *Orchestrator) attachHosting(result *audit.Result, j worker.Job, files []scanner.File) {
	key := j.HostingProvider
	if key == "" {
		if keys := hosting.Suggest(files); len(keys) > 0 {
			key = keys[0]
		}
	}

	p, ok := hosting.Get(key)
	if !ok {
		return
	}
	result.Hosting = &p
	result.DeploymentPatch = fixer.DeploymentPatch(p, j.Repo, files)
}

// fileIssue opens one summary issue per distinct finding set, deduped so
// webhook re-audits do not spam the tracker.
func (o *Orchestrator) fileIssue(ctx context.Context, j worker.Job, result *audit.Result) {
	if len(result.Issues) == 0 {
		return
	}

	var sig strings.Builder
	for _, is := range result.Issues {
		fmt.Fprintf(&sig, "%s:%d:%s;", is.File, is.Line, is.Title)
	}
	key := j.FullName() + ":" + hash(sig.String())
	if o.dedup.Seen(ctx, key) {
		o.logger.Info("issue already filed for identical findings", "job", j.ID)
		return
	}

	issue, err := o.gh.CreateIssue(ctx, j.Owner, j.Repo, j.Token, github.IssueRequest{
		Title:  fmt.Sprintf("Code audit: %d issue(s) found", len(result.Issues)),
		Body:   report.Markdown(*result),
		Labels: []string{"code-audit"},
	})
	if err != nil {
		o.logger.Error("issue creation failed", "job", j.ID, "err", err)
		return
	}

	result.IssueURLs = append(result.IssueURLs, issue.HTMLURL)
	_ = o.dedup.Mark(ctx, key)
}

func (o *Orchestrator) openPR(ctx context.Context, j worker.Job, result *audit.Result) {
	pr, err := o.prs.CreateFixPR(ctx, gitops.PRRequest{
		Owner:     j.Owner,
		Repo:      j.Repo,
		Token:     j.Token,
		PatchText: result.PatchText,
		Title:     "Automated audit fixes",
		Body:      report.Markdown(*result),
	})
	if err != nil {
		o.logger.Error("pull request failed", "job", j.ID, "err", err)
		return
	}
	result.PullRequestURL = pr.HTMLURL
}

func (o *Orchestrator) emailReport(j worker.Job, result audit.Result) {
	md := report.Markdown(result)
	html, err := report.HTML(md)
	if err != nil {
		o.logger.Error("report html failed", "job", j.ID, "err", err)
		return
	}

	pdf, err := report.PDF(result)
	if err != nil {
		o.logger.Warn("report pdf failed, sending without attachment", "job", j.ID, "err", err)
		pdf = nil
	}

	subject := fmt.Sprintf("Code audit report: %s", result.Repo)
	if err := o.mailer.Send(j.EmailTo, subject, html, pdf); err != nil {
		o.logger.Error("report email failed", "job", j.ID, "err", err)
	}
}

func hash(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}
