package gitops

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"code-auditor/internal/diff"
	"code-auditor/internal/github"
	"code-auditor/internal/observability"
	"code-auditor/internal/patch"

	"github.com/google/uuid"
)

// GitOps turns a generated patch into a real pull request: clone, branch,
// replay the patch onto the working tree, commit, push, open the PR.
type GitOps struct {
	client github.Client
	logger *observability.Logger
}

func New(client github.Client, logger *observability.Logger) *GitOps {
	return &GitOps{client: client, logger: logger}
}

type PRRequest struct {
	Owner     string
	Repo      string
	Token     string
	PatchText string
	Title     string
	Body      string
}

func (g *GitOps) CreateFixPR(ctx context.Context, req PRRequest) (github.PullRequest, error) {
	changes := diff.Parse(req.PatchText)
	if len(changes) == 0 {
		return github.PullRequest{}, fmt.Errorf("patch contains no file changes")
	}

	dir, err := os.MkdirTemp("", "audit-pr-*")
	if err != nil {
		return github.PullRequest{}, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	cloneURL := fmt.Sprintf("https://x-access-token:%s@github.com/%s/%s.git", req.Token, req.Owner, req.Repo)
	if err := g.run(ctx, "", "clone", "--depth", "1", cloneURL, dir); err != nil {
		return github.PullRequest{}, err
	}

	branch := "ai-fix-" + uuid.NewString()[:8]
	if err := g.run(ctx, dir, "checkout", "-b", branch); err != nil {
		return github.PullRequest{}, err
	}

	stats, err := patch.ApplyToTree(dir, req.PatchText)
	if err != nil {
		return github.PullRequest{}, fmt.Errorf("apply patch: %w", err)
	}
	for _, c := range changes {
		observability.PatchFilesApplied.WithLabelValues(string(c.Kind())).Inc()
	}
	observability.PatchHunksSkipped.Add(float64(stats.SkippedHunks))
	if stats.SkippedHunks > 0 {
		g.logger.Warn("patch hunks skipped", "repo", req.Owner+"/"+req.Repo, "count", stats.SkippedHunks)
	}

	if err := g.run(ctx, dir, "add", "-A"); err != nil {
		return github.PullRequest{}, err
	}
	if err := g.run(ctx, dir,
		"-c", "user.name=Code Auditor",
		"-c", "user.email=audit@localhost",
		"commit", "-m", req.Title); err != nil {
		return github.PullRequest{}, err
	}
	if err := g.run(ctx, dir, "push", "origin", branch); err != nil {
		return github.PullRequest{}, err
	}

	base, err := g.client.DefaultBranch(ctx, req.Owner, req.Repo, req.Token)
	if err != nil {
		base = "main"
	}

	pr, err := g.client.CreatePullRequest(ctx, req.Owner, req.Repo, req.Token, github.PullRequestRequest{
		Title: req.Title,
		Head:  branch,
		Base:  base,
		Body:  req.Body,
	})
	if err != nil {
		return github.PullRequest{}, err
	}

	g.logger.Info("fix pr opened",
		"repo", req.Owner+"/"+req.Repo,
		"branch", branch,
		"files", len(changes),
	)
	return pr, nil
}

// run shells out to git. Output is folded into the error with the token
// scrubbed so clone URLs never leak into logs.
func (g *GitOps) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		return fmt.Errorf("git %s: %w: %s", args[0], err, scrubTokens(msg))
	}
	return nil
}

func scrubTokens(s string) string {
	const marker = "x-access-token:"

	var b strings.Builder
	for {
		start := strings.Index(s, marker)
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}

		b.WriteString(s[:start])
		b.WriteString(marker + "***")

		rest := s[start+len(marker):]
		at := strings.Index(rest, "@")
		if at < 0 {
			return b.String()
		}
		s = rest[at:]
	}
}
