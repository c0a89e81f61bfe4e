package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"code-auditor/internal/config"
	"code-auditor/internal/observability"
)

const apiBase = "https://api.github.com"

type client struct {
	cfg    *config.Config
	logger *observability.Logger
	http   *http.Client
	app    *appAuth
}

func NewClient(cfg *config.Config, logger *observability.Logger) Client {
	return &client{
		cfg:    cfg,
		logger: logger,
		http:   &http.Client{Timeout: 30 * time.Second},
		app:    newAppAuth(cfg),
	}
}

// resolveToken prefers the caller's OAuth token and falls back to an
// installation token when the service runs as a GitHub App.
func (c *client) resolveToken(ctx context.Context, token string) (string, error) {
	if token != "" {
		return token, nil
	}
	if c.app.configured() {
		return c.app.installationToken(ctx, c.http)
	}
	return "", nil
}

func (c *client) do(ctx context.Context, method, url, token string, body, out any) error {
	return withRetry(3, func() error {
		var rd io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("marshal request: %w", err)
			}
			rd = bytes.NewReader(b)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		res, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
			return fmt.Errorf("github status %d: %s", res.StatusCode, string(msg))
		}
		if out == nil {
			return nil
		}
		return json.NewDecoder(res.Body).Decode(out)
	})
}

func (c *client) DownloadZipball(ctx context.Context, owner, repo, token string) ([]byte, error) {
	token, err := c.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = withRetry(3, func() error {
		url := fmt.Sprintf("%s/repos/%s/%s/zipball", apiBase, owner, repo)
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		req.Header.Set("Accept", "application/vnd.github+json")

		res, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
			return fmt.Errorf("github zipball status %d: %s", res.StatusCode, string(msg))
		}

		data, err = io.ReadAll(res.Body)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("zipball downloaded", "repo", owner+"/"+repo, "bytes", len(data))
	return data, nil
}

func (c *client) RepoInfo(ctx context.Context, owner, repo, token string) (Repository, error) {
	token, err := c.resolveToken(ctx, token)
	if err != nil {
		return Repository{}, err
	}

	var r Repository
	url := fmt.Sprintf("%s/repos/%s/%s", apiBase, owner, repo)
	if err := c.do(ctx, "GET", url, token, nil, &r); err != nil {
		return Repository{}, err
	}
	return r, nil
}

func (c *client) CheckAccess(ctx context.Context, owner, repo, token string) (bool, error) {
	_, err := c.RepoInfo(ctx, owner, repo, token)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (c *client) ListUserRepos(ctx context.Context, token string) ([]Repository, error) {
	var all []Repository

	for page := 1; page <= 10; page++ {
		var batch []Repository
		url := fmt.Sprintf("%s/user/repos?per_page=100&page=%d&sort=updated", apiBase, page)
		if err := c.do(ctx, "GET", url, token, nil, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < 100 {
			break
		}
	}

	// Most starred first so the picker surfaces the interesting repos.
	sort.SliceStable(all, func(i, j int) bool { return all[i].Stars > all[j].Stars })
	return all, nil
}

func (c *client) SearchUserRepos(ctx context.Context, token, query string) ([]Repository, error) {
	me, err := c.AuthenticatedUser(ctx, token)
	if err != nil {
		return nil, err
	}

	var result struct {
		Items []Repository `json:"items"`
	}
	q := url.QueryEscape(fmt.Sprintf("%s user:%s", query, me.Login))
	u := fmt.Sprintf("%s/search/repositories?q=%s&per_page=50", apiBase, q)
	if err := c.do(ctx, "GET", u, token, nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

func (c *client) AuthenticatedUser(ctx context.Context, token string) (User, error) {
	var u User
	if err := c.do(ctx, "GET", apiBase+"/user", token, nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (c *client) CreateIssue(ctx context.Context, owner, repo, token string, req IssueRequest) (Issue, error) {
	token, err := c.resolveToken(ctx, token)
	if err != nil {
		return Issue{}, err
	}

	var issue Issue
	url := fmt.Sprintf("%s/repos/%s/%s/issues", apiBase, owner, repo)
	if err := c.do(ctx, "POST", url, token, req, &issue); err != nil {
		return Issue{}, err
	}

	observability.IssuesFiled.Inc()
	c.logger.Info("issue created", "repo", owner+"/"+repo, "number", issue.Number)
	return issue, nil
}

func (c *client) CreatePullRequest(ctx context.Context, owner, repo, token string, req PullRequestRequest) (PullRequest, error) {
	token, err := c.resolveToken(ctx, token)
	if err != nil {
		return PullRequest{}, err
	}

	var pr PullRequest
	url := fmt.Sprintf("%s/repos/%s/%s/pulls", apiBase, owner, repo)
	if err := c.do(ctx, "POST", url, token, req, &pr); err != nil {
		return PullRequest{}, err
	}

	observability.PullRequestsOpened.WithLabelValues("fix").Inc()
	c.logger.Info("pull request opened", "repo", owner+"/"+repo, "number", pr.Number)
	return pr, nil
}

func (c *client) DefaultBranch(ctx context.Context, owner, repo, token string) (string, error) {
	r, err := c.RepoInfo(ctx, owner, repo, token)
	if err != nil {
		return "", err
	}
	if r.DefaultBranch == "" {
		return "main", nil
	}
	return r.DefaultBranch, nil
}
