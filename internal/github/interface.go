package github

import "context"

type Client interface {
	DownloadZipball(ctx context.Context, owner, repo, token string) ([]byte, error)
	RepoInfo(ctx context.Context, owner, repo, token string) (Repository, error)
	CheckAccess(ctx context.Context, owner, repo, token string) (bool, error)
	ListUserRepos(ctx context.Context, token string) ([]Repository, error)
	SearchUserRepos(ctx context.Context, token, query string) ([]Repository, error)
	AuthenticatedUser(ctx context.Context, token string) (User, error)
	CreateIssue(ctx context.Context, owner, repo, token string, req IssueRequest) (Issue, error)
	CreatePullRequest(ctx context.Context, owner, repo, token string, req PullRequestRequest) (PullRequest, error)
	DefaultBranch(ctx context.Context, owner, repo, token string) (string, error)
}
