package worker

import "context"

// Queue is the internal job transport between HTTP handlers and workers.
type Queue interface {
	Push(ctx context.Context, j Job) error
	Pop(ctx context.Context) (Job, error)
}

// Job carries everything one audit needs.
type Job struct {
	ID              string `json:"id"`
	Owner           string `json:"owner"`
	Repo            string `json:"repo"`
	Token           string `json:"token,omitempty"`
	Language        string `json:"language,omitempty"`
	AutoIssue       bool   `json:"auto_issue,omitempty"`
	AutoPR          bool   `json:"auto_pr,omitempty"`
	HostingProvider string `json:"hosting_provider,omitempty"`
	EmailTo         string `json:"email_to,omitempty"`
}

func (j Job) FullName() string {
	return j.Owner + "/" + j.Repo
}
