package orchestrator

import (
	"context"
	"errors"
	"testing"

	"code-auditor/internal/ai"
	"code-auditor/internal/audit"
	"code-auditor/internal/github"
	"code-auditor/internal/jobs"
)

func resultOf(t *testing.T, rec jobs.Record) audit.Result {
	t.Helper()
	result, ok := rec.Result.(audit.Result)
	if !ok {
		t.Fatalf("result has unexpected type %T", rec.Result)
	}
	return result
}

type failingProvider struct{}

func (failingProvider) Generate(context.Context, ai.Request) (ai.Response, error) {
	return ai.Response{}, errors.New("provider down")
}

type brokenGithub struct {
	github.Client
}

func (brokenGithub) DownloadZipball(context.Context, string, string, string) ([]byte, error) {
	return nil, errors.New("repo not found")
}
