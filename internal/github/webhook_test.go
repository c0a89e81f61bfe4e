package github

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"strings"
	"testing"

	"code-auditor/internal/config"
	"code-auditor/internal/observability"
)

type fakeQueue struct {
	owner string
	repo  string
	calls int
}

func (f *fakeQueue) EnqueueAudit(_ context.Context, owner, repo string) error {
	f.owner, f.repo = owner, repo
	f.calls++
	return nil
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func newWebhook(q AuditQueue) *WebhookHandler {
	cfg := &config.Config{GithubWebhookSecret: "topsecret"}
	return NewWebhookHandler(cfg, observability.NewLogger("error"), q)
}

func TestWebhook_PushEnqueuesReaudit(t *testing.T) {
	body := `{"ref":"refs/heads/main","repository":{"name":"demo","full_name":"octo/demo","default_branch":"main","owner":{"login":"octo"}}}`

	q := &fakeQueue{}
	h := newWebhook(q)

	req := httptest.NewRequest("POST", "/api/webhook", strings.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", sign("topsecret", []byte(body)))
	req.Header.Set("X-GitHub-Event", "push")

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if q.calls != 1 || q.owner != "octo" || q.repo != "demo" {
		t.Fatalf("expected one enqueue for octo/demo, got %+v", q)
	}
}

func TestWebhook_NonDefaultBranchIgnored(t *testing.T) {
	body := `{"ref":"refs/heads/feature","repository":{"name":"demo","default_branch":"main","owner":{"login":"octo"}}}`

	q := &fakeQueue{}
	h := newWebhook(q)

	req := httptest.NewRequest("POST", "/api/webhook", strings.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", sign("topsecret", []byte(body)))
	req.Header.Set("X-GitHub-Event", "push")

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if q.calls != 0 {
		t.Fatalf("feature branch push should not enqueue")
	}
}

func TestWebhook_BadSignatureRejected(t *testing.T) {
	q := &fakeQueue{}
	h := newWebhook(q)

	req := httptest.NewRequest("POST", "/api/webhook", strings.NewReader(`{}`))
	req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")
	req.Header.Set("X-GitHub-Event", "push")

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if q.calls != 0 {
		t.Fatalf("unauthorized request should not enqueue")
	}
}
