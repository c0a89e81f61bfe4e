package github

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"code-auditor/internal/config"
	"code-auditor/internal/observability"
)

// AuditQueue is the only thing the webhook knows about job scheduling.
type AuditQueue interface {
	EnqueueAudit(ctx context.Context, owner, repo string) error
}

type pushEvent struct {
	Ref        string     `json:"ref"`
	Repository Repository `json:"repository"`
}

// WebhookHandler re-audits a repository when new commits land on its
// default branch.
type WebhookHandler struct {
	cfg    *config.Config
	logger *observability.Logger
	queue  AuditQueue
}

func NewWebhookHandler(cfg *config.Config, logger *observability.Logger, queue AuditQueue) *WebhookHandler {
	return &WebhookHandler{
		cfg:    cfg,
		logger: logger,
		queue:  queue,
	}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if !h.verifySignature(r.Header.Get("X-Hub-Signature-256"), payload) {
		h.logger.Error("invalid github signature")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	event := r.Header.Get("X-GitHub-Event")
	h.logger.Info("github event received", "event", event)

	switch event {
	case "push":
		h.handlePush(r.Context(), payload)
	default:
		h.logger.Info("event ignored", "event", event)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) handlePush(ctx context.Context, payload []byte) {
	var ev pushEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		h.logger.Error("invalid push payload", "err", err)
		return
	}

	if ev.Ref != "refs/heads/"+ev.Repository.DefaultBranch {
		h.logger.Info("push ignored", "ref", ev.Ref)
		return
	}

	owner := ev.Repository.Owner.Login
	if owner == "" || ev.Repository.Name == "" {
		return
	}

	if err := h.queue.EnqueueAudit(ctx, owner, ev.Repository.Name); err != nil {
		h.logger.Error("enqueue re-audit failed", "err", err)
		return
	}

	h.logger.Info("re-audit enqueued", "repo", ev.Repository.FullName)
}

func (h *WebhookHandler) verifySignature(signature string, body []byte) bool {
	if h.cfg.GithubWebhookSecret == "" {
		h.logger.Error("github webhook secret not configured")
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.cfg.GithubWebhookSecret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
