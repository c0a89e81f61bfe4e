package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"code-auditor/internal/audit"
	"code-auditor/internal/github"
	"code-auditor/internal/gitops"
	"code-auditor/internal/hosting"
	"code-auditor/internal/report"
	"code-auditor/internal/scanner"
	"code-auditor/internal/worker"

	"github.com/google/uuid"
)

type analyzeRequest struct {
	RepoURL         string `json:"repo_url"`
	Owner           string `json:"owner"`
	Repo            string `json:"repo"`
	Token           string `json:"github_token"`
	Language        string `json:"language"`
	AutoIssue       bool   `json:"auto_issue"`
	AutoPR          bool   `json:"auto_pr"`
	HostingProvider string `json:"hosting_provider"`
	Email           string `json:"email"`
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := readJSON(r, &req); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	owner, repo, err := github.ParseRepoURL(req.RepoURL)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.enqueueAudit(w, r, req, owner, repo)
}

func (s *Server) analyzeRepo(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := readJSON(r, &req); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Owner == "" || req.Repo == "" {
		httpError(w, http.StatusBadRequest, "owner and repo are required")
		return
	}

	s.enqueueAudit(w, r, req, req.Owner, req.Repo)
}

func (s *Server) enqueueAudit(w http.ResponseWriter, r *http.Request, req analyzeRequest, owner, repo string) {
	j := worker.Job{
		ID:              uuid.NewString(),
		Owner:           owner,
		Repo:            repo,
		Token:           req.Token,
		Language:        req.Language,
		AutoIssue:       req.AutoIssue,
		AutoPR:          req.AutoPR,
		HostingProvider: req.HostingProvider,
		EmailTo:         req.Email,
	}

	ctx := r.Context()
	if err := s.deps.Store.Create(ctx, j.ID, j.FullName()); err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.deps.Queue.Push(ctx, j); err != nil {
		httpError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	s.logger.Info("audit queued", "job", j.ID, "repo", j.FullName())
	writeJSON(w, http.StatusAccepted, map[string]string{
		"analysis_id": j.ID,
		"status":      "running",
	})
}

func (s *Server) results(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, ok, err := s.deps.Store.Get(r.Context(), id)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		httpError(w, http.StatusNotFound, "unknown analysis id")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

type issueRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Token string `json:"github_token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *Server) createIssue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := readJSON(r, &req); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	issue, err := s.deps.Github.CreateIssue(r.Context(), req.Owner, req.Repo, req.Token, github.IssueRequest{
		Title:  req.Title,
		Body:   req.Body,
		Labels: []string{"code-audit"},
	})
	if err != nil {
		httpError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, issue)
}

type prRequest struct {
	AnalysisID string `json:"analysis_id"`
	Owner      string `json:"owner"`
	Repo       string `json:"repo"`
	Token      string `json:"github_token"`
}

// patchOf selects which generated patch a PR endpoint publishes.
type patchOf func(audit.Result) string

func (s *Server) createFixPR(w http.ResponseWriter, r *http.Request) {
	s.openPRFrom(w, r, "Automated audit fixes", func(res audit.Result) string { return res.PatchText })
}

func (s *Server) createEnhancementPR(w http.ResponseWriter, r *http.Request) {
	s.openPRFrom(w, r, "Automated code enhancements", func(res audit.Result) string { return res.EnhancementPatch })
}

func (s *Server) createDeploymentPR(w http.ResponseWriter, r *http.Request) {
	s.openPRFrom(w, r, "Add deployment configuration", func(res audit.Result) string { return res.DeploymentPatch })
}

func (s *Server) openPRFrom(w http.ResponseWriter, r *http.Request, title string, pick patchOf) {
	var req prRequest
	if err := readJSON(r, &req); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, ok := s.loadResult(w, r, req.AnalysisID)
	if !ok {
		return
	}

	patchText := pick(result)
	if patchText == "" {
		httpError(w, http.StatusConflict, "analysis has no patch of this kind")
		return
	}

	pr, err := s.deps.PRs.CreateFixPR(r.Context(), gitops.PRRequest{
		Owner:     req.Owner,
		Repo:      req.Repo,
		Token:     req.Token,
		PatchText: patchText,
		Title:     title,
		Body:      report.Markdown(result),
	})
	if err != nil {
		httpError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, pr)
}

func (s *Server) checkPRAccess(w http.ResponseWriter, r *http.Request) {
	var req prRequest
	if err := readJSON(r, &req); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := s.deps.Github.CheckAccess(r.Context(), req.Owner, req.Repo, req.Token)
	if err != nil {
		httpError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"access": ok})
}

func (s *Server) userRepos(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}

	repos, err := s.deps.Github.ListUserRepos(r.Context(), token)
	if err != nil {
		httpError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

func (s *Server) searchRepos(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		httpError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	repos, err := s.deps.Github.SearchUserRepos(r.Context(), token, q)
	if err != nil {
		httpError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

func (s *Server) repoInfo(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	name := r.PathValue("name")

	info, err := s.deps.Github.RepoInfo(r.Context(), owner, name, optionalBearer(r))
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) hostingProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, hosting.All())
}

func (s *Server) hostingProvider(w http.ResponseWriter, r *http.Request) {
	p, ok := hosting.Get(r.PathValue("name"))
	if !ok {
		httpError(w, http.StatusNotFound, "unknown hosting provider")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) hostingSuggest(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("analysis_id")
	if id == "" {
		httpError(w, http.StatusBadRequest, "missing query parameter analysis_id")
		return
	}

	result, ok := s.loadResult(w, r, id)
	if !ok {
		return
	}

	// File paths from the findings are enough for a platform suggestion.
	var files []scanner.File
	for _, sg := range result.Suggestions {
		files = append(files, scanner.File{Path: sg.File})
	}
	for _, is := range result.Issues {
		files = append(files, scanner.File{Path: is.File})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"providers": hosting.Suggest(files),
	})
}

type sendReportRequest struct {
	AnalysisID string `json:"analysis_id"`
	Email      string `json:"email"`
}

func (s *Server) sendReport(w http.ResponseWriter, r *http.Request) {
	var req sendReportRequest
	if err := readJSON(r, &req); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" {
		httpError(w, http.StatusBadRequest, "email is required")
		return
	}

	result, ok := s.loadResult(w, r, req.AnalysisID)
	if !ok {
		return
	}

	md := report.Markdown(result)
	html, err := report.HTML(md)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	pdf, err := report.PDF(result)
	if err != nil {
		pdf = nil
	}

	subject := fmt.Sprintf("Code audit report: %s", result.Repo)
	if err := s.deps.Mailer.Send(req.Email, subject, html, pdf); err != nil {
		httpError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *Server) downloadReport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.loadResult(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	pdf, err := report.PDF(result)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="audit-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// loadResult fetches a completed analysis or writes the error response.
func (s *Server) loadResult(w http.ResponseWriter, r *http.Request, id string) (audit.Result, bool) {
	if id == "" {
		httpError(w, http.StatusBadRequest, "analysis_id is required")
		return audit.Result{}, false
	}

	rec, ok, err := s.deps.Store.Get(r.Context(), id)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return audit.Result{}, false
	}
	if !ok {
		httpError(w, http.StatusNotFound, "unknown analysis id")
		return audit.Result{}, false
	}

	switch result := rec.Result.(type) {
	case audit.Result:
		return result, true
	case nil:
		httpError(w, http.StatusConflict, fmt.Sprintf("analysis is %s", rec.Status))
		return audit.Result{}, false
	default:
		// Redis round-trips the result as generic JSON; re-decode it.
		b, err := json.Marshal(result)
		if err != nil {
			httpError(w, http.StatusInternalServerError, err.Error())
			return audit.Result{}, false
		}
		var out audit.Result
		if err := json.Unmarshal(b, &out); err != nil {
			httpError(w, http.StatusInternalServerError, err.Error())
			return audit.Result{}, false
		}
		return out, true
	}
}

func bearerToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := optionalBearer(r)
	if token == "" {
		httpError(w, http.StatusUnauthorized, "missing bearer token")
		return "", false
	}
	return token, true
}

func optionalBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func readJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
