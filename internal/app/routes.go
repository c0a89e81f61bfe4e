package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/analyze", s.analyze)
	mux.HandleFunc("POST /api/analyze-repo", s.analyzeRepo)
	mux.HandleFunc("GET /api/results/{id}", s.results)

	mux.HandleFunc("POST /api/issue", s.createIssue)
	mux.HandleFunc("POST /api/pr", s.createFixPR)
	mux.HandleFunc("POST /api/pr-enhancements", s.createEnhancementPR)
	mux.HandleFunc("POST /api/pr-deployment", s.createDeploymentPR)
	mux.HandleFunc("POST /api/check-pr-access", s.checkPRAccess)

	mux.HandleFunc("GET /api/user/repos", s.userRepos)
	mux.HandleFunc("GET /api/github/search", s.searchRepos)
	mux.HandleFunc("GET /api/repo/{owner}/{name}", s.repoInfo)

	mux.HandleFunc("GET /api/hosting/providers", s.hostingProviders)
	mux.HandleFunc("GET /api/hosting/provider/{name}", s.hostingProvider)
	mux.HandleFunc("GET /api/hosting/suggest", s.hostingSuggest)

	mux.HandleFunc("POST /api/send-report", s.sendReport)
	mux.HandleFunc("POST /api/download-report/{id}", s.downloadReport)

	if s.deps.Webhook != nil {
		mux.HandleFunc("POST /api/webhook", s.deps.Webhook.Handle)
	}

	mux.HandleFunc("GET /auth/login", s.authLogin)
	mux.HandleFunc("GET /auth/callback", s.authCallback)
	mux.HandleFunc("GET /auth/user", s.authUser)

	return mux
}
