package app

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

func (s *Server) authLogin(w http.ResponseWriter, r *http.Request) {
	if s.cfg.GithubClientID == "" {
		httpError(w, http.StatusServiceUnavailable, "github oauth not configured")
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   600,
	})

	http.Redirect(w, r, s.deps.OAuth.AuthorizeURL(state), http.StatusFound)
}

func (s *Server) authCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		httpError(w, http.StatusBadRequest, "missing code")
		return
	}

	if cookie, err := r.Cookie("oauth_state"); err != nil || cookie.Value != r.URL.Query().Get("state") {
		httpError(w, http.StatusUnauthorized, "state mismatch")
		return
	}

	token, err := s.deps.OAuth.ExchangeCode(r.Context(), code)
	if err != nil {
		s.logger.Error("oauth exchange failed", "err", err)
		httpError(w, http.StatusBadGateway, "oauth exchange failed")
		return
	}

	// The SPA finishes login client side; hand the token over in the fragment
	// so it never hits server logs.
	redirect := s.cfg.FrontendURL + "/#token=" + url.QueryEscape(token)
	http.Redirect(w, r, redirect, http.StatusFound)
}

func (s *Server) authUser(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}

	user, err := s.deps.Github.AuthenticatedUser(r.Context(), token)
	if err != nil {
		httpError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}
