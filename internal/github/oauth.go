package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"code-auditor/internal/config"
)

// OAuth drives the GitHub web flow: redirect the browser out, exchange the
// returned code for a user access token.
type OAuth struct {
	cfg  *config.Config
	http *http.Client
}

func NewOAuth(cfg *config.Config) *OAuth {
	return &OAuth{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthorizeURL is where the login endpoint sends the browser.
func (o *OAuth) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", o.cfg.GithubClientID)
	q.Set("redirect_uri", o.cfg.GithubOAuthCallback)
	q.Set("scope", "repo read:user user:email")
	q.Set("state", state)
	return "https://github.com/login/oauth/authorize?" + q.Encode()
}

// ExchangeCode trades the callback code for an access token.
func (o *OAuth) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", o.cfg.GithubClientID)
	form.Set("client_secret", o.cfg.GithubClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", o.cfg.GithubOAuthCallback)

	req, err := http.NewRequestWithContext(ctx, "POST",
		"https://github.com/login/oauth/access_token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build exchange request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := o.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("oauth exchange status %d: %s", res.StatusCode, string(msg))
	}

	var r struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
		ErrorDesc   string `json:"error_description"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("decode exchange response: %w", err)
	}
	if r.Error != "" {
		return "", fmt.Errorf("oauth exchange: %s: %s", r.Error, r.ErrorDesc)
	}
	if r.AccessToken == "" {
		return "", fmt.Errorf("empty access token")
	}

	return r.AccessToken, nil
}
