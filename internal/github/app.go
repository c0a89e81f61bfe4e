package github

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"code-auditor/internal/config"

	"github.com/golang-jwt/jwt/v4"
)

// appAuth mints installation tokens when the service is installed as a
// GitHub App. The token is cached for slightly less than its 1h lifetime.
type appAuth struct {
	cfg   *config.Config
	cache tokenCache
}

func newAppAuth(cfg *config.Config) *appAuth {
	return &appAuth{cfg: cfg}
}

func (a *appAuth) configured() bool {
	return a.cfg.GithubAppID != "" &&
		a.cfg.GithubInstallationID != "" &&
		a.cfg.GithubPrivateKeyPath != ""
}

func (a *appAuth) installationToken(ctx context.Context, hc *http.Client) (string, error) {
	if t, ok := a.cache.Get(); ok {
		return t, nil
	}

	signed, err := a.createJWT()
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(
		"https://api.github.com/app/installations/%s/access_tokens",
		a.cfg.GithubInstallationID,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+signed)
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("github token status %d: %s", res.StatusCode, string(msg))
	}

	var r struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if r.Token == "" {
		return "", fmt.Errorf("empty installation token")
	}

	a.cache.Set(r.Token, 50*time.Minute)
	return r.Token, nil
}

func (a *appAuth) createJWT() (string, error) {
	key, err := a.loadPrivateKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-30 * time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(9 * time.Minute)),
		Issuer:    a.cfg.GithubAppID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(key)
}

func (a *appAuth) loadPrivateKey() (*rsa.PrivateKey, error) {
	raw, err := os.ReadFile(a.cfg.GithubPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in private key")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}
	return key, nil
}
