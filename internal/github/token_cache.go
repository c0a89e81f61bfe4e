package github

import (
	"sync"
	"time"
)

// tokenCache holds the current installation token. GitHub issues them with a
// 1h lifetime; callers set a shorter TTL so a token is never used at the edge
// of expiry mid-audit.
type tokenCache struct {
	mu      sync.Mutex
	value   string
	expires time.Time
}

func (t *tokenCache) Get() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.value != "" && time.Now().Before(t.expires) {
		return t.value, true
	}
	return "", false
}

func (t *tokenCache) Set(value string, ttl time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.value = value
	t.expires = time.Now().Add(ttl)
}
