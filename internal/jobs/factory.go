package jobs

import "code-auditor/internal/config"

func NewStore(cfg *config.Config) Store {
	if cfg.JobStore == "redis" {
		return NewRedisStore(cfg.RedisAddr)
	}
	return NewMemoryStore()
}
