package worker

import "code-auditor/internal/config"

func NewQueue(cfg *config.Config) Queue {
	if cfg.QueueType == "redis" {
		return NewRedisQueue(cfg.RedisAddr, "code_auditor_jobs")
	}
	return NewMemoryQueue(100)
}
