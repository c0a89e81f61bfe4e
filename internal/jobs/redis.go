package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const jobTTL = 24 * time.Hour

// RedisStore keeps job records in redis so results survive restarts and
// multiple workers can share one view.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func key(id string) string {
	return "audit:job:" + id
}

func (s *RedisStore) put(ctx context.Context, r Record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	return s.rdb.Set(ctx, key(r.ID), b, jobTTL).Err()
}

func (s *RedisStore) fetch(ctx context.Context, id string) (Record, bool, error) {
	raw, err := s.rdb.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}

	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Record{}, false, fmt.Errorf("decode job: %w", err)
	}
	return r, true, nil
}

func (s *RedisStore) Create(ctx context.Context, id, repo string) error {
	return s.put(ctx, Record{
		ID:        id,
		Repo:      repo,
		Status:    StatusRunning,
		Progress:  "queued",
		StartedAt: time.Now(),
	})
}

func (s *RedisStore) SetProgress(ctx context.Context, id, progress string) error {
	r, ok, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unknown job %s", id)
	}
	r.Progress = progress
	return s.put(ctx, r)
}

func (s *RedisStore) Complete(ctx context.Context, id string, result any) error {
	r, ok, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unknown job %s", id)
	}
	r.Status = StatusDone
	r.Progress = "complete"
	r.Result = result
	r.FinishedAt = time.Now()
	return s.put(ctx, r)
}

func (s *RedisStore) Fail(ctx context.Context, id, msg string) error {
	r, ok, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unknown job %s", id)
	}
	r.Status = StatusError
	r.Error = msg
	r.FinishedAt = time.Now()
	return s.put(ctx, r)
}

func (s *RedisStore) Get(ctx context.Context, id string) (Record, bool, error) {
	return s.fetch(ctx, id)
}
