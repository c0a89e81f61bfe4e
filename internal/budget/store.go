package budget

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Store interface {
	AddSpend(ctx context.Context, repo, job string, usd float64, at time.Time) error
	GetJobSpend(ctx context.Context, repo, job string) (float64, error)
	GetDailySpend(ctx context.Context, day time.Time) (float64, error)
}

// Guard blocks AI calls once a single audit job or the whole day crosses its
// USD limit.
type Guard struct {
	enabled    bool
	dailyLimit float64
	jobLimit   float64
	store      Store
}

func NewGuard(enabled bool, dailyLimit, jobLimit float64, store Store) *Guard {
	return &Guard{
		enabled:    enabled,
		dailyLimit: dailyLimit,
		jobLimit:   jobLimit,
		store:      store,
	}
}

func (g *Guard) Enabled() bool {
	return g != nil && g.enabled
}

func (g *Guard) Allow(ctx context.Context, repo, job string, projectedCostUSD float64, now time.Time) (bool, string, error) {
	if g == nil || !g.enabled || g.store == nil {
		return true, "", nil
	}

	jobSpend, err := g.store.GetJobSpend(ctx, repo, job)
	if err != nil {
		return false, "", err
	}
	if g.jobLimit > 0 && jobSpend+projectedCostUSD > g.jobLimit {
		return false, fmt.Sprintf("job budget exceeded (limit=%.4f USD)", g.jobLimit), nil
	}

	daySpend, err := g.store.GetDailySpend(ctx, now)
	if err != nil {
		return false, "", err
	}
	if g.dailyLimit > 0 && daySpend+projectedCostUSD > g.dailyLimit {
		return false, fmt.Sprintf("daily budget exceeded (limit=%.4f USD)", g.dailyLimit), nil
	}

	return true, "", nil
}

func (g *Guard) Record(ctx context.Context, repo, job string, usd float64, now time.Time) error {
	if g == nil || !g.enabled || g.store == nil || usd <= 0 {
		return nil
	}
	return g.store.AddSpend(ctx, repo, job, usd, now)
}

type MemoryStore struct {
	mu    sync.Mutex
	byJob map[string]float64
	byDay map[string]float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byJob: make(map[string]float64),
		byDay: make(map[string]float64),
	}
}

func (m *MemoryStore) AddSpend(_ context.Context, repo, job string, usd float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byJob[jobKey(repo, job)] += usd
	m.byDay[dayKey(at)] += usd
	return nil
}

func (m *MemoryStore) GetJobSpend(_ context.Context, repo, job string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byJob[jobKey(repo, job)], nil
}

func (m *MemoryStore) GetDailySpend(_ context.Context, day time.Time) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byDay[dayKey(day)], nil
}

func jobKey(repo, job string) string {
	return fmt.Sprintf("%s#%s", repo, job)
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
