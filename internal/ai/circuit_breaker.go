package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

type CircuitBreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

func NewCircuitBreaker(p Provider) *CircuitBreakerProvider {

	settings := gobreaker.Settings{
		Name:        "ai-provider",
		MaxRequests: 3,
		Interval:    0,
		Timeout:     30 * time.Second,
	}

	return &CircuitBreakerProvider{
		provider: p,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

func (c *CircuitBreakerProvider) Generate(ctx context.Context, r Request) (Response, error) {

	out, err := c.cb.Execute(func() (interface{}, error) {
		return c.provider.Generate(ctx, r)
	})

	if err != nil {
		return Response{}, err
	}

	resp, ok := out.(Response)
	if !ok {
		return Response{}, fmt.Errorf("unexpected circuit breaker response type")
	}

	return resp, nil
}
