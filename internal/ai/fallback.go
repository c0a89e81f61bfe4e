package ai

import "context"

type FallbackProvider struct {
	primary   Provider
	secondary Provider
}

func NewFallback(p1, p2 Provider) *FallbackProvider {
	return &FallbackProvider{
		primary:   p1,
		secondary: p2,
	}
}

func (f *FallbackProvider) Generate(ctx context.Context, r Request) (Response, error) {

	resp, err := f.primary.Generate(ctx, r)
	if err == nil {
		return resp, nil
	}

	return f.secondary.Generate(ctx, r)
}
