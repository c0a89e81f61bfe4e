package dedup

import "context"

// Store remembers finding signatures that already produced a GitHub issue,
// so a webhook re-audit of an unchanged repository files nothing new.
type Store interface {
	Seen(ctx context.Context, key string) bool
	Mark(ctx context.Context, key string) error
}
