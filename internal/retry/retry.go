package retry

import (
	"context"
	"time"
)

type Fn func() error

// Do runs fn up to attempts times, doubling the wait between tries. The
// context is honored both before a try and during the wait.
func Do(ctx context.Context, attempts int, wait time.Duration, fn Fn) error {

	var err error

	for i := 0; i < attempts; i++ {

		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}

		if i == attempts-1 {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		wait = wait * 2
	}

	return err
}
