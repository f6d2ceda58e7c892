package upstream

import (
	"context"
	"sync"
	"time"
)

// rateLimiter is a token bucket refilled at a fixed rate
type rateLimiter struct {
	tokens chan struct{}
	stop   chan struct{}
	once   sync.Once
}

// maxRequestsPerSecond bounds both the bucket size and the refill rate
const maxRequestsPerSecond = 1000

func newRateLimiter(requestsPerSecond int) *rateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if requestsPerSecond > maxRequestsPerSecond {
		requestsPerSecond = maxRequestsPerSecond
	}

	r := &rateLimiter{
		tokens: make(chan struct{}, requestsPerSecond),
		stop:   make(chan struct{}),
	}

	// Fill the bucket initially
	for i := 0; i < requestsPerSecond; i++ {
		r.tokens <- struct{}{}
	}

	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(requestsPerSecond))
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				select {
				case r.tokens <- struct{}{}:
				default:
				}
			case <-r.stop:
				return
			}
		}
	}()

	return r
}

// Wait blocks until a token is available or ctx is done
func (r *rateLimiter) Wait(ctx context.Context) error {
	select {
	case <-r.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends the refill goroutine
func (r *rateLimiter) Stop() {
	r.once.Do(func() { close(r.stop) })
}
