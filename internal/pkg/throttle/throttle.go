// Package throttle counts failed authentication attempts per client in
// fixed windows and blocks clients that exceed the threshold.
package throttle

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aionhq/gate/cache"
	"github.com/aionhq/gate/pkg/log"
)

// Counter tracks failures for one client within the current window.
// The window boundary is fixed at the first failure; later failures
// increment the count without extending it.
type Counter struct {
	Count        int       `json:"count"`
	WindowExpiry time.Time `json:"window_expiry"`
}

type Throttle struct {
	cache     cache.Cache
	threshold int
	window    time.Duration
	logger    log.StdLogger
}

func NewThrottle(cache cache.Cache, threshold int, window time.Duration, logger log.StdLogger) *Throttle {
	return &Throttle{
		cache:     cache,
		threshold: threshold,
		window:    window,
		logger:    logger,
	}
}

func throttleKey(clientKey string) string {
	return fmt.Sprintf("throttle:%s", clientKey)
}

// Check reports whether the client is currently blocked and, if so,
// the remaining window in whole seconds. Store failures never block a
// request; an unreachable counter store degrades to no throttling.
func (t *Throttle) Check(ctx context.Context, clientKey string) (bool, int) {
	var counter Counter
	err := t.cache.Get(ctx, throttleKey(clientKey), &counter)
	if err != nil {
		t.logger.WithError(err).Error("throttle: counter lookup failed, allowing request")
		return false, 0
	}

	if counter.Count < t.threshold {
		return false, 0
	}

	remaining := time.Until(counter.WindowExpiry)
	if remaining <= 0 {
		return false, 0
	}

	retryAfter := int(math.Ceil(remaining.Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	return true, retryAfter
}

// RecordFailure increments the client's failure counter, starting a new
// window if none is active. Successful authentication does not reset
// the counter; only window expiry clears it.
func (t *Throttle) RecordFailure(ctx context.Context, clientKey string) {
	key := throttleKey(clientKey)

	var counter Counter
	err := t.cache.Get(ctx, key, &counter)
	if err != nil {
		t.logger.WithError(err).Error("throttle: counter lookup failed, skipping record")
		return
	}

	if counter.Count == 0 || time.Now().After(counter.WindowExpiry) {
		counter = Counter{Count: 1, WindowExpiry: time.Now().Add(t.window)}
		if err := t.cache.Set(ctx, key, &counter, t.window); err != nil {
			t.logger.WithError(err).Error("throttle: failed to start window")
		}
		return
	}

	counter.Count++
	ttl := time.Until(counter.WindowExpiry)
	if ttl <= 0 {
		return
	}
	if err := t.cache.Set(ctx, key, &counter, ttl); err != nil {
		t.logger.WithError(err).Error("throttle: failed to record failure")
	}
}
