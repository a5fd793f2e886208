// Package tokencache holds a lazily refreshed access token for outbound
// integrations. The cache is an explicit dependency rather than a module-level
// singleton: construct one per integration and inject it into the client that
// needs it. Concurrent readers hitting an expired token trigger exactly one
// refresh via singleflight; the others wait for its result.
package tokencache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RefreshFunc obtains a fresh token and its expiry from the token issuer.
type RefreshFunc func(ctx context.Context) (value string, expiresAt time.Time, err error)

// TokenCache caches a {value, expiresAt} pair and refreshes it on read once
// it is within the expiry skew of expiring. Safe for concurrent use.
type TokenCache struct {
	refresh RefreshFunc
	skew    time.Duration
	now     func() time.Time

	mu        sync.RWMutex
	value     string
	expiresAt time.Time

	group singleflight.Group
}

// NewTokenCache creates a cache around refresh. skew is subtracted from the
// token's expiry so a token is renewed slightly before it actually expires;
// a zero skew is allowed.
func NewTokenCache(refresh RefreshFunc, skew time.Duration) *TokenCache {
	return &TokenCache{
		refresh: refresh,
		skew:    skew,
		now:     time.Now,
	}
}

// Get returns the cached token, refreshing it first when absent or expired.
func (c *TokenCache) Get(ctx context.Context) (string, error) {
	c.mu.RLock()
	value, expiresAt := c.value, c.expiresAt
	c.mu.RUnlock()

	if value != "" && c.now().Before(expiresAt.Add(-c.skew)) {
		return value, nil
	}

	// Single-flight: concurrent expired reads share one refresh call.
	result, err, _ := c.group.Do("token", func() (any, error) {
		c.mu.RLock()
		value, expiresAt := c.value, c.expiresAt
		c.mu.RUnlock()
		if value != "" && c.now().Before(expiresAt.Add(-c.skew)) {
			return value, nil
		}

		fresh, freshExpiry, refreshErr := c.refresh(ctx)
		if refreshErr != nil {
			return "", refreshErr
		}

		c.mu.Lock()
		c.value = fresh
		c.expiresAt = freshExpiry
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

// Invalidate drops the cached token so the next Get refreshes.
// Use it when the remote side rejects a token before its recorded expiry.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.value = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}
