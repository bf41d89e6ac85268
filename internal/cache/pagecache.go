package cache

import (
	"context"
	"time"
)

// IndexPageKey is the cache key for the rendered global feed.
//
// The key is not parameterized by the ?page= query: within the TTL window
// every page of the index serves the first cached rendering. Changing the
// key shape changes what clients observe, so treat it as part of the
// contract.
const IndexPageKey = "index_page"

// IndexPageTTL is how long the global feed rendering stays cached.
const IndexPageTTL = 20 * time.Second

// GetPage returns the cached rendering for a page key, if present.
func GetPage(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	b, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// SetPage stores a rendered page body under key for the given TTL. Best effort:
// a write failure only means the next request renders again.
func SetPage(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	if ttl <= 0 {
		ttl = IndexPageTTL
	}
	_ = client.Set(ctx, key, body, ttl).Err()
}

// Clear drops every cached entry. Exposed for administrative and test paths
// that need rendered output to reflect the store immediately.
func Clear(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.FlushDB(ctx).Err()
}

// Healthy reports whether the cache backend is reachable.
func Healthy(ctx context.Context) bool {
	if client == nil {
		return false
	}
	return client.Ping(ctx).Err() == nil
}
