// Package tokencache provides a lookaside cache for courier auth tokens.
package tokencache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Cache is the token cache backend. The backend is an external collaborator;
// implementations may be in-process or remote.
type Cache interface {
	// Get returns the cached value for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// ErrCacheMiss indicates the key is absent or expired.
var ErrCacheMiss = errors.New("token cache miss")

// Key builds the cache key for a source/account token.
func Key(source, accountID string) string {
	return fmt.Sprintf("channel:token:%s:%s", source, accountID)
}
