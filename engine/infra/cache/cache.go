// Package cache provides the advisory list cache consumed by the read and
// write paths. Every operation is best-effort: failures are logged and
// swallowed so the cache can never affect a transaction's outcome.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is the narrow interface the domain layers consume.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns the value and a boolean indicating whether the key was found.
	Get(ctx context.Context, key string) (string, bool)

	// Set adds a value to the cache with the specified expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration)

	// DeleteByPrefix removes all keys with the given prefix.
	DeleteByPrefix(ctx context.Context, prefix string)
}

// Predefined cache key prefixes for the cached entity surfaces.
const (
	PrefixUserList  = "users:list:v1:"
	PrefixGroupList = "groups:list:v1:"
	PrefixUser      = "user:v1:"
	PrefixGroup     = "group:v1:"
)

// GenerateKey creates a cache key from a prefix and a set of parameters.
// It joins all parameters with a colon and appends them to the prefix.
func GenerateKey(prefix string, params ...any) string {
	parts := make([]string, len(params)+1)
	parts[0] = strings.TrimSuffix(prefix, ":")
	for i, param := range params {
		parts[i+1] = fmt.Sprintf("%v", param)
	}
	return strings.Join(parts, ":")
}
