// Package cache stores fetched page, robots.txt and sitemap bodies between
// audits. The analysis core never touches it; caching lives entirely at the
// pipeline layer.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage contract shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key for a URL. The version segment invalidates
// everything when the stored format changes.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "pagelint:v1:" + hex.EncodeToString(sum[:])
}
