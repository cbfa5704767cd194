package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores recognizer payloads keyed by content hash so repeated
// checks of the same document skip the expensive recognition call.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from arbitrary content
func Key(content string) string {
	hash := sha256.Sum256([]byte(content))
	return "termsheet:v1:" + hex.EncodeToString(hash[:])
}
