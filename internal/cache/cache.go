// Package cache memoises parsed requirement corpora so batch runs do
// not re-parse workbooks that appear more than once.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// Cache defines the caching interface used by the corpus loader.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// FileKey generates a cache key for a spreadsheet from its path and
// modification time, so an edited file never serves stale rows.
func FileKey(path string) string {
	var stamp string
	if info, err := os.Stat(path); err == nil {
		stamp = fmt.Sprintf("%d:%d", info.ModTime().UnixNano(), info.Size())
	}
	hash := sha256.Sum256([]byte(path + "|" + stamp))
	return "canonry:v1:" + hex.EncodeToString(hash[:])
}
