package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const GlobalKeyPrefix = "quizforge"

// GenerateCacheKey builds a namespaced cache key for a service, object type,
// and identifier. Optional params are joined by "_" and appended.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// URLKey returns the cache key for an extracted URL. URLs are hashed so
// arbitrary user input never appears verbatim in a key.
func URLKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return GenerateCacheKey("extractor", "url", hex.EncodeToString(sum[:16]))
}
