package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache that sits in front of
// the airport directory endpoints.  When Enabled is false or no Redis client
// is configured, caching is disabled.  Only successful responses to the
// listed Methods are stored, for TTL, under keys built with Prefix.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// DefaultCacheTTL applies when CACHE_TTL is unset or not positive.
const DefaultCacheTTL = 10 * time.Minute

// LoadCacheConfig reads CACHE_* variables.  The airport dataset never changes
// while the process runs, so the default TTL is generous.
func LoadCacheConfig() CacheConfig {
	ttl := envDur("CACHE_TTL", DefaultCacheTTL)
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          ttl,
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
