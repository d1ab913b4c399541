package redis

// Package redis provides Redis-based adapters for the jobtrail API.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/jobtrail/jobtrail/internal/domain/auth"
	"github.com/jobtrail/jobtrail/internal/ports"
)

// PrincipalCache stores verified principals in Redis keyed by token digest.
// Entries expire via Redis TTL; callers pass a TTL already capped at the
// token's remaining lifetime.
type PrincipalCache struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.PrincipalCache = (*PrincipalCache)(nil)

// NewPrincipalCache creates a Redis-backed principal cache.
func NewPrincipalCache(client redis.UniversalClient) *PrincipalCache {
	return &PrincipalCache{
		client: client,
		prefix: "principal:",
	}
}

// NewPrincipalCacheWithPrefix creates a principal cache with a custom key prefix.
func NewPrincipalCacheWithPrefix(client redis.UniversalClient, prefix string) *PrincipalCache {
	return &PrincipalCache{
		client: client,
		prefix: prefix,
	}
}

// Get implements ports.PrincipalCache.
func (c *PrincipalCache) Get(ctx context.Context, tokenDigest string) (domainauth.Principal, bool, error) {
	if tokenDigest == "" {
		return domainauth.Principal{}, false, nil
	}

	data, err := c.client.Get(ctx, c.prefix+tokenDigest).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Principal{}, false, nil
		}
		return domainauth.Principal{}, false, fmt.Errorf("redis get: %w", err)
	}

	var p domainauth.Principal
	if unmarshalErr := json.Unmarshal([]byte(data), &p); unmarshalErr != nil {
		return domainauth.Principal{}, false, fmt.Errorf("unmarshal principal: %w", unmarshalErr)
	}
	return p, true, nil
}

// Set implements ports.PrincipalCache. Entries with a non-positive TTL are
// not stored: an expired token must never produce a cache hit.
func (c *PrincipalCache) Set(ctx context.Context, tokenDigest string, p domainauth.Principal, ttl time.Duration) error {
	if tokenDigest == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal principal: %w", err)
	}
	return c.client.Set(ctx, c.prefix+tokenDigest, data, ttl).Err()
}
