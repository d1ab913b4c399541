package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/jobtrail/jobtrail/internal/domain/auth"
	"github.com/jobtrail/jobtrail/internal/testutil"
)

func TestPrincipalCache_SetGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewPrincipalCache(client)
	ctx := context.Background()

	p := domainauth.Principal{
		UserID:    "user-1",
		Email:     "user@example.com",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, cache.Set(ctx, "digest-1", p, time.Minute))

	got, ok, err := cache.Get(ctx, "digest-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "user@example.com", got.Email)
}

func TestPrincipalCache_Miss(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewPrincipalCache(client)

	_, ok, err := cache.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrincipalCache_NonPositiveTTLNotStored(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewPrincipalCache(client)
	ctx := context.Background()

	p := domainauth.Principal{UserID: "user-1"}
	require.NoError(t, cache.Set(ctx, "digest-expired", p, -time.Second))

	_, ok, err := cache.Get(ctx, "digest-expired")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrincipalCache_TTLExpires(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewPrincipalCache(client)
	ctx := context.Background()

	p := domainauth.Principal{UserID: "user-1"}
	require.NoError(t, cache.Set(ctx, "digest-short", p, 50*time.Millisecond))

	time.Sleep(120 * time.Millisecond)
	_, ok, err := cache.Get(ctx, "digest-short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrincipalCache_CustomPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewPrincipalCacheWithPrefix(client, "auth:")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "d1", domainauth.Principal{UserID: "u"}, time.Minute))
	keys, err := client.Keys(ctx, "auth:*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}
