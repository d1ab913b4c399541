package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/jobtrail/jobtrail/internal/domain/auth"
	apperrors "github.com/jobtrail/jobtrail/internal/errors"
)

func TestMockTokenVerifier_Defaults(t *testing.T) {
	verifier := NewMockTokenVerifier()

	p, err := verifier.Verify(context.Background(), verifier.Token)
	require.NoError(t, err)
	assert.Equal(t, "mock-user-1", p.UserID)
	assert.NotEmpty(t, p.Email)
	assert.False(t, p.Expired(time.Now()))
	assert.Equal(t, 1, verifier.CallCount())
}

func TestMockTokenVerifier_RejectsUnknownToken(t *testing.T) {
	verifier := NewMockTokenVerifier()

	_, err := verifier.Verify(context.Background(), "wrong-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, 1, verifier.CallCount())
}

func TestMockTokenVerifier_VerifyFuncOverride(t *testing.T) {
	verifier := NewMockTokenVerifier()
	verifier.VerifyFunc = func(_ context.Context, rawToken string) (domainauth.Principal, error) {
		return domainauth.Principal{UserID: "custom-" + rawToken}, nil
	}

	p, err := verifier.Verify(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "custom-abc", p.UserID)
}

func TestMemoryPrincipalCache_RoundTrip(t *testing.T) {
	cache := NewMemoryPrincipalCache()
	want := domainauth.Principal{UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, cache.Set(context.Background(), "digest-1", want, 5*time.Minute))

	got, ok, err := cache.Get(context.Background(), "digest-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	ttl, ok := cache.TTLFor("digest-1")
	require.True(t, ok)
	assert.Equal(t, 5*time.Minute, ttl)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryPrincipalCache_MissAndForcedErrors(t *testing.T) {
	cache := NewMemoryPrincipalCache()

	_, ok, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)

	cache.SetErr = assert.AnError
	require.Error(t, cache.Set(context.Background(), "d", domainauth.Principal{}, time.Minute))
	assert.Equal(t, 0, cache.Len())

	cache.GetErr = assert.AnError
	_, _, err = cache.Get(context.Background(), "d")
	require.Error(t, err)
}
