package httpx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/jobtrail/jobtrail/internal/domain/auth"
)

func TestGetPrincipalFromContext(t *testing.T) {
	// No principal
	if p, ok := GetPrincipalFromContext(context.Background()); assert.False(t, ok) {
		assert.Empty(t, p.UserID)
	}

	// Round trip
	want := domainauth.Principal{
		UserID:    "user-1",
		Email:     "user@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	ctx := SetPrincipalInContext(context.Background(), want)
	got, ok := GetPrincipalFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestGetPrincipalFromContext_WrongValueType(t *testing.T) {
	// A value stored under a different key must not leak through.
	ctx := context.WithValue(context.Background(), struct{ k string }{"other"}, "not-a-principal")
	_, ok := GetPrincipalFromContext(ctx)
	assert.False(t, ok)
}
