package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/jobtrail/jobtrail/internal/domain/auth"
	apperrors "github.com/jobtrail/jobtrail/internal/errors"
	"github.com/jobtrail/jobtrail/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenVerifier  = (*MockTokenVerifier)(nil)
	_ ports.PrincipalCache = (*MemoryPrincipalCache)(nil)
)

// MockTokenVerifier simulates an identity provider for tests. With no
// overrides it accepts Token and returns DefaultPrincipal.
type MockTokenVerifier struct {
	VerifyFunc func(ctx context.Context, rawToken string) (domainauth.Principal, error)

	Token            string
	DefaultPrincipal domainauth.Principal

	mu        sync.Mutex
	callCount int
}

// NewMockTokenVerifier creates a MockTokenVerifier with sensible defaults.
func NewMockTokenVerifier() *MockTokenVerifier {
	return &MockTokenVerifier{
		Token: "test-token",
		DefaultPrincipal: domainauth.Principal{
			UserID:    "mock-user-1",
			Email:     "mock.user@example.com",
			Name:      "Mock User",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

// Verify implements ports.TokenVerifier.
func (m *MockTokenVerifier) Verify(ctx context.Context, rawToken string) (domainauth.Principal, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, rawToken)
	}
	if rawToken != m.Token {
		return domainauth.Principal{}, apperrors.Unauthorized("invalid token")
	}
	return m.DefaultPrincipal, nil
}

// CallCount returns how many times Verify has been invoked.
func (m *MockTokenVerifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// MemoryPrincipalCache is an in-memory ports.PrincipalCache for tests.
// TTLs are recorded but entries only expire via the stored principal.
type MemoryPrincipalCache struct {
	mu      sync.Mutex
	entries map[string]domainauth.Principal
	ttls    map[string]time.Duration

	// GetErr and SetErr force cache failures when set.
	GetErr error
	SetErr error
}

// NewMemoryPrincipalCache creates an empty MemoryPrincipalCache.
func NewMemoryPrincipalCache() *MemoryPrincipalCache {
	return &MemoryPrincipalCache{
		entries: make(map[string]domainauth.Principal),
		ttls:    make(map[string]time.Duration),
	}
}

// Get implements ports.PrincipalCache.
func (c *MemoryPrincipalCache) Get(_ context.Context, tokenDigest string) (domainauth.Principal, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetErr != nil {
		return domainauth.Principal{}, false, c.GetErr
	}
	p, ok := c.entries[tokenDigest]
	return p, ok, nil
}

// Set implements ports.PrincipalCache.
func (c *MemoryPrincipalCache) Set(_ context.Context, tokenDigest string, p domainauth.Principal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SetErr != nil {
		return c.SetErr
	}
	c.entries[tokenDigest] = p
	c.ttls[tokenDigest] = ttl
	return nil
}

// TTLFor returns the TTL recorded for a digest, if any.
func (c *MemoryPrincipalCache) TTLFor(tokenDigest string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.ttls[tokenDigest]
	return d, ok
}

// Len returns the number of cached principals.
func (c *MemoryPrincipalCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
