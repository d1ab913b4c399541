package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	domainauth "github.com/jobtrail/jobtrail/internal/domain/auth"
	apperrors "github.com/jobtrail/jobtrail/internal/errors"
	"github.com/jobtrail/jobtrail/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Verifier ports.TokenVerifier
	Cache    ports.PrincipalCache // optional
	CacheTTL time.Duration        // optional, defaults to 5 minutes
}

// AuthService resolves bearer tokens to principals, with an optional cache
// in front of the identity provider.
type AuthService struct {
	verifier ports.TokenVerifier
	cache    ports.PrincipalCache
	cacheTTL time.Duration
	clock    Clock
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AuthService{
		verifier: opts.Verifier,
		cache:    opts.Cache,
		cacheTTL: ttl,
		clock:    realClock{},
	}
}

// Authenticate verifies a raw bearer token and returns the principal it
// asserts. Cached principals are trusted until they expire; cache failures
// fall through to provider verification rather than failing the request.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (domainauth.Principal, error) {
	if rawToken == "" {
		return domainauth.Principal{}, apperrors.Unauthorized("missing bearer token")
	}

	digest := tokenDigest(rawToken)
	if s.cache != nil {
		if p, ok, err := s.cache.Get(ctx, digest); err == nil && ok && !p.Expired(s.clock.Now()) {
			return p, nil
		}
	}

	principal, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return domainauth.Principal{}, err
	}

	if s.cache != nil {
		// cache set failures are non-fatal
		_ = s.cache.Set(ctx, digest, principal, s.entryTTL(principal))
	}
	return principal, nil
}

// entryTTL caps the cache TTL at the token's remaining lifetime so a
// cached principal never outlives its token.
func (s *AuthService) entryTTL(p domainauth.Principal) time.Duration {
	ttl := s.cacheTTL
	if p.ExpiresAt.IsZero() {
		return ttl
	}
	remaining := p.ExpiresAt.Sub(s.clock.Now())
	if remaining < ttl {
		return remaining
	}
	return ttl
}

func tokenDigest(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
