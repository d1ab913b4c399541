// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"time"

	domainauth "github.com/jobtrail/jobtrail/internal/domain/auth"
)

// TokenVerifier validates a raw bearer token against an identity provider
// and returns the identity it asserts.
type TokenVerifier interface {
	// Verify checks the token's signature, audience, and expiry. Failures
	// of any kind surface as unauthorized errors.
	Verify(ctx context.Context, rawToken string) (domainauth.Principal, error)
}

// PrincipalCache stores verified principals keyed by a token digest so
// repeat requests skip provider verification until the entry expires.
type PrincipalCache interface {
	Get(ctx context.Context, tokenDigest string) (domainauth.Principal, bool, error)
	Set(ctx context.Context, tokenDigest string, p domainauth.Principal, ttl time.Duration) error
}
