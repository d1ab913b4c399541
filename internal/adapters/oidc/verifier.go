package oidc

// Package oidc verifies bearer ID tokens against an OIDC identity provider.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/jobtrail/jobtrail/internal/domain/auth"
	apperrors "github.com/jobtrail/jobtrail/internal/errors"
	"github.com/jobtrail/jobtrail/internal/ports"
)

// Verifier implements ports.TokenVerifier using OIDC ID token verification.
// Signing keys come from the provider's JWKS endpoint and are cached by
// go-oidc between requests.
type Verifier struct {
	verifier *gooidc.IDTokenVerifier
}

// VerifierConfig holds configuration for the OIDC verifier.
type VerifierConfig struct {
	ClientID     string
	DiscoveryURL string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// NewVerifier creates a Verifier from the provider's discovery document.
func NewVerifier(ctx context.Context, config VerifierConfig) (*Verifier, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	// Single discovery fetch at startup.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(config.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Verifier{
		verifier: op.Verifier(&gooidc.Config{ClientID: config.ClientID}),
	}, nil
}

// claims is the subset of ID token claims the API cares about.
type claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Verify implements ports.TokenVerifier. Signature, audience, and expiry
// failures all surface as unauthorized.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (domainauth.Principal, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return domainauth.Principal{}, apperrors.Unauthorized("invalid bearer token: " + err.Error())
	}

	var c claims
	if claimErr := idToken.Claims(&c); claimErr != nil {
		return domainauth.Principal{}, apperrors.Unauthorized("malformed token claims: " + claimErr.Error())
	}
	if c.Sub == "" {
		return domainauth.Principal{}, apperrors.Unauthorized("token has no subject")
	}

	return domainauth.Principal{
		UserID:    c.Sub,
		Email:     c.Email,
		Name:      c.Name,
		ExpiresAt: idToken.Expiry,
	}, nil
}
