package devauth

// Package devauth provides a simple, config-driven TokenVerifier for local development.

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	domainauth "github.com/jobtrail/jobtrail/internal/domain/auth"
	apperrors "github.com/jobtrail/jobtrail/internal/errors"
	"github.com/jobtrail/jobtrail/internal/ports"
)

// Config controls the dev verifier behavior. Token and UserID are required.
type Config struct {
	Token         string
	UserID        string
	Email         string
	TokenDuration time.Duration // default 8h when zero
}

// Verifier implements ports.TokenVerifier for local development. It accepts
// exactly one configured token and maps it to one configured identity, so
// the dashboard and extension can run without a real identity provider.
type Verifier struct {
	token    string
	userID   string
	email    string
	duration time.Duration
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// NewVerifier constructs a dev verifier from Config.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.Token == "" {
		return nil, errors.New("dev auth: Token is required")
	}
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	dur := cfg.TokenDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Verifier{
		token:    cfg.Token,
		userID:   cfg.UserID,
		email:    cfg.Email,
		duration: dur,
	}, nil
}

// Verify implements ports.TokenVerifier.
func (v *Verifier) Verify(_ context.Context, rawToken string) (domainauth.Principal, error) {
	if subtle.ConstantTimeCompare([]byte(rawToken), []byte(v.token)) != 1 {
		return domainauth.Principal{}, apperrors.Unauthorized("invalid bearer token")
	}
	return domainauth.Principal{
		UserID:    v.userID,
		Email:     v.email,
		Name:      "Dev User",
		ExpiresAt: time.Now().Add(v.duration),
	}, nil
}
