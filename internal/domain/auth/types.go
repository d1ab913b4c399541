// Package auth defines domain types for authenticated identities.
package auth

import "time"

// Principal is the verified identity attached to a request after bearer
// token verification. UserID is the identity provider subject and is the
// only value used for data scoping.
type Principal struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the principal's token lifetime has passed.
func (p Principal) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt)
}
