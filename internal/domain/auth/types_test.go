package auth

import (
	"testing"
	"time"
)

func TestPrincipal_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := Principal{UserID: "u1", ExpiresAt: now.Add(time.Hour)}
	if p.Expired(now) {
		t.Fatalf("did not expect principal to be expired")
	}
	if !p.Expired(now.Add(2 * time.Hour)) {
		t.Fatalf("expected principal to be expired")
	}
}

func TestPrincipal_Expired_ZeroExpiryNeverExpires(t *testing.T) {
	p := Principal{UserID: "u1"}
	if p.Expired(time.Now().Add(1000 * time.Hour)) {
		t.Fatalf("zero expiry should never report expired")
	}
}

func TestPrincipal_Expired_ExactBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := Principal{UserID: "u1", ExpiresAt: now}
	// Expiry at exactly now is still valid; only strictly-after counts.
	if p.Expired(now) {
		t.Fatalf("principal expiring exactly now should still be valid")
	}
}
