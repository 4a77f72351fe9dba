package store

import (
	"context"
	"testing"
	"time"

	"github.com/findez/findez/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected unknown JTI not revoked")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, _ = IsTokenRevoked(ctx, database, "jti-1")
	if !revoked {
		t.Error("expected JTI revoked after RevokeToken")
	}

	// Revoking again is a no-op.
	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("expected idempotent revoke, got %v", err)
	}
}

func TestRevokeTokenCleansExpired(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	RevokeToken(ctx, database, "expired", time.Now().Add(-time.Hour))
	// The next revoke sweeps expired entries.
	RevokeToken(ctx, database, "fresh", time.Now().Add(time.Hour))

	revoked, _ := IsTokenRevoked(ctx, database, "expired")
	if revoked {
		t.Error("expected expired revocation to be swept")
	}
}
