package store

import (
	"context"
	"testing"

	"github.com/findez/findez/internal/db"
)

func TestGetJWTSecretStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}

	second, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret (second): %v", err)
	}
	if first != second {
		t.Error("expected the same secret on repeated calls")
	}
}
