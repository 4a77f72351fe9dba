// Package kv defines a small best-effort key-value abstraction used for
// cached client-like state (snapshots, restock history, dismissals).
// Values are JSON blobs with no compatibility contract: a missing,
// unreadable, or malformed value is treated the same as no value at all.
package kv

import (
	"context"
	"encoding/json"
)

// Store holds JSON-encoded values by key. Implementations must return
// (nil, nil) for missing keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetJSON loads and decodes the value at key into out. It reports false on
// a missing key and on any read or decode failure: cached state degrades
// to "no cached value" rather than surfacing an error.
func GetJSON(ctx context.Context, s Store, key string, out any) bool {
	raw, err := s.Get(ctx, key)
	if err != nil || raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

// SetJSON encodes v and stores it at key. Write failures are swallowed:
// persistence is best-effort and callers never depend on it succeeding.
func SetJSON(ctx context.Context, s Store, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.Set(ctx, key, raw)
}
