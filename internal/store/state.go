package store

import (
	"context"
	"database/sql"
	"fmt"
)

// UserState is a per-user key-value store backed by the user_state table.
// It implements kv.Store and holds the collections side-tables (snapshots,
// restock history, dismissals) that a browser client would keep in local
// storage.
type UserState struct {
	DB     *sql.DB
	UserID int64
}

// NewUserState returns a key-value view scoped to one user.
func NewUserState(db *sql.DB, userID int64) *UserState {
	return &UserState{DB: db, UserID: userID}
}

// Get returns the stored value for key, or (nil, nil) if absent.
func (s *UserState) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM user_state WHERE user_id = ? AND key = ?`,
		s.UserID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user state %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *UserState) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO user_state (user_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value`,
		s.UserID, key, value,
	)
	if err != nil {
		return fmt.Errorf("setting user state %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key.
func (s *UserState) Delete(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM user_state WHERE user_id = ? AND key = ?`,
		s.UserID, key,
	)
	if err != nil {
		return fmt.Errorf("deleting user state %q: %w", key, err)
	}
	return nil
}
