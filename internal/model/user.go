package model

import (
	"fmt"
	"strings"
	"time"
)

// User represents an account. Every item, document, and collections record
// belongs to exactly one user.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// ValidatePassword checks password requirements for signup and changes.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address for lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail does a minimal shape check, full validation is left to the
// confirmation flow.
func ValidateEmail(email string) error {
	email = NormalizeEmail(email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
