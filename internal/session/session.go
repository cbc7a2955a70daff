// Package session implements server-side opaque session tokens. Holding a
// valid token is the sole authorization credential; tokens end on explicit
// logout or TTL expiry.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// ErrNotFound is returned when a token does not resolve to an active session.
var ErrNotFound = errors.New("session not found")

// Manager issues, resolves, and destroys session tokens.
type Manager interface {
	// Create issues a new opaque token for the given user.
	Create(ctx context.Context, userID int) (string, error)
	// Resolve returns the user id a token belongs to, or ErrNotFound.
	Resolve(ctx context.Context, token string) (int, error)
	// Destroy invalidates a token. Destroying an unknown token is not an error.
	Destroy(ctx context.Context, token string) error
}

const tokenBytes = 32

// newToken returns a cryptographically unpredictable opaque token.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
