package interfaces

import (
	"context"
	"time"

	"finance-assistant/internal/types"
)

// CredentialStore persists usernames and password hashes
type CredentialStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) error
	PasswordHash(ctx context.Context, username string) (string, error)
	Close() error
}

// SessionStore keeps per-browser sessions between requests
type SessionStore interface {
	Load(ctx context.Context, id string) (types.Session, bool, error)
	Save(ctx context.Context, sess types.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
