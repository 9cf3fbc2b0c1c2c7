package session

import (
	"context"
	"fmt"
	"io"

	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/store"
)

// New returns the store named by session.store
func New(ctx context.Context, cfg *store.Config) (interfaces.SessionStore, error) {
	switch cfg.Session.Store {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(ctx, cfg.Session.RedisURL)
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Session.Store)
	}
}

// Close releases the store's connections when it holds any
func Close(s interfaces.SessionStore) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
