package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kasirapp/kasir/internal/config"
	"github.com/kasirapp/kasir/internal/domain"
)

// SessionStore resolves opaque bearer tokens to customer ids. Sessions are
// written by the (external) auth flow; this side only reads them.
type SessionStore struct {
	client *redis.Client
}

func Connect(ctx context.Context, cfg config.RedisConfig) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:   cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &SessionStore{client: client}, nil
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthenticated
	}

	customerID, err := s.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrUnauthenticated
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}

	return customerID, nil
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}

func sessionKey(token string) string {
	return "session:" + token
}
