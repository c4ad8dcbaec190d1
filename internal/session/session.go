package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:refresh"

var ErrSessionNotFound = errors.New("refresh session not found or revoked")

// Manager tracks issued refresh tokens in Redis. A refresh token is only
// honored while its session key exists, which makes logout and revocation a
// simple delete and bounds the blast radius of a leaked token.
type Manager struct {
	redis *redis.Client
}

func NewManager(redisClient *redis.Client) *Manager {
	return &Manager{redis: redisClient}
}

func sessionKey(tokenID string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, tokenID)
}

// Create registers a refresh token session that expires with the token.
func (m *Manager) Create(ctx context.Context, tokenID string, userID string, ttl time.Duration) error {
	return m.redis.Set(ctx, sessionKey(tokenID), userID, ttl).Err()
}

// Validate returns the user ID bound to the session, or ErrSessionNotFound
// if the session expired or was revoked.
func (m *Manager) Validate(ctx context.Context, tokenID string) (string, error) {
	userID, err := m.redis.Get(ctx, sessionKey(tokenID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return userID, nil
}

// Revoke deletes the session; the matching refresh token stops working.
func (m *Manager) Revoke(ctx context.Context, tokenID string) error {
	return m.redis.Del(ctx, sessionKey(tokenID)).Err()
}
