package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"daytrack/internal/cache"
)

const resetTokenKeyPrefix = "reset_token:"

// ResetTokenExpiry bounds how long a password reset token stays usable.
const ResetTokenExpiry = 10 * time.Minute

// TokenStoreInterface defines the interface for reset token storage.
type TokenStoreInterface interface {
	StoreResetToken(ctx context.Context, username string, ttl time.Duration) (token string, err error)
	ConsumeResetToken(ctx context.Context, username, token string) error
}

// TokenStore keeps short-lived password reset tokens in Redis, keyed by
// username so at most one outstanding token exists per user.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreResetToken mints a reset token for the user and stores it with TTL.
func (s *TokenStore) StoreResetToken(ctx context.Context, username string, ttl time.Duration) (string, error) {
	token := uuid.New().String()
	key := resetTokenKeyPrefix + username
	if err := s.cache.Set(ctx, key, []byte(token), ttl); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// ConsumeResetToken validates and invalidates the user's reset token.
func (s *TokenStore) ConsumeResetToken(ctx context.Context, username, token string) error {
	key := resetTokenKeyPrefix + username
	stored, err := s.cache.Get(ctx, key)
	if err != nil || stored == nil {
		return fmt.Errorf("reset token not found")
	}
	if string(stored) != token {
		return fmt.Errorf("reset token mismatch")
	}
	return s.cache.Delete(ctx, key)
}
