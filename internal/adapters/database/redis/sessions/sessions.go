package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage holds server-issued session tokens. The token is the only thing a
// client ever keeps; role and society linkage are looked up from the account
// row on every request, so a revoked or relinked account takes effect
// immediately. Expiry is the redis TTL.
type Storage struct {
	redis *redis.Client
}

func NewStorage(r *redis.Client) *Storage {
	return &Storage{
		redis: r,
	}
}

func key(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Get returns the account id the token was issued for, or "" when the
// token is unknown or expired.
func (s *Storage) Get(ctx context.Context, token string) (string, error) {
	accountID, err := s.redis.Get(ctx, key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return accountID, nil
}

func (s *Storage) Set(ctx context.Context, token, accountID string, expiration time.Duration) error {
	return s.redis.Set(ctx, key(token), accountID, expiration).Err()
}

func (s *Storage) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, key(token)).Err()
}
