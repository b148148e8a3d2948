package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RefreshTokenStore keeps the set of currently valid refresh-token IDs
// in Redis, keyed per user, with a TTL matching the token lifetime.
// Rotation deletes the old ID before a new one is saved, so a refresh
// token can be used exactly once.
type RefreshTokenStore struct {
	Client *redis.Client
}

func NewRefreshTokenStore(rdb *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{Client: rdb}
}

func refreshKey(userID uint, tokenID string) string {
	return fmt.Sprintf("refresh:%d:%s", userID, tokenID)
}

func (s *RefreshTokenStore) Save(ctx context.Context, userID uint, tokenID string, ttl time.Duration) error {
	return s.Client.Set(ctx, refreshKey(userID, tokenID), 1, ttl).Err()
}

func (s *RefreshTokenStore) Exists(ctx context.Context, userID uint, tokenID string) (bool, error) {
	n, err := s.Client.Exists(ctx, refreshKey(userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RefreshTokenStore) Delete(ctx context.Context, userID uint, tokenID string) error {
	return s.Client.Del(ctx, refreshKey(userID, tokenID)).Err()
}
