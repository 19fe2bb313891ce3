package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "fitcoach-revoked-token||"

// RedisRevoker keeps logged-out token ids until the tokens would have
// expired anyway.
type RedisRevoker struct {
	redisClient *redis.Client
}

func NewRedisRevoker(redisClient *redis.Client) *RedisRevoker {
	return &RedisRevoker{
		redisClient: redisClient,
	}
}

func (rr *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}

	cmd := rr.redisClient.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", tokenID, err)
	}
	return nil
}

func (rr *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	cmd := rr.redisClient.Exists(ctx, revokedKeyPrefix+tokenID)
	if err := cmd.Err(); err != nil {
		return false, fmt.Errorf("check revoked token %s: %w", tokenID, err)
	}
	return cmd.Val() > 0, nil
}
