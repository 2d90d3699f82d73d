package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DavLiendoProgramming/blog-api/internal/application/common"
	"github.com/go-redis/redis/v8"
)

const (
	revokedKeyPrefix = "revoked:"
	profileKeyPrefix = "profile:"
)

// RedisService backs the token denylist and the profile cache. A nil
// client disables it: cache calls become misses and writes are dropped.
type RedisService struct {
	client *redis.Client
}

func NewRedisService(client *redis.Client) *RedisService {
	return &RedisService{client: client}
}

func (r *RedisService) Enabled() bool {
	return r.client != nil
}

// Revoke uses SET NX so only the first revocation of a jti wins.
func (r *RedisService) Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	if r.client == nil {
		return false, errors.New("redis disabled")
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	return r.client.SetNX(ctx, revokedKeyPrefix+jti, expiresAt.Unix(), ttl).Result()
}

func (r *RedisService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if r.client == nil {
		return false, errors.New("redis disabled")
	}
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisService) SetProfile(ctx context.Context, userID string, profile *common.UserResult, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, profileKeyPrefix+userID, data, ttl).Err()
}

func (r *RedisService) GetProfile(ctx context.Context, userID string) (*common.UserResult, error) {
	if r.client == nil {
		return nil, nil
	}
	data, err := r.client.Get(ctx, profileKeyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var profile common.UserResult
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *RedisService) DeleteProfile(ctx context.Context, userID string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, profileKeyPrefix+userID).Err()
}

func (r *RedisService) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
