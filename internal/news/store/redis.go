package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"crisiswatch/internal/news/models"
	"crisiswatch/pkg/platform/sentinel"
)

const redisKeyPrefix = "crisiswatch:news:"

// Redis caches news responses in Redis so replicas share fetched results and
// survive restarts within the TTL.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (models.Response, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Response{}, fmt.Errorf("%w: %s", sentinel.ErrNotFound, key)
	}
	if err != nil {
		return models.Response{}, fmt.Errorf("redis get: %w", err)
	}

	var resp models.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.Response{}, fmt.Errorf("decode cached response: %w", err)
	}
	return resp, nil
}

func (r *Redis) Set(ctx context.Context, key string, resp models.Response, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
