package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisIdempotency keeps request keys in Redis so a retried create returns
// the record produced by the first attempt.
type RedisIdempotency struct {
	client *redis.Client
	prefix string
}

func NewRedisIdempotency(client *redis.Client, prefix string) *RedisIdempotency {
	return &RedisIdempotency{client: client, prefix: prefix}
}

func (r *RedisIdempotency) getKey(key string) string {
	return "idem:" + r.prefix + ":" + key
}

// Reserve marks key pending with SETNX; only one caller wins it.
func (r *RedisIdempotency) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, r.getKey(key), IdempotencyPending, ttl).Result()
}

// Get returns "" when the key has not been seen.
func (r *RedisIdempotency) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.getKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisIdempotency) Set(ctx context.Context, key, recordID string, ttl time.Duration) error {
	return r.client.Set(ctx, r.getKey(key), recordID, ttl).Err()
}

// Release drops a reservation whose request failed so the client can retry.
func (r *RedisIdempotency) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.getKey(key)).Err()
}
