package cache

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/exceptions"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatchSize = 100

var compareAndDeleteScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisCache struct {
	client redis.UniversalClient
}

func NewRedisCache(client redis.UniversalClient) contracts.CacheBackend {
	return &redisCache{client: client}
}

func (r *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	} else if err != nil {
		return "", false, exceptions.ErrRedisGet(err)
	}
	return data, true, nil
}

func (r *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

func (r *redisCache) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	deleted, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, exceptions.ErrRedisDelete(err)
	}
	return deleted, nil
}

func (r *redisCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, exceptions.ErrRedisScan(err)
	}
	return keys, nil
}

func (r *redisCache) TrySetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	acquired, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

func (r *redisCache) CompareAndDelete(ctx context.Context, key, value string) (bool, error) {
	deleted, err := compareAndDeleteScript.Run(ctx, r.client, []string{key}, value).Int64()
	if err != nil {
		return false, exceptions.ErrRedisUnlock(err)
	}
	return deleted == 1, nil
}
