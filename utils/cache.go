// File: utils/cache.go
package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"shopline/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client used for hot read caching.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// CacheSetJSON marshals v and stores it under key with the given TTL.
// A no-op when the cache client has not been initialized.
func CacheSetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	if CacheClient == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return CacheClient.Set(ctx, key, data, ttl).Err()
}

// CacheGetJSON loads key into v. Returns false when the key is absent
// or the cache client has not been initialized.
func CacheGetJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	if CacheClient == nil {
		return false, nil
	}
	data, err := CacheClient.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// CacheInvalidate removes the given keys, ignoring missing ones.
func CacheInvalidate(ctx context.Context, keys ...string) {
	if CacheClient == nil || len(keys) == 0 {
		return
	}
	if err := CacheClient.Del(ctx, keys...).Err(); err != nil {
		GetLogger().Sugar().Warnf("cache invalidation failed for %v: %v", keys, err)
	}
}
