package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the shared Redis client used for reset tokens and
// the event list cache.
func InitRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	if err := RedisClient.Ping(Ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	log.Println("✅ Redis connected at", addr)
	return nil
}

// ======================
// Token helpers (password reset)
// ======================

func SetToken(key, value string, ttl time.Duration) error {
	if RedisClient == nil {
		return fmt.Errorf("redis not initialized")
	}
	return RedisClient.Set(Ctx, key, value, ttl).Err()
}

func GetToken(key string) (string, error) {
	if RedisClient == nil {
		return "", fmt.Errorf("redis not initialized")
	}
	return RedisClient.Get(Ctx, key).Result()
}

func DeleteToken(key string) error {
	if RedisClient == nil {
		return fmt.Errorf("redis not initialized")
	}
	return RedisClient.Del(Ctx, key).Err()
}

// ======================
// Cache helpers (event lists)
// ======================

// CacheSet stores a serialized payload under key with a TTL. Failures are
// returned to the caller but are safe to ignore: the cache is best-effort.
func CacheSet(key string, payload []byte, ttl time.Duration) error {
	if RedisClient == nil {
		return fmt.Errorf("redis not initialized")
	}
	return RedisClient.Set(Ctx, key, payload, ttl).Err()
}

// CacheGet returns the payload for key, or redis.Nil when absent.
func CacheGet(key string) ([]byte, error) {
	if RedisClient == nil {
		return nil, fmt.Errorf("redis not initialized")
	}
	return RedisClient.Get(Ctx, key).Bytes()
}

// CacheInvalidate removes every key matching pattern (used after event writes).
func CacheInvalidate(pattern string) {
	if RedisClient == nil {
		return
	}
	iter := RedisClient.Scan(Ctx, 0, pattern, 100).Iterator()
	for iter.Next(Ctx) {
		RedisClient.Del(Ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("⚠️ Cache invalidation scan failed for %s: %v", pattern, err)
	}
}
