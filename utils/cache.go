package utils

import (
	"context"
	"time"

	"karigar/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the generic cache client. It stays nil when Redis is unreachable.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. A failed ping is logged and leaves caching disabled.
func InitCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("Redis cache unavailable, directory caching disabled", zap.Error(err))
		_ = client.Close()
		return
	}
	CacheClient = client
}

// GetCacheClient returns the generic cache client, which may be nil.
func GetCacheClient() *redis.Client {
	return CacheClient
}
