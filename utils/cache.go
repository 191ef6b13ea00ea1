package utils

import (
	"context"
	"log"
	"time"

	"trailmate/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient backs geocode lookups and favorites.
	CacheClient *redis.Client
	// ChatCacheClient holds session transcripts.
	ChatCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// Callers degrade on Redis errors, so a cold start without Redis is only logged.
		log.Printf("Redis (%s) not reachable at startup: %v", name, err)
	}
	return client
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitChatCache initializes the Redis client used for conversation transcripts.
func InitChatCache() {
	ChatCacheClient = newRedisClient(config.AppConfig.RedisChatDB, "chat")
}

// GetChatCacheClient returns the transcript client.
func GetChatCacheClient() *redis.Client {
	if ChatCacheClient == nil {
		InitChatCache()
	}
	return ChatCacheClient
}

// InitRedis initializes every Redis client used by the server.
func InitRedis() {
	InitCache()
	InitChatCache()
}
