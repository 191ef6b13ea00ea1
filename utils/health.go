package utils

import (
	"context"
	"sync"
	"time"

	"trailmate/models"

	"github.com/go-redis/redis/v8"
)

var (
	currentHealth models.HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() models.HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings every dependency once and stores the result.
func CheckHealth(ctx context.Context, redisClients []*redis.Client, storePing func(context.Context) error) models.HealthStatus {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	redisHealth := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisHealth = append(redisHealth, client.Ping(pingCtx).Err() == nil)
	}

	storeHealthy := true
	if storePing != nil {
		storeHealthy = storePing(pingCtx) == nil
	}

	status := models.HealthStatus{
		Store:     storeHealthy,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func StartHealthMonitor(ctx context.Context, redisClients []*redis.Client, storePing func(context.Context) error) {
	go func() {
		CheckHealth(ctx, redisClients, storePing)

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, redisClients, storePing)
			}
		}
	}()
}
