package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis. A failed ping is logged but not fatal; the
// cache degrades to pass-through and the API keeps serving.
func InitRedis(ctx context.Context, addr string, log *slog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis ping", "error", err)
	}
	return client
}
