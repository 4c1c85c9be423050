package database

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/Edutrack/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis returns nil without error when REDIS_URL is empty; consumers fall
// back to log-only behaviour in that case.
func NewRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.URL == "" {
		log.Warn().Msg("REDIS_URL is not set. Subscription change events will only be logged.")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().Str("addr", opt.Addr).Msg("Redis connection established")
	return client, nil
}
