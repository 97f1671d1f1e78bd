package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/autonear/autonear-backend/config"
	"github.com/autonear/autonear-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init connects to Redis and verifies the connection with a ping.
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", logger.Fields{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	})

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, logger.Fields{"addr": cfg.Addr()})
		_ = c.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	client = c
	logger.Info("Redis connection established")
	return nil
}

// GetClient returns nil when Init was never called or failed.
func GetClient() *redis.Client {
	return client
}

func Close() error {
	if client == nil {
		return nil
	}
	logger.Info("Closing Redis connection")
	err := client.Close()
	client = nil
	return err
}

// RevokeToken blacklists a token until it would have expired anyway.
func RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	if err := client.Set(ctx, revokedKey(tokenID), "revoked", ttl).Err(); err != nil {
		logger.Error("Failed to revoke token", err)
		return err
	}
	return nil
}

// IsTokenRevoked is always false without a Redis connection.
func IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if client == nil {
		return false, nil
	}
	n, err := client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		logger.Error("Failed to check revoked token", err)
		return false, err
	}
	return n > 0, nil
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}
