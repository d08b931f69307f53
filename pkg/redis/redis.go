package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jalvarez/washpoint-backend/config"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis connection used for the token-revocation
// blacklist. A nil *Client is valid everywhere and means "no Redis":
// revocation becomes a no-op and no token is ever reported revoked.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection.
func New(cfg *config.RedisConfig) (*Client, error) {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	logger.Info("Closing Redis connection", nil)
	return c.rdb.Close()
}

// BlacklistToken marks a token revoked until its natural expiry.
func (c *Client) BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if c == nil {
		return nil
	}
	if expiry <= 0 {
		// Already expired; validation rejects it anyway.
		return nil
	}

	key := blacklistKey(token)
	if err := c.rdb.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}
	return nil
}

// IsTokenBlacklisted reports whether a token has been revoked.
func (c *Client) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if c == nil {
		return false, nil
	}

	val, err := c.rdb.Get(ctx, blacklistKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false, err
	}
	return val == "revoked", nil
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}
