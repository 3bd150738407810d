package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nurse103/QLNS-B11-sub000/config"
)

// Client wraps the Redis connection.
// Currently used to cache the active-staff directory; the directory is
// read on every eligibility recomputation, so it is the one hot read path.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and pings it.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── active-staff directory cache ──

const activeStaffKey = "staff:active"

// SetActiveStaff stores the serialized active-staff directory.
func (c *Client) SetActiveStaff(ctx context.Context, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, activeStaffKey, payload, ttl).Err()
}

// GetActiveStaff returns the cached directory, or nil on a miss.
func (c *Client) GetActiveStaff(ctx context.Context) ([]byte, error) {
	b, err := c.rdb.Get(ctx, activeStaffKey).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	return b, err
}

// InvalidateActiveStaff drops the cached directory.
func (c *Client) InvalidateActiveStaff(ctx context.Context) error {
	return c.rdb.Del(ctx, activeStaffKey).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
