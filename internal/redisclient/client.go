package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache TTLs
const (
	ProductCacheTTL = 10 * time.Minute
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// SetSession stores a session token bound to a user id with TTL
func (c *Client) SetSession(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("session:%s", token), userID, ttl).Err()
}

// GetSession resolves a session token to a user id. Returns
// redis.Nil-wrapped miss as (0, false, nil).
func (c *Client) GetSession(ctx context.Context, token string) (int64, bool, error) {
	userID, err := c.rdb.Get(ctx, fmt.Sprintf("session:%s", token)).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return userID, true, nil
}

// DeleteSession removes a session token
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("session:%s", token)).Err()
}

// CacheProduct stores a product payload under its id
func (c *Client) CacheProduct(ctx context.Context, productID int64, product interface{}) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf("product:%d", productID), data, ProductCacheTTL).Err()
}

// GetCachedProduct loads a cached product payload into dest. Returns
// false on a cache miss.
func (c *Client) GetCachedProduct(ctx context.Context, productID int64, dest interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, fmt.Sprintf("product:%d", productID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// InvalidateProduct drops a product from the cache after an admin edit
func (c *Client) InvalidateProduct(ctx context.Context, productID int64) error {
	return c.rdb.Del(ctx, fmt.Sprintf("product:%d", productID)).Err()
}
