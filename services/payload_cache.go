package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Bhatter1986/Options-analysis/interfaces"
)

const (
	payloadTTL     = 30 * time.Minute
	lastKeyPointer = "optionchain:last"
)

// RedisPayloadCache stores the last chain payload in Redis so the AI
// summary can reuse it across processes.
type RedisPayloadCache struct {
	client *redis.Client
}

// NewRedisPayloadCache connects to Redis using a URL like
// redis://localhost:6379/0.
func NewRedisPayloadCache(url string) (*RedisPayloadCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisPayloadCache{client: redis.NewClient(opt)}, nil
}

// SetPayload stores a payload and marks its key as the most recent.
func (c *RedisPayloadCache) SetPayload(ctx context.Context, key string, payload *interfaces.ChainPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := c.client.Set(ctx, key, data, payloadTTL).Err(); err != nil {
		return err
	}
	return c.client.Set(ctx, lastKeyPointer, key, payloadTTL).Err()
}

// GetPayload fetches a payload by key.
func (c *RedisPayloadCache) GetPayload(ctx context.Context, key string) (*interfaces.ChainPayload, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("no cached payload for %s: %w", key, err)
	}
	var payload interfaces.ChainPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &payload, nil
}

// LastKey returns the key of the most recently stored payload.
func (c *RedisPayloadCache) LastKey(ctx context.Context) (string, error) {
	key, err := c.client.Get(ctx, lastKeyPointer).Result()
	if err != nil {
		return "", fmt.Errorf("no cached payload: %w", err)
	}
	return key, nil
}

// MemoryPayloadCache is the single-reference fallback used when no Redis
// is configured: it only remembers the latest payload.
type MemoryPayloadCache struct {
	mu      sync.RWMutex
	key     string
	payload *interfaces.ChainPayload
}

// NewMemoryPayloadCache creates an empty in-memory cache.
func NewMemoryPayloadCache() *MemoryPayloadCache {
	return &MemoryPayloadCache{}
}

// SetPayload replaces the cached payload.
func (c *MemoryPayloadCache) SetPayload(_ context.Context, key string, payload *interfaces.ChainPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	c.payload = payload
	return nil
}

// GetPayload returns the cached payload when the key matches.
func (c *MemoryPayloadCache) GetPayload(_ context.Context, key string) (*interfaces.ChainPayload, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.payload == nil || c.key != key {
		return nil, fmt.Errorf("no cached payload for %s", key)
	}
	return c.payload, nil
}

// LastKey returns the key of the cached payload.
func (c *MemoryPayloadCache) LastKey(_ context.Context) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.payload == nil {
		return "", fmt.Errorf("no cached payload")
	}
	return c.key, nil
}
