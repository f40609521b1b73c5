package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/omnibet/internal/snapshot"
)

// SnapshotKey holds the latest snapshot as JSON
const SnapshotKey = "omnibet:snapshot:latest"

// DefaultSnapshotTTL applies when no TTL is configured
const DefaultSnapshotTTL = 30 * time.Minute

// ErrMiss is returned when no cached snapshot exists
var ErrMiss = errors.New("snapshot not cached")

// RedisCache persists the latest matchup snapshot for warm starts
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new Redis snapshot cache
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Save stores the snapshot, replacing any previous one
func (c *RedisCache) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := c.client.Set(ctx, SnapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Load retrieves the cached snapshot or ErrMiss
func (c *RedisCache) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	data, err := c.client.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}

	return &snap, nil
}

// Ping checks the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}
