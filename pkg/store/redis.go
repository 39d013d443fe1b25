package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// redisKeyPrefix namespaces artifact keys in a shared Redis.
	redisKeyPrefix = "deckgen:artifact:"

	redisDialTimeout = 5 * time.Second
)

// RedisStore is a Redis-backed artifact store for multi-instance
// deployments. Expiry rides on Redis TTLs, so no janitor is needed.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis at addr and verifies the connection.
// ttl <= 0 falls back to DefaultTTL.
func NewRedisStore(addr string, ttl time.Duration) (*RedisStore, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: redisDialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// Put stages an artifact with a native Redis TTL.
func (s *RedisStore) Put(ctx context.Context, art *Artifact) error {
	now := time.Now()
	if art.CreatedAt.IsZero() {
		art.CreatedAt = now
	}
	ttl := s.ttl
	if !art.ExpiresAt.IsZero() {
		ttl = time.Until(art.ExpiresAt)
		if ttl <= 0 {
			return nil // Already expired, nothing to stage
		}
	} else {
		art.ExpiresAt = now.Add(ttl)
	}

	data, err := json.Marshal(art)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+art.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("store artifact: %w", err)
	}
	return nil
}

// Get retrieves an artifact. Expired keys vanish on the Redis side and
// read as missing.
func (s *RedisStore) Get(ctx context.Context, id string) (*Artifact, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return &art, nil
}

// Delete removes an artifact. Deleting an absent ID is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

// Len reports the number of staged artifacts.
func (s *RedisStore) Len(ctx context.Context) (int, error) {
	var count int
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan artifacts: %w", err)
	}
	return count, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
