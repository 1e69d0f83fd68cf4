// Package profilecache keeps recently seen identity profiles in Redis so
// invitee and role lookups skip PostgreSQL on the hot path.
package profilecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

const keyPrefix = "briefdesk:profile:"

type entry struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// Cache is a Redis-backed profile cache. Entries are indexed by id and by
// normalized email.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// Open parses redisURL, connects and pings the server.
func Open(ctx context.Context, redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return New(client, ttl), nil
}

// New wraps an existing client.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func idKey(id uuid.UUID) string { return keyPrefix + "id:" + id.String() }

func emailKey(email string) string { return keyPrefix + "email:" + domain.NormalizeEmail(email) }

// Get returns the cached profile for id. ok is false on a miss.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, bool, error) {
	return c.load(ctx, idKey(id))
}

// GetByEmail returns the cached profile registered under email. ok is false on a miss.
func (c *Cache) GetByEmail(ctx context.Context, email string) (*domain.Profile, bool, error) {
	return c.load(ctx, emailKey(email))
}

func (c *Cache) load(ctx context.Context, key string) (*domain.Profile, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("profile cache get: %w", err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false, fmt.Errorf("profile cache decode: %w", err)
	}
	return &domain.Profile{ID: e.ID, Email: e.Email, Role: domain.Role(e.Role)}, true, nil
}

// Set stores p under both of its keys.
func (c *Cache) Set(ctx context.Context, p domain.Profile) error {
	raw, err := json.Marshal(entry{ID: p.ID, Email: domain.NormalizeEmail(p.Email), Role: string(p.Role)})
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, idKey(p.ID), raw, c.ttl)
		pipe.Set(ctx, emailKey(p.Email), raw, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("profile cache set: %w", err)
	}
	return nil
}

// Invalidate drops both keys of p.
func (c *Cache) Invalidate(ctx context.Context, p domain.Profile) error {
	if err := c.client.Del(ctx, idKey(p.ID), emailKey(p.Email)).Err(); err != nil {
		return fmt.Errorf("profile cache invalidate: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
