package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Priyakatariya/smartbackend/internal/core/ports"
)

const (
	viewKeyPrefix  = "listing:view:"
	defaultViewTTL = 5 * time.Minute
)

// ListingViewCache stores hydrated listing views in Redis. Entries are
// invalidated on every mutation, the TTL only bounds staleness if an
// invalidation is lost.
type ListingViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingViewCache(client *redis.Client, ttl time.Duration) *ListingViewCache {
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return &ListingViewCache{client: client, ttl: ttl}
}

// Get returns the cached view, or (nil, nil) on a miss.
func (c *ListingViewCache) Get(ctx context.Context, id string) (*ports.ListingView, error) {
	payload, err := c.client.Get(ctx, viewKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("view cache get: %w", err)
	}

	var view ports.ListingView
	if err := json.Unmarshal(payload, &view); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, fmt.Errorf("view cache decode: %w", err)
	}
	return &view, nil
}

func (c *ListingViewCache) Set(ctx context.Context, id string, view *ports.ListingView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("view cache encode: %w", err)
	}
	if err := c.client.Set(ctx, viewKeyPrefix+id, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("view cache set: %w", err)
	}
	return nil
}

func (c *ListingViewCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, viewKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("view cache invalidate: %w", err)
	}
	return nil
}
