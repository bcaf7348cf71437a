package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/redis/go-redis/v9"
)

const listingTTL = 1 * time.Hour

// ListingCache is a read-through cache for single-listing lookups.
type ListingCache struct {
	client *redis.Client
}

// NewListingCache connects to redis and verifies the connection.
func NewListingCache(addr string) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &ListingCache{client: client}, nil
}

// GetListing returns the cached listing, or (nil, nil) on a miss.
func (c *ListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, "listing:"+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// SetListing stores a listing under its ID.
func (c *ListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "listing:"+listing.ID, data, listingTTL).Err()
}

// DeleteListing invalidates a cached listing.
func (c *ListingCache) DeleteListing(ctx context.Context, id string) error {
	return c.client.Del(ctx, "listing:"+id).Err()
}

// Close releases the redis connection.
func (c *ListingCache) Close() error {
	return c.client.Close()
}
