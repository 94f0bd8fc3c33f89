package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	listingserrors "pgstay/internal/listings/errors"
	"pgstay/internal/listings/filter"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const filtersKeyPrefix = "last_filters:"

// FiltersCache remembers the last search criteria of each signed-in user.
type FiltersCache interface {
	Save(ctx context.Context, userID string, criteria filter.Criteria) error
	Load(ctx context.Context, userID string) (*filter.Criteria, error)
}

type redisFiltersCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFiltersCache returns a Redis backed cache, or a no-op cache when
// client is nil.
func NewRedisFiltersCache(client *redis.Client, ttl time.Duration) FiltersCache {
	if client == nil {
		return noopFiltersCache{}
	}
	return &redisFiltersCache{client: client, ttl: ttl}
}

func filtersKey(userID string) string {
	return filtersKeyPrefix + userID
}

func (c *redisFiltersCache) Save(ctx context.Context, userID string, criteria filter.Criteria) error {
	data, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("failed to encode filters: %w", err)
	}
	if err := c.client.Set(ctx, filtersKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store filters: %w", err)
	}
	return nil
}

func (c *redisFiltersCache) Load(ctx context.Context, userID string) (*filter.Criteria, error) {
	data, err := c.client.Get(ctx, filtersKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, listingserrors.ErrFiltersNotFound
		}
		return nil, fmt.Errorf("failed to read filters: %w", err)
	}

	var criteria filter.Criteria
	if err := json.Unmarshal(data, &criteria); err != nil {
		return nil, fmt.Errorf("failed to decode filters: %w", err)
	}
	return &criteria, nil
}

type noopFiltersCache struct{}

func (noopFiltersCache) Save(context.Context, string, filter.Criteria) error { return nil }

func (noopFiltersCache) Load(context.Context, string) (*filter.Criteria, error) {
	return nil, listingserrors.ErrFiltersNotFound
}
