package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"poojaseva/models"

	"github.com/go-redis/redis/v8"
)

const (
	providerListPrefix = "bookings:provider:"
	userListPrefix     = "bookings:user:"
)

// ListCache holds per-provider and per-user booking lists.
type ListCache interface {
	GetProviderList(ctx context.Context, providerID string) ([]models.Booking, bool, error)
	SetProviderList(ctx context.Context, providerID string, bookings []models.Booking) error
	GetUserList(ctx context.Context, userID string) ([]models.Booking, bool, error)
	SetUserList(ctx context.Context, userID string, bookings []models.Booking) error
	// Invalidate drops the lists of the given providers and users. Empty ids are ignored.
	Invalidate(ctx context.Context, providerIDs, userIDs []string) error
}

type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisListCache(client *redis.Client, ttl time.Duration) *RedisListCache {
	return &RedisListCache{client: client, ttl: ttl}
}

func (c *RedisListCache) GetProviderList(ctx context.Context, providerID string) ([]models.Booking, bool, error) {
	return c.get(ctx, providerListPrefix+providerID)
}

func (c *RedisListCache) SetProviderList(ctx context.Context, providerID string, bookings []models.Booking) error {
	return c.set(ctx, providerListPrefix+providerID, bookings)
}

func (c *RedisListCache) GetUserList(ctx context.Context, userID string) ([]models.Booking, bool, error) {
	return c.get(ctx, userListPrefix+userID)
}

func (c *RedisListCache) SetUserList(ctx context.Context, userID string, bookings []models.Booking) error {
	return c.set(ctx, userListPrefix+userID, bookings)
}

func (c *RedisListCache) Invalidate(ctx context.Context, providerIDs, userIDs []string) error {
	keys := make([]string, 0, len(providerIDs)+len(userIDs))
	for _, id := range providerIDs {
		if id != "" {
			keys = append(keys, providerListPrefix+id)
		}
	}
	for _, id := range userIDs {
		if id != "" {
			keys = append(keys, userListPrefix+id)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisListCache) get(ctx context.Context, key string) ([]models.Booking, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("booking cache read %s: %w", key, err)
	}
	var bookings []models.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, false, fmt.Errorf("booking cache decode %s: %w", key, err)
	}
	return bookings, true, nil
}

func (c *RedisListCache) set(ctx context.Context, key string, bookings []models.Booking) error {
	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("booking cache encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
