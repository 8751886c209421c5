package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"poojaseva/models"

	"github.com/go-redis/redis/v8"
)

const directoryCacheKey = "directory:providers"

// DirectoryCache holds the fetched provider directory between requests.
type DirectoryCache interface {
	// Get returns the cached directory; ok is false on a miss.
	Get(ctx context.Context) (providers []models.Provider, ok bool, err error)
	Set(ctx context.Context, providers []models.Provider) error
	Invalidate(ctx context.Context) error
}

// cachedProvider keeps the fields the public JSON form of a provider hides.
type cachedProvider struct {
	models.Provider
	FCMToken string `json:"fcm_token,omitempty"`
}

// RedisDirectoryCache stores the directory as one JSON document.
type RedisDirectoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDirectoryCache(client *redis.Client, ttl time.Duration) *RedisDirectoryCache {
	return &RedisDirectoryCache{client: client, ttl: ttl}
}

func (c *RedisDirectoryCache) Get(ctx context.Context) ([]models.Provider, bool, error) {
	data, err := c.client.Get(ctx, directoryCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("directory cache read: %w", err)
	}
	providers, err := decodeDirectory(data)
	if err != nil {
		return nil, false, err
	}
	return providers, true, nil
}

func (c *RedisDirectoryCache) Set(ctx context.Context, providers []models.Provider) error {
	data, err := encodeDirectory(providers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, directoryCacheKey, data, c.ttl).Err()
}

func (c *RedisDirectoryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, directoryCacheKey).Err()
}

func encodeDirectory(providers []models.Provider) ([]byte, error) {
	cached := make([]cachedProvider, 0, len(providers))
	for _, p := range providers {
		cached = append(cached, cachedProvider{Provider: p, FCMToken: p.FCMToken})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return nil, fmt.Errorf("directory cache encode: %w", err)
	}
	return data, nil
}

func decodeDirectory(data []byte) ([]models.Provider, error) {
	var cached []cachedProvider
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("directory cache decode: %w", err)
	}
	providers := make([]models.Provider, 0, len(cached))
	for _, c := range cached {
		p := c.Provider
		p.FCMToken = c.FCMToken
		providers = append(providers, p)
	}
	return providers, nil
}
