package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps airlines and airports, which never change after import, so
// resolving search results does not hit the store for every offer.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl,
	)
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// GetAirline returns nil without error on a cache miss.
func (c *RedisCache) GetAirline(ctx context.Context, id int64) (*domain.Airline, error) {
	var a domain.Airline
	ok, err := c.get(ctx, airlineKey(id), &a)
	if err != nil || !ok {
		return nil, err
	}
	return &a, nil
}

func (c *RedisCache) SetAirline(ctx context.Context, a domain.Airline) error {
	return c.set(ctx, airlineKey(a.ID), a)
}

// GetAirport returns nil without error on a cache miss.
func (c *RedisCache) GetAirport(ctx context.Context, code string) (*domain.Airport, error) {
	var a domain.Airport
	ok, err := c.get(ctx, airportKey(code), &a)
	if err != nil || !ok {
		return nil, err
	}
	return &a, nil
}

func (c *RedisCache) SetAirport(ctx context.Context, a domain.Airport) error {
	return c.set(ctx, airportKey(a.Code), a)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, string(payload), c.ttl).Err()
}

func airlineKey(id int64) string {
	return fmt.Sprintf("cache:airline:%d", id)
}

func airportKey(code string) string {
	return "cache:airport:" + code
}
