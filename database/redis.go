package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hametuha/hamelp-be/types"
	"github.com/redis/go-redis/v9"
)

const (
	keyCatalog = "hamelp:faq:catalog"
)

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// RedisCatalogStore persists the catalog snapshot as a single JSON value.
// SET replaces the whole snapshot in one command, so readers see either
// the previous or the new catalog, never a mix.
type RedisCatalogStore struct {
	client *redis.Client
}

func NewRedisCatalogStore(client *redis.Client) *RedisCatalogStore {
	return &RedisCatalogStore{client: client}
}

func (s *RedisCatalogStore) Save(ctx context.Context, catalog *types.Catalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyCatalog, data, 0).Err()
}

func (s *RedisCatalogStore) Load(ctx context.Context) (*types.Catalog, error) {
	data, err := s.client.Get(ctx, keyCatalog).Bytes()
	if err == redis.Nil {
		return &types.Catalog{}, nil
	}
	if err != nil {
		return nil, err
	}
	var catalog types.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// RedisRateStore backs the admission counters. Increment is atomic; the
// TTL is attached only when the counter is created so the window does not
// slide on every hit.
type RedisRateStore struct {
	client *redis.Client
}

func NewRedisRateStore(client *redis.Client) *RedisRateStore {
	return &RedisRateStore{client: client}
}

func (s *RedisRateStore) Count(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

func (s *RedisRateStore) Increment(ctx context.Context, key string, ttl time.Duration) error {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return s.client.Expire(ctx, key, ttl).Err()
	}
	return nil
}
