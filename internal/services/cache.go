package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrCacheMiss is returned by Get when the key is absent or caching is disabled.
var ErrCacheMiss = errors.New("cache miss")

// CacheService caches slow-changing reference data (team list, odds boards)
// in Redis. A nil client disables caching: Get always misses and Set is a
// no-op. Season stats and insights are never cached.
type CacheService struct {
	client     *redis.Client
	expiration time.Duration
}

func NewCacheService(client *redis.Client, expiration time.Duration) *CacheService {
	return &CacheService{
		client:     client,
		expiration: expiration,
	}
}

// ConnectRedis parses url and pings the server. An empty url returns a nil
// client, which disables caching.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (s *CacheService) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if !s.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := s.client.Set(ctx, key, data, s.expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if !s.Enabled() {
		return ErrCacheMiss
	}

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// DeletePattern removes every key matching a glob pattern.
func (s *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}

	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.Delete(ctx, keys...)
}

// Ping checks the Redis connection; a disabled cache is always healthy.
func (s *CacheService) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// Cache key generators
func TeamsCacheKey() string {
	return "teams:all"
}

func OddsCacheKey(gameID uint) string {
	return fmt.Sprintf("odds:game:%d", gameID)
}

func logCacheError(logger *logrus.Logger, op, key string, err error) {
	if err == nil || errors.Is(err, ErrCacheMiss) {
		return
	}
	logger.WithFields(logrus.Fields{
		"component": "cache",
		"op":        op,
		"key":       key,
	}).Warnf("Cache %s failed: %v", op, err)
}
