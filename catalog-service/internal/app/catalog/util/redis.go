package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hijabstyles/catalog-service/internal/app/catalog/entity"
	"hijabstyles/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const stylesCacheKey = "styles:all"

// RedisClient кеширует список стилей вместе с их сводками рейтинга
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) GetStyles(ctx context.Context) ([]entity.Style, error) {
	data, err := r.client.Get(ctx, stylesCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss("catalog-service", "styles")
			return nil, nil
		}
		metrics.RecordRedisError("catalog-service", "get")
		return nil, fmt.Errorf("failed to get styles from cache: %w", err)
	}

	var styles []entity.Style
	if err := json.Unmarshal(data, &styles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal styles: %w", err)
	}

	metrics.RecordCacheHit("catalog-service", "styles")
	return styles, nil
}

func (r *RedisClient) SetStyles(ctx context.Context, styles []entity.Style, ttl time.Duration) error {
	data, err := json.Marshal(styles)
	if err != nil {
		return fmt.Errorf("failed to marshal styles: %w", err)
	}

	if err := r.client.Set(ctx, stylesCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError("catalog-service", "set")
		return fmt.Errorf("failed to set styles in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) DeleteStyles(ctx context.Context) error {
	if err := r.client.Del(ctx, stylesCacheKey).Err(); err != nil {
		metrics.RecordRedisError("catalog-service", "del")
		return fmt.Errorf("failed to delete styles from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
