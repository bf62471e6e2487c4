// Package cache is a thin JSON cache on Redis. Repositories consult it
// on reads and invalidate on writes; a cache failure is never fatal.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"baartal/internal/models"
)

type Service struct {
	client *redis.Client
	ttl    time.Duration
}

func NewService(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{client: client, ttl: defaultTTL}
}

// Set stores a JSON-encoded value under key with the default TTL.
func (s *Service) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

// Get loads key into dest. The bool reports whether the key existed.
func (s *Service) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *Service) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds "entity:keyType:value" cache keys.
func (s *Service) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching

func (s *Service) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), user)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, bool) {
	var user models.User
	found, err := s.Get(ctx, s.GenerateKey("user", "id", id), &user)
	if err != nil || !found {
		return nil, false
	}
	return &user, true
}

func (s *Service) InvalidateUser(ctx context.Context, id uuid.UUID) error {
	return s.Delete(ctx, s.GenerateKey("user", "id", id))
}

// Business caching

func (s *Service) CacheBusiness(ctx context.Context, business *models.Business) error {
	if business == nil {
		return errors.New("cannot cache nil business")
	}
	return s.Set(ctx, s.GenerateKey("business", "id", business.ID), business)
}

func (s *Service) GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, bool) {
	var business models.Business
	found, err := s.Get(ctx, s.GenerateKey("business", "id", id), &business)
	if err != nil || !found {
		return nil, false
	}
	return &business, true
}

func (s *Service) InvalidateBusiness(ctx context.Context, id uuid.UUID) error {
	return s.Delete(ctx, s.GenerateKey("business", "id", id))
}

// HealthCheck pings Redis.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close closes the Redis client connection.
func (s *Service) Close() error {
	return s.client.Close()
}
