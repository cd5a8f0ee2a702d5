package verification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage persists the verification credential so it survives restarts. It
// is the only durable state in this service.
type Storage interface {
	Load(ctx context.Context) (value string, issuedAt time.Time, ok bool, err error)
	Save(ctx context.Context, value string, issuedAt time.Time) error
	Delete(ctx context.Context) error
}

const (
	redisValueKey    = "verification:phone"
	redisIssuedAtKey = "verification:issued_at"
)

// RedisStorage keeps the credential under two plain keys.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage builds the Redis-backed credential storage.
func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

// Load reads both keys; a missing value key means no credential is held.
func (s *RedisStorage) Load(ctx context.Context) (string, time.Time, bool, error) {
	value, err := s.client.Get(ctx, redisValueKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("load credential value: %w", err)
	}

	raw, err := s.client.Get(ctx, redisIssuedAtKey).Result()
	if errors.Is(err, redis.Nil) {
		// Half-written state: treat as absent rather than guessing an age.
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("load credential timestamp: %w", err)
	}

	issuedAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("parse credential timestamp: %w", err)
	}
	return value, issuedAt, true, nil
}

// Save writes both keys.
func (s *RedisStorage) Save(ctx context.Context, value string, issuedAt time.Time) error {
	if err := s.client.Set(ctx, redisValueKey, value, 0).Err(); err != nil {
		return fmt.Errorf("save credential value: %w", err)
	}
	if err := s.client.Set(ctx, redisIssuedAtKey, issuedAt.UTC().Format(time.RFC3339Nano), 0).Err(); err != nil {
		return fmt.Errorf("save credential timestamp: %w", err)
	}
	return nil
}

// Delete removes both keys.
func (s *RedisStorage) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, redisValueKey, redisIssuedAtKey).Err(); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

type memoryStorage struct {
	mu       sync.Mutex
	value    string
	issuedAt time.Time
	held     bool
}

// NewMemoryStorage constructs volatile credential storage for tests and for
// dev runs without Redis.
func NewMemoryStorage() Storage {
	return &memoryStorage{}
}

func (s *memoryStorage) Load(_ context.Context) (string, time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.issuedAt, s.held, nil
}

func (s *memoryStorage) Save(_ context.Context, value string, issuedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.issuedAt = issuedAt
	s.held = true
	return nil
}

func (s *memoryStorage) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	s.issuedAt = time.Time{}
	s.held = false
	return nil
}
