package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "idem:charge:"
	pendingValue = "pending"
	DefaultTTL   = 24 * time.Hour
)

// KV is the subset of *redis.Client the store needs.
type KV interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ KV = (*redis.Client)(nil)

// RedisIdempotencyStore claims a key with SETNX and later replaces the
// placeholder with the serialized ChargeResult.
type RedisIdempotencyStore struct {
	kv  KV
	ttl time.Duration
}

var _ interfaces.IIdempotencyStore = (*RedisIdempotencyStore)(nil)

func NewRedisIdempotencyStore(kv KV, ttl time.Duration) *RedisIdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisIdempotencyStore{kv: kv, ttl: ttl}
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string) (*entities.ChargeResult, bool, error) {
	ok, err := s.kv.SetNX(ctx, keyPrefix+key, pendingValue, s.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if ok {
		return nil, true, nil
	}

	raw, err := s.kv.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; try once more
		ok, err = s.kv.SetNX(ctx, keyPrefix+key, pendingValue, s.ttl).Result()
		if err != nil {
			return nil, false, fmt.Errorf("reserve idempotency key: %w", err)
		}
		return nil, ok, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read idempotency key: %w", err)
	}
	if raw == pendingValue {
		return nil, false, nil
	}

	var res entities.ChargeResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, false, fmt.Errorf("decode cached charge: %w", err)
	}
	return &res, false, nil
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key string, result entities.ChargeResult) error {
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyPrefix+key, string(b), s.ttl).Err()
}

func (s *RedisIdempotencyStore) Abandon(ctx context.Context, key string) error {
	return s.kv.Del(ctx, keyPrefix+key).Err()
}

// MemoryIdempotencyStore is the single-process fallback used when Redis is not configured.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]*entities.ChargeResult
}

var _ interfaces.IIdempotencyStore = (*MemoryIdempotencyStore)(nil)

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{entries: make(map[string]*entities.ChargeResult)}
}

func (s *MemoryIdempotencyStore) Reserve(_ context.Context, key string) (*entities.ChargeResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.entries[key]
	if !ok {
		s.entries[key] = nil
		return nil, true, nil
	}
	if res == nil {
		return nil, false, nil
	}
	cp := *res
	return &cp, false, nil
}

func (s *MemoryIdempotencyStore) Complete(_ context.Context, key string, result entities.ChargeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &result
	return nil
}

func (s *MemoryIdempotencyStore) Abandon(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
