package fallback

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// AvailabilityStore remembers models that answered "not found" so later
// invocations can skip them for a while.
type AvailabilityStore interface {
	MarkUnavailable(ctx context.Context, model string)
	IsUnavailable(ctx context.Context, model string) bool
}

// MemoryAvailabilityStore keeps marks in process memory. A non-positive ttl
// disables it: marks are dropped instead of kept forever.
type MemoryAvailabilityStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryAvailabilityStore(ttl time.Duration) *MemoryAvailabilityStore {
	// Expired items are purged every 10 minutes
	return &MemoryAvailabilityStore{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (s *MemoryAvailabilityStore) MarkUnavailable(_ context.Context, model string) {
	if s.ttl <= 0 {
		return
	}
	s.cache.Set(model, true, s.ttl)
}

func (s *MemoryAvailabilityStore) IsUnavailable(_ context.Context, model string) bool {
	_, found := s.cache.Get(model)
	return found
}

const redisKeyPrefix = "docstruct:model_unavailable:"

// RedisKV is the subset of redis.Cmdable the store needs.
type RedisKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisAvailabilityStore shares the unavailable set between replicas.
// Redis failures degrade to "available".
type RedisAvailabilityStore struct {
	rdb RedisKV
	ttl time.Duration
}

func NewRedisAvailabilityStore(rdb RedisKV, ttl time.Duration) *RedisAvailabilityStore {
	return &RedisAvailabilityStore{rdb: rdb, ttl: ttl}
}

func (s *RedisAvailabilityStore) MarkUnavailable(ctx context.Context, model string) {
	// ttl 0 would make the key permanent
	if s.ttl <= 0 {
		return
	}
	s.rdb.Set(ctx, redisKeyPrefix+model, "1", s.ttl)
}

func (s *RedisAvailabilityStore) IsUnavailable(ctx context.Context, model string) bool {
	n, err := s.rdb.Exists(ctx, redisKeyPrefix+model).Result()
	if err != nil {
		return false
	}
	return n > 0
}
