package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CounterStore counts hits per key within a fixed window. Implementations
// must expire keys so idle callers cost nothing.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisStore is the production CounterStore. INCR plus a first-hit EXPIRE
// gives a fixed window shared across gateway instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client; its lifecycle stays with the caller.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// MemoryStore is a single-process CounterStore for tests and Redis-less
// deployments.
type MemoryStore struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counts:  make(map[string]int64),
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.expires[key]; ok && now.After(exp) {
		delete(s.counts, key)
		delete(s.expires, key)
	}
	if _, ok := s.expires[key]; !ok {
		s.expires[key] = now.Add(window)
	}
	s.counts[key]++
	return s.counts[key], nil
}
