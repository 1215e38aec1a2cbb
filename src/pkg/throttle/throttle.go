// Package throttle counts failed attempts per key and blocks keys that fail too often.
package throttle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type Limiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// RedisLimiter keeps a fixed-window failure counter per key, shared by all replicas.
type RedisLimiter struct {
	Client      redis.UniversalClient
	MaxAttempts int64
	Window      time.Duration
	Prefix      string
}

func NewRedisLimiter(client redis.UniversalClient, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		Client:      client,
		MaxAttempts: int64(maxAttempts),
		Window:      window,
		Prefix:      "CUSTOMER:LOGIN-FAIL:",
	}
}

func (l *RedisLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	n, err := l.Client.Get(ctx, l.Prefix+key).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read attempts: %w", err)
	}
	return n >= l.MaxAttempts, nil
}

func (l *RedisLimiter) Fail(ctx context.Context, key string) error {
	k := l.Prefix + key
	_, err := l.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.Window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.Client.Del(ctx, l.Prefix+key).Err()
}

// MemoryLimiter is a per-process token bucket per key, used when redis is disabled.
// A key is blocked once its bucket of MaxAttempts failures is drained; it refills over Window.
type MemoryLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*rate.Limiter
	maxAttempts int
	every       rate.Limit
}

const memoryLimiterMaxKeys = 10000

func NewMemoryLimiter(maxAttempts int, window time.Duration) *MemoryLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &MemoryLimiter{
		buckets:     make(map[string]*rate.Limiter),
		maxAttempts: maxAttempts,
		every:       rate.Every(window / time.Duration(maxAttempts)),
	}
}

func (l *MemoryLimiter) bucket(key string) *rate.Limiter {
	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= memoryLimiterMaxKeys {
			l.prune()
		}
		b = rate.NewLimiter(l.every, l.maxAttempts)
		l.buckets[key] = b
	}
	return b
}

// prune drops buckets that refilled completely.
func (l *MemoryLimiter) prune() {
	for k, b := range l.buckets {
		if b.Tokens() >= float64(l.maxAttempts) {
			delete(l.buckets, k)
		}
	}
}

func (l *MemoryLimiter) Blocked(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		return false, nil
	}
	return b.Tokens() < 1, nil
}

func (l *MemoryLimiter) Fail(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bucket(key).Allow()
	return nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
	return nil
}
