package ratelimit

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"restaurant-reservation/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Token bucket kept in one Redis hash per key. Refill is continuous at refill_per_ms.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_per_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
tokens = math.min(capacity, tokens + elapsed * refill_per_ms)
last_refill = now_ms

local allowed = 0
local retry_after_ms = 0
if tokens >= 1 then
    allowed = 1
    tokens = tokens - 1
elseif refill_per_ms > 0 then
    retry_after_ms = math.ceil((1 - tokens) / refill_per_ms)
end

redis.call('HSET', key, 'tokens', tostring(tokens), 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, math.floor(tokens), retry_after_ms }
`)

type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type Limiter struct {
	rdb      *redis.Client
	capacity int
	refill   float64 // tokens per second
	prefix   string
	now      func() time.Time
}

func NewLimiter(rdb *redis.Client, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		rdb:      rdb,
		capacity: cfg.Capacity,
		refill:   cfg.Refill,
		prefix:   cfg.Prefix,
		now:      time.Now,
	}
}

func (l *Limiter) Capacity() int { return l.capacity }

// Allow takes one token from the bucket named key.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	ttl := l.ttlSeconds()
	vals, err := tokenBucketScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key},
		l.now().UnixMilli(),
		l.capacity,
		l.refill/1000.0,
		ttl,
	).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: script failed: %w", err)
	}

	arr, ok := vals.([]any)
	if !ok || len(arr) != 3 {
		return Decision{}, fmt.Errorf("ratelimit: unexpected script result %#v", vals)
	}

	return Decision{
		Allowed:    asInt64(arr[0]) == 1,
		Remaining:  asInt64(arr[1]),
		RetryAfter: time.Duration(asInt64(arr[2])) * time.Millisecond,
	}, nil
}

// A full refill plus slack, so idle buckets disappear on their own.
func (l *Limiter) ttlSeconds() int64 {
	if l.refill <= 0 {
		return 3600
	}
	return int64(math.Ceil(float64(l.capacity)/l.refill)) + 60
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
