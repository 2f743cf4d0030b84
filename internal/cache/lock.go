package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/venuehub/service-bookings/internal/application"
	"github.com/venuehub/service-bookings/internal/domain"
)

// releaseScript deletes the lock key only if it still holds our token, so an
// expired lock re-acquired by another instance is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// RedisLockManager serializes critical sections across service instances
// with SET NX locks.
type RedisLockManager struct {
	client     *redis.Client
	ttl        time.Duration
	retries    int
	retryDelay time.Duration
}

// NewRedisLockManager creates a lock manager. ttl bounds how long a crashed
// holder can block others; retries/retryDelay control acquisition patience.
func NewRedisLockManager(client *redis.Client, ttl time.Duration, retries int, retryDelay time.Duration) *RedisLockManager {
	return &RedisLockManager{
		client:     client,
		ttl:        ttl,
		retries:    retries,
		retryDelay: retryDelay,
	}
}

type redisLock struct {
	client *redis.Client
	key    string
	token  string
}

// Release frees the lock if this holder still owns it.
func (l *redisLock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	return nil
}

// Acquire takes the named lock, retrying a bounded number of times before
// giving up with a conflict error.
func (m *RedisLockManager) Acquire(ctx context.Context, key string) (application.Lock, error) {
	token := uuid.New().String()

	for attempt := 0; attempt <= m.retries; attempt++ {
		ok, err := m.client.SetNX(ctx, key, token, m.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return &redisLock{client: m.client, key: key, token: token}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.retryDelay):
		}
	}

	return nil, domain.NewConflictError("venue is busy processing another booking, try again")
}
