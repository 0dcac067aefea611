package locking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// Locker serializes the load-validate-persist cycle so two operators cannot
// interleave writes against the shared schedule. The storage revision check
// is the second, independent guard.
type Locker interface {
	WithLock(ctx context.Context, fn func(ctx context.Context) error) error
}

// LocalLocker is an in-process mutex, sufficient when a single server
// instance owns the schedule.
type LocalLocker struct {
	mu sync.Mutex
}

// NewLocalLocker creates a LocalLocker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{}
}

// WithLock runs fn while holding the lock.
func (l *LocalLocker) WithLock(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(ctx)
}

// RedisLocker serializes writers across server instances with a redsync
// distributed mutex.
type RedisLocker struct {
	rs     *redsync.Redsync
	name   string
	expiry time.Duration
}

// NewRedisLocker creates a RedisLocker holding the named mutex for at most
// expiry per critical section.
func NewRedisLocker(client *redis.Client, name string, expiry time.Duration) *RedisLocker {
	pool := goredis.NewPool(client)
	return &RedisLocker{
		rs:     redsync.New(pool),
		name:   name,
		expiry: expiry,
	}
}

// WithLock acquires the distributed mutex, runs fn, and releases it.
func (l *RedisLocker) WithLock(ctx context.Context, fn func(ctx context.Context) error) error {
	mutex := l.rs.NewMutex(l.name, redsync.WithExpiry(l.expiry))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("failed to acquire schedule lock: %w", err)
	}
	defer func() { _, _ = mutex.UnlockContext(ctx) }()
	return fn(ctx)
}
