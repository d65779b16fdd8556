package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrLockNotAcquired is returned by TryLock when another holder owns the lock.
var ErrLockNotAcquired = errors.New("lock is held by another client")

const unlockScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

// Lock represents a distributed lock
type Lock struct {
	client    *Client
	key       string
	value     string
	ttl       time.Duration
	namespace string
}

// NewLock creates a new distributed lock. The lock expires after ttl even if never released.
func NewLock(client *Client, namespace string, key string, ttl time.Duration) *Lock {
	return &Lock{
		client:    client,
		key:       key,
		value:     uuid.New().String(),
		ttl:       ttl,
		namespace: namespace,
	}
}

// buildLockKey constructs the full lock key using namespace::key format
func (l *Lock) buildLockKey() string {
	if l.namespace != "" {
		return l.namespace + "::" + l.key
	}
	return l.key
}

// TryLock makes a single attempt to acquire the lock.
func (l *Lock) TryLock(ctx context.Context) error {
	acquired, err := l.client.GetClient().SetNX(ctx, l.buildLockKey(), l.value, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return ErrLockNotAcquired
	}
	return nil
}

// Unlock releases the lock if it is still held by this client
func (l *Lock) Unlock(ctx context.Context) error {
	result, err := l.client.GetClient().Eval(ctx, unlockScript, []string{l.buildLockKey()}, l.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return fmt.Errorf("lock was not held by this client")
	}
	return nil
}

// WithLock runs fn only if the lock could be acquired on the first attempt, releasing it afterwards.
func WithLock(ctx context.Context, lock *Lock, fn func(ctx context.Context) error) error {
	if err := lock.TryLock(ctx); err != nil {
		return err
	}
	defer func() {
		_ = lock.Unlock(context.WithoutCancel(ctx))
	}()
	return fn(ctx)
}
