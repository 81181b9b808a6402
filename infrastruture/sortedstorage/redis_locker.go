package sortedstorage

import (
	"context"
	"time"

	"github.com/dpersh/robot/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	lockSuffix        = ":run_lock"
	defaultLockExpiry = 2 * time.Minute
)

var _ i.RunLocker = &RedisLocker{}

// RedisLocker hands out distributed run locks through redsync.
type RedisLocker struct {
	locker *redsync.Redsync
	expiry time.Duration
	tries  int
}

// NewRedisLocker creates a locker over client. Locks expire after expiry
// (two minutes when non-positive); tries bounds acquisition attempts.
func NewRedisLocker(client *redis.Client, expiry time.Duration, tries int) *RedisLocker {
	if expiry <= 0 {
		expiry = defaultLockExpiry
	}
	if tries <= 0 {
		tries = 32
	}

	pool := goredis.NewPool(client)
	return &RedisLocker{
		locker: redsync.New(pool),
		expiry: expiry,
		tries:  tries,
	}
}

// Lock acquires the named lock.
func (rl *RedisLocker) Lock(ctx context.Context, name string) (func() error, error) {
	mutex := rl.locker.NewMutex(name+lockSuffix, redsync.WithExpiry(rl.expiry), redsync.WithTries(rl.tries))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() error {
		_, err := mutex.Unlock()
		return err
	}, nil
}
