package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

type RedisOptions struct {
	Prefix string
	Expiry time.Duration
	Tries  int
}

// Redis is a distributed lock shared by every instance that talks to the
// same redis.
type Redis struct {
	rs   *redsync.Redsync
	opts RedisOptions
}

func NewRedis(client *redis.Client, opts RedisOptions) *Redis {
	return &Redis{
		rs:   redsync.New(goredis.NewPool(client)),
		opts: opts,
	}
}

func (r *Redis) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	mutex := r.rs.NewMutex(
		r.opts.Prefix+key,
		redsync.WithExpiry(r.opts.Expiry),
		redsync.WithTries(r.opts.Tries),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, err)
	}

	return func() error {
		// the holder's ctx may already be cancelled, unlocking must still happen
		if _, err := mutex.UnlockContext(context.WithoutCancel(ctx)); err != nil {
			return fmt.Errorf("failed to unlock %s: %w", key, err)
		}
		return nil
	}, nil
}
