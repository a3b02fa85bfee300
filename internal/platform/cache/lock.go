package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still holds our value.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Locker hands out short-lived exclusive locks, used to keep one AI review
// in flight per user across API replicas.
type Locker struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewLocker(rdb *redis.Client, prefix string, ttl time.Duration) *Locker {
	return &Locker{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Acquire tries to take the lock for name. When ok is false the lock is held
// by someone else and release is nil.
func (l *Locker) Acquire(ctx context.Context, name string) (release func(), ok bool, err error) {
	key := l.prefix + name
	value := uuid.NewString()

	ok, err = l.rdb.SetNX(ctx, key, value, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release = func() {
		// The caller's context may already be done; releasing must still happen.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		deleted, err := releaseScript.Run(rctx, l.rdb, []string{key}, value).Int64()
		if err != nil {
			log.Printf("ERROR: Failed to release lock %s: %v", key, err)
		} else if deleted != 1 {
			log.Printf("WARN: Did not release lock %s; it might have expired or been taken by another.", key)
		}
	}
	return release, true, nil
}
