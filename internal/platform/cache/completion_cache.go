package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
	"tle_zone_assist/internal/domain/model"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

const completionKeyPrefix = "ai:completion:"

// CompletionCache memoizes completions per (language, code) pair. Debounced
// clients resend identical buffers often (cursor moves, undo/redo), so hits
// are common.
type CompletionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCompletionCache(rdb *redis.Client, ttl time.Duration) *CompletionCache {
	return &CompletionCache{rdb: rdb, ttl: ttl}
}

// CompletionKey derives the cache key. The code is hashed so keys stay
// bounded regardless of buffer size.
func CompletionKey(lang model.Language, code string) string {
	sum := blake2b.Sum256([]byte(lang.Slug() + "\x00" + code))
	return completionKeyPrefix + lang.Slug() + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached completion and whether there was one.
func (c *CompletionCache) Get(ctx context.Context, lang model.Language, code string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, CompletionKey(lang, code)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get completion: %w", err)
	}
	return val, true, nil
}

func (c *CompletionCache) Set(ctx context.Context, lang model.Language, code, completion string) error {
	if err := c.rdb.Set(ctx, CompletionKey(lang, code), completion, c.ttl).Err(); err != nil {
		return fmt.Errorf("set completion: %w", err)
	}
	return nil
}
