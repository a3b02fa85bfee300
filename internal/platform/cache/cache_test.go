package cache

import (
	"context"
	"strings"
	"testing"
	"time"
	"tle_zone_assist/internal/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, s
}

func TestCompletionCacheRoundTrip(t *testing.T) {
	rdb, s := setupTestRedis(t)
	c := NewCompletionCache(rdb, time.Minute)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, model.LanguagePython, "def f():"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, model.LanguagePython, "def f():", " pass"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok, err := c.Get(ctx, model.LanguagePython, "def f():")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != " pass" {
		t.Fatalf("expected %q, got %q", " pass", got)
	}

	// Same code in another language is a different entry.
	if _, ok, _ := c.Get(ctx, model.LanguageJavaScript, "def f():"); ok {
		t.Fatalf("expected miss for other language")
	}

	s.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, model.LanguagePython, "def f():"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCompletionKeyIsBounded(t *testing.T) {
	key := CompletionKey(model.LanguageGo, strings.Repeat("x", 1<<16))
	if !strings.HasPrefix(key, completionKeyPrefix+"go:") {
		t.Fatalf("unexpected key prefix: %s", key)
	}
	if len(key) > 128 {
		t.Fatalf("expected bounded key, got %d bytes", len(key))
	}
	if CompletionKey(model.LanguageGo, "a") == CompletionKey(model.LanguageGo, "b") {
		t.Fatalf("expected distinct keys for distinct code")
	}
}

func TestLockerExclusive(t *testing.T) {
	rdb, s := setupTestRedis(t)
	l := NewLocker(rdb, "lock:", time.Minute)
	ctx := context.Background()

	release, ok, err := l.Acquire(ctx, "user-1")
	if err != nil || !ok {
		t.Fatalf("first Acquire: ok=%v err=%v", ok, err)
	}

	if _, ok, err := l.Acquire(ctx, "user-1"); err != nil || ok {
		t.Fatalf("second Acquire should fail: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := l.Acquire(ctx, "user-2"); !ok {
		t.Fatalf("locks for other names must be independent")
	}

	release()
	if s.Exists("lock:user-1") {
		t.Fatalf("expected lock key to be deleted")
	}
	if _, ok, _ := l.Acquire(ctx, "user-1"); !ok {
		t.Fatalf("expected Acquire to succeed after release")
	}
}

func TestLockerReleaseKeepsForeignLock(t *testing.T) {
	rdb, s := setupTestRedis(t)
	l := NewLocker(rdb, "lock:", time.Second)
	ctx := context.Background()

	release, ok, _ := l.Acquire(ctx, "user-1")
	if !ok {
		t.Fatalf("expected Acquire to succeed")
	}

	// Our lock expires and another holder takes it.
	s.FastForward(2 * time.Second)
	if _, ok, _ := l.Acquire(ctx, "user-1"); !ok {
		t.Fatalf("expected Acquire to succeed after expiry")
	}

	release()
	if !s.Exists("lock:user-1") {
		t.Fatalf("stale release must not delete the new holder's lock")
	}
}
