package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestTokenBucketBurstAndRefill(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewTokenBucket(2, 1)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow(ctx, "upstream:7186.T"); !ok {
			t.Fatalf("call %d should pass", i)
		}
	}
	if ok, _ := l.Allow(ctx, "upstream:7186.T"); ok {
		t.Fatalf("third call should be refused")
	}
	// other keys have their own bucket
	if ok, _ := l.Allow(ctx, "upstream:8306.T"); !ok {
		t.Fatalf("separate key should pass")
	}

	now = now.Add(1500 * time.Millisecond)
	if ok, _ := l.Allow(ctx, "upstream:7186.T"); !ok {
		t.Fatalf("refilled token should pass")
	}
	if ok, _ := l.Allow(ctx, "upstream:7186.T"); ok {
		t.Fatalf("only one token should have refilled")
	}
}

func TestTokenBucketCapsAtCapacity(t *testing.T) {
	now := time.Unix(0, 0)
	l := NewTokenBucket(1, 10)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = l.Allow(ctx, "k")
	now = now.Add(time.Hour)
	if ok, _ := l.Allow(ctx, "k"); !ok {
		t.Fatalf("expected pass after refill")
	}
	if ok, _ := l.Allow(ctx, "k"); ok {
		t.Fatalf("bucket must not exceed capacity")
	}
}

func TestUnlimited(t *testing.T) {
	for i := 0; i < 100; i++ {
		if ok, err := (Unlimited{}).Allow(context.Background(), "k"); !ok || err != nil {
			t.Fatalf("unlimited refused")
		}
	}
}

func TestRedisWindowKey(t *testing.T) {
	r := NewRedisWindow(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "kabucard", 5, 10*time.Second)
	defer r.Close()
	r.now = func() time.Time { return time.Unix(105, 0) }
	if got := r.windowKey("upstream:7186.T"); got != "kabucard:rl:upstream:7186.T:10" {
		t.Fatalf("key %q", got)
	}
	r.now = func() time.Time { return time.Unix(109, 999) }
	if got := r.windowKey("upstream:7186.T"); got != "kabucard:rl:upstream:7186.T:10" {
		t.Fatalf("same window expected, got %q", got)
	}
}

func TestRedisWindowUnreachable(t *testing.T) {
	r := NewRedisWindow(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}), "kabucard", 5, time.Second)
	defer r.Close()
	if _, err := r.Allow(context.Background(), "k"); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
}

func newMiniRedisWindow(t *testing.T, limit int64, window time.Duration) (*RedisWindow, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedisWindow(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "kabucard", limit, window)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisWindowCountsPerWindow(t *testing.T) {
	r, mr := newMiniRedisWindow(t, 3, 10*time.Second)
	now := time.Unix(100, 0)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := r.Allow(ctx, "upstream:7186.T")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("call %d should pass", i)
		}
	}
	ok, err := r.Allow(ctx, "upstream:7186.T")
	if err != nil {
		t.Fatalf("fourth call: %v", err)
	}
	if ok {
		t.Fatalf("fourth call should be refused")
	}

	key := "kabucard:rl:upstream:7186.T:10"
	if got, _ := mr.Get(key); got != "4" {
		t.Fatalf("counter %q", got)
	}
	if ttl := mr.TTL(key); ttl != 10*time.Second {
		t.Fatalf("ttl %v", ttl)
	}

	// next window starts from zero
	now = now.Add(10 * time.Second)
	if ok, err := r.Allow(ctx, "upstream:7186.T"); err != nil || !ok {
		t.Fatalf("new window should pass: ok=%v err=%v", ok, err)
	}
}

func TestRedisWindowKeysAreIndependent(t *testing.T) {
	r, _ := newMiniRedisWindow(t, 1, time.Minute)
	r.now = func() time.Time { return time.Unix(0, 0) }
	ctx := context.Background()

	if ok, _ := r.Allow(ctx, "a"); !ok {
		t.Fatalf("a should pass")
	}
	if ok, _ := r.Allow(ctx, "a"); ok {
		t.Fatalf("a should be refused")
	}
	if ok, _ := r.Allow(ctx, "b"); !ok {
		t.Fatalf("b should pass")
	}
}
