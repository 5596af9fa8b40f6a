package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedAccount struct {
	AccountID string  `json:"accountId"`
	Balance   float64 `json:"balance"`
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, time.Minute)
}

func TestCacheSetGetInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := AccountKey("uid-1", "acc-1")

	var out cachedAccount
	hit, err := c.Get(ctx, key, &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if hit {
		t.Fatalf("expected miss on empty cache")
	}

	in := cachedAccount{AccountID: "acc-1", Balance: 750}
	if err := c.Set(ctx, key, in); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	hit, err = c.Get(ctx, key, &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !hit {
		t.Fatalf("expected hit after Set")
	}
	if out != in {
		t.Fatalf("cached value = %+v, want %+v", out, in)
	}

	if err := c.Invalidate(ctx, key); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}
	hit, err = c.Get(ctx, key, &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if hit {
		t.Fatalf("expected miss after Invalidate")
	}
}

func TestCacheNilClientPassThrough(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	hit, err := c.Get(ctx, "k", &cachedAccount{})
	if err != nil || hit {
		t.Fatalf("nil cache Get = (%v, %v), want miss with no error", hit, err)
	}
	if err := c.Set(ctx, "k", cachedAccount{}); err != nil {
		t.Fatalf("nil cache Set returned error: %v", err)
	}
	if err := c.Invalidate(ctx, "k"); err != nil {
		t.Fatalf("nil cache Invalidate returned error: %v", err)
	}
}
