package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestAllow_WithinLimit(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := store.Allow(ctx, "ip:route", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request %d blocked under the limit", i)
		}
	}

	allowed, err := store.Allow(ctx, "ip:route", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatalf("fourth request allowed over a limit of 3")
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if ok, _ := store.Allow(ctx, "a", 1, time.Minute); !ok {
		t.Fatalf("first key blocked")
	}
	if ok, _ := store.Allow(ctx, "a", 1, time.Minute); ok {
		t.Fatalf("first key not limited")
	}
	if ok, _ := store.Allow(ctx, "b", 1, time.Minute); !ok {
		t.Fatalf("second key affected by first key's counter")
	}
}

func TestAllow_WindowResets(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if ok, _ := store.Allow(ctx, "k", 1, time.Minute); !ok {
		t.Fatalf("first request blocked")
	}
	if ok, _ := store.Allow(ctx, "k", 1, time.Minute); ok {
		t.Fatalf("second request allowed within window")
	}

	mr.FastForward(2 * time.Minute)

	if ok, _ := store.Allow(ctx, "k", 1, time.Minute); !ok {
		t.Fatalf("request blocked after window expiry")
	}
}
