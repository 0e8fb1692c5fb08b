// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "resp:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("ping after connect: %v", err)
	}
}

func TestResponseCacheRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := rc.Get(ctx, "posts"); ok {
		t.Fatal("unexpected hit on a cold cache")
	}

	body := []byte(`[{"title":"hello"}]`)
	rc.Set(ctx, "posts", body)

	got, ok := rc.Get(ctx, "posts")
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if !bytes.Equal(got, body) {
		t.Errorf("cached body = %q, want %q", got, body)
	}

	rc.Invalidate(ctx, "posts")
	if _, ok := rc.Get(ctx, "posts"); ok {
		t.Error("expected a miss after Invalidate")
	}
}

func TestResponseCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, time.Minute)
	ctx := context.Background()

	rc.Set(ctx, "posts", []byte("a"))
	rc.Set(ctx, "sitemap", []byte("b"))

	rc.InvalidateAll(ctx)

	if _, ok := rc.Get(ctx, "posts"); ok {
		t.Error("posts survived InvalidateAll")
	}
	if _, ok := rc.Get(ctx, "sitemap"); ok {
		t.Error("sitemap survived InvalidateAll")
	}
}

func TestResponseCacheNilIsNoop(t *testing.T) {
	var rc *ResponseCache
	ctx := context.Background()

	// A nil cache must be safe to call everywhere.
	rc.Set(ctx, "k", []byte("v"))
	if _, ok := rc.Get(ctx, "k"); ok {
		t.Error("nil cache returned a hit")
	}
	rc.Invalidate(ctx, "k")
	rc.InvalidateAll(ctx)
}
