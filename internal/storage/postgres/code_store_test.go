package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/clock"
	"github.com/Mwoo0383/lotto-system/internal/testutil"
)

func TestCodeStore(t *testing.T) {
	pool := testutil.NewTestPool(t)
	store := NewCodeStore(pool, clock.NewSystem())
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("round trip", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if err := store.Save(ctx, "verification:abc", "123456", 3*time.Minute); err != nil {
			t.Fatalf("save: %v", err)
		}

		code, ok, err := store.Get(ctx, "verification:abc")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !ok || code != "123456" {
			t.Fatalf("expected stored code, got ok=%v code=%q", ok, code)
		}

		if err := store.Delete(ctx, "verification:abc"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		_, ok, err = store.Get(ctx, "verification:abc")
		if err != nil {
			t.Fatalf("get after delete: %v", err)
		}
		if ok {
			t.Fatalf("expected code gone after delete")
		}
	})

	t.Run("save replaces an earlier code", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if err := store.Save(ctx, "verification:abc", "111111", 3*time.Minute); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := store.Save(ctx, "verification:abc", "222222", 3*time.Minute); err != nil {
			t.Fatalf("re-save: %v", err)
		}

		code, ok, err := store.Get(ctx, "verification:abc")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !ok || code != "222222" {
			t.Fatalf("expected newest code, got ok=%v code=%q", ok, code)
		}
	})

	t.Run("expired code is invisible", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if err := store.Save(ctx, "verification:abc", "123456", -time.Second); err != nil {
			t.Fatalf("save: %v", err)
		}
		_, ok, err := store.Get(ctx, "verification:abc")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ok {
			t.Fatalf("expected expired code to be invisible")
		}
	})

	t.Run("expiry follows the injected clock", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		now := time.Now().UTC()
		issued := NewCodeStore(pool, clock.NewFixed(now))
		if err := issued.Save(ctx, "verification:abc", "123456", 3*time.Minute); err != nil {
			t.Fatalf("save: %v", err)
		}

		before := NewCodeStore(pool, clock.NewFixed(now.Add(179*time.Second)))
		_, ok, err := before.Get(ctx, "verification:abc")
		if err != nil {
			t.Fatalf("get before ttl: %v", err)
		}
		if !ok {
			t.Fatalf("expected code visible inside its ttl")
		}

		after := NewCodeStore(pool, clock.NewFixed(now.Add(3*time.Minute)))
		_, ok, err = after.Get(ctx, "verification:abc")
		if err != nil {
			t.Fatalf("get at ttl: %v", err)
		}
		if ok {
			t.Fatalf("expected code expired at the ttl boundary")
		}
	})

	t.Run("missing key", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		_, ok, err := store.Get(ctx, "verification:missing")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ok {
			t.Fatalf("expected missing key to report not found")
		}
	})
}
