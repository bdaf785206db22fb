package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	derr "github.com/tojlon/Soccer-Score/internal/domain/errors"
)

func newTestBudget(t *testing.T, limit int64) (*RequestBudget, *miniredis.Miniredis, *time.Time) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	b := NewRequestBudget(client, "footballdata:requests", limit, time.Minute)
	b.now = func() time.Time { return now }

	return b, mr, &now
}

func TestAcquire_RejectsPastLimit(t *testing.T) {
	b, _, _ := newTestBudget(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := b.Acquire(ctx); err != nil {
			t.Fatalf("call %d: expected no error, got %v", i+1, err)
		}
	}

	err := b.Acquire(ctx)
	if !errors.Is(err, derr.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestAcquire_NextWindowStartsFromZero(t *testing.T) {
	b, _, now := newTestBudget(t, 1)
	ctx := context.Background()

	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := b.Acquire(ctx); !errors.Is(err, derr.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	*now = now.Add(time.Minute)
	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("expected fresh window, got %v", err)
	}
}

func TestAcquire_SetsWindowTTLOnce(t *testing.T) {
	b, mr, now := newTestBudget(t, 10)
	ctx := context.Background()
	key := windowKey("footballdata:requests", *now, time.Minute)

	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Fatalf("expected ttl %v, got %v", time.Minute, ttl)
	}

	mr.FastForward(20 * time.Second)
	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ttl := mr.TTL(key); ttl != 40*time.Second {
		t.Fatalf("expected ttl left untouched at 40s, got %v", ttl)
	}

	got, err := mr.Get(key)
	if err != nil {
		t.Fatalf("expected counter key, got %v", err)
	}
	if got != "2" {
		t.Fatalf("expected counter 2, got %s", got)
	}
}

func TestAcquire_BackendFailureIsNotQuota(t *testing.T) {
	b, mr, _ := newTestBudget(t, 10)
	mr.Close()

	err := b.Acquire(context.Background())
	if err == nil {
		t.Fatal("expected error with redis down")
	}
	if errors.Is(err, derr.ErrQuotaExceeded) {
		t.Fatalf("expected backend error, got quota error %v", err)
	}
}

func TestWindowKey_SameWindow(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 6, 1, 18, 0, 5, 0, time.UTC)
	first := windowKey("footballdata:requests", base, time.Minute)
	second := windowKey("footballdata:requests", base.Add(50*time.Second), time.Minute)

	if first != second {
		t.Fatalf("expected same key inside window, got %s and %s", first, second)
	}
}

func TestWindowKey_NextWindow(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 6, 1, 18, 0, 59, 0, time.UTC)
	first := windowKey("footballdata:requests", base, time.Minute)
	second := windowKey("footballdata:requests", base.Add(2*time.Second), time.Minute)

	if first == second {
		t.Fatalf("expected new key after window boundary, got %s twice", first)
	}
}

func TestWindowKey_IgnoresZone(t *testing.T) {
	t.Parallel()

	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	at := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	if windowKey("q", at, time.Minute) != windowKey("q", at.In(paris), time.Minute) {
		t.Fatal("expected key to depend on instant only")
	}
}

func TestNewRequestBudget_DefaultWindow(t *testing.T) {
	t.Parallel()

	b := NewRequestBudget(nil, "q", 10, 0)
	if b.window != time.Minute {
		t.Fatalf("expected one minute window, got %v", b.window)
	}
}
