package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	derr "github.com/tojlon/Soccer-Score/internal/domain/errors"
)

// RequestBudget counts outgoing football-data requests in fixed windows shared by
// every process pointed at the same redis.
type RequestBudget struct {
	redis  *redis.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRequestBudget(redis *redis.Client, prefix string, limit int64, window time.Duration) *RequestBudget {
	if window <= 0 {
		window = time.Minute
	}
	return &RequestBudget{
		redis:  redis,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (b *RequestBudget) Acquire(ctx context.Context) error {
	const op = "redis.RequestBudget.Acquire"

	key := windowKey(b.prefix, b.now(), b.window)

	count, err := b.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%s: incr %s: %w", op, key, err)
	}

	// One key per window; the TTL is set by its first request.
	if count == 1 {
		if err := b.redis.Expire(ctx, key, b.window).Err(); err != nil {
			return fmt.Errorf("%s: expire %s: %w", op, key, err)
		}
	}

	if count > b.limit {
		return fmt.Errorf("%s: %d requests in window: %w", op, count, derr.ErrQuotaExceeded)
	}

	return nil
}

func windowKey(prefix string, now time.Time, window time.Duration) string {
	index := now.UTC().UnixNano() / int64(window)
	return fmt.Sprintf("%s:%d", prefix, index)
}
