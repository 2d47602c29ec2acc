package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// WindowCounter counts hits per key in fixed time windows.
type WindowCounter struct {
	client *goredis.Client
	prefix string
}

func NewWindowCounter(client *goredis.Client, prefix string) *WindowCounter {
	return &WindowCounter{client: client, prefix: prefix}
}

// Hit increments the counter for key in the current window and returns the
// count so far together with the time left before the window resets.
func (w *WindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	bucket := time.Now().UnixNano() / int64(window)
	redisKey := fmt.Sprintf("%s:%s:%d", w.prefix, key, bucket)

	pipe := w.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to count request: %w", err)
	}

	resetIn := time.Duration((bucket+1)*int64(window) - time.Now().UnixNano())
	return incr.Val(), resetIn, nil
}
