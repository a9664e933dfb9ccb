package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ChatQuota enforces a per-user daily budget of assistant requests, backed by
// a Redis counter. Key format: chat_quota:<user_id>:<yyyy-mm-dd>
type ChatQuota struct {
	client *redis.Client
	limit  int64
}

// NewChatQuota creates a ChatQuota allowing limit requests per user per UTC day.
func NewChatQuota(client *redis.Client, limit int) *ChatQuota {
	return &ChatQuota{client: client, limit: int64(limit)}
}

// Allow consumes one request from the user's budget and reports whether the
// request may proceed. The counter expires at the end of the UTC day.
func (q *ChatQuota) Allow(ctx context.Context, userID string) (bool, error) {
	key := q.key(userID, time.Now().UTC())

	n, err := q.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("chat quota incr: %w", err)
	}
	if n == 1 {
		// First request today sets the expiry. 25h leaves slack for clock skew.
		if err := q.client.Expire(ctx, key, 25*time.Hour).Err(); err != nil {
			return false, fmt.Errorf("chat quota expire: %w", err)
		}
	}
	return n <= q.limit, nil
}

func (q *ChatQuota) key(userID string, now time.Time) string {
	return fmt.Sprintf("chat_quota:%s:%s", userID, now.Format("2006-01-02"))
}
