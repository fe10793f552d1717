package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventMarker remembers which provider events were already handled so a
// redelivered webhook cannot repeat its side effects.
type EventMarker interface {
	// MarkProcessed records the event id and reports whether this call
	// was the first to see it.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
}

const eventTTL = 72 * time.Hour

type RedisEventMarker struct {
	client *redis.Client
}

func NewRedisEventMarker(client *redis.Client) *RedisEventMarker {
	return &RedisEventMarker{client: client}
}

func (m *RedisEventMarker) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	// Stripe retries far sooner than the TTL; 72h comfortably covers its
	// redelivery window.
	return m.client.SetNX(ctx, "stripe:event:"+eventID, 1, eventTTL).Result()
}
