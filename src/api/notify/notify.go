// Package notify hands mutation events to the notification side channel.
// Delivery (message composition, transport, retries) belongs to downstream
// consumers of the stream, not to the API.
package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/talentpath/talentpath/src/api/data"
)

// RedisDispatcher publishes events to the redis notification stream.
type RedisDispatcher struct {
	rdb *redis.Client
}

func NewRedisDispatcher(rdb *redis.Client) *RedisDispatcher {
	return &RedisDispatcher{rdb: rdb}
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, kind string, payload map[string]interface{}) error {
	payload["event_id"] = uuid.NewString()
	if url := data.GetSetting("frontend_url"); url != "" {
		payload["link"] = url
	}
	return data.PublishNotification(ctx, d.rdb, payload)
}
