package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamNotifications = "talentpath.notifications"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishNotification appends an event to the notification stream. Delivery
// beyond the stream is the notifier's problem, not ours.
func PublishNotification(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamNotifications,
		Values: payload,
	}).Result()
	return err
}
