package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// NotificationDeduper provides at-most-once broadcast checks backed by Redis.
// Key format: notify:<aggregate_id>:<action>
type NotificationDeduper struct {
	client *redis.Client
}

// NewNotificationDeduper creates a NotificationDeduper wrapping the given client.
func NewNotificationDeduper(client *redis.Client) *NotificationDeduper {
	return &NotificationDeduper{client: client}
}

// IsDuplicate reports whether this exact notification has already gone out.
func (d *NotificationDeduper) IsDuplicate(ctx context.Context, id, action string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(id, action)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this notification has been broadcast (expires after dedupTTL).
func (d *NotificationDeduper) Mark(ctx context.Context, id, action string) error {
	return d.client.Set(ctx, d.key(id, action), "1", dedupTTL).Err()
}

func (d *NotificationDeduper) key(id, action string) string {
	return fmt.Sprintf("notify:%s:%s", id, action)
}
