package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix namespaces provider channels on the shared Redis instance.
const ChannelPrefix = "provider:"

func RedisChannel(providerID string) string {
	return ChannelPrefix + providerID
}

// RedisPublisher forwards events over Redis pub/sub so other processes
// (dashboards, additional API replicas) can relay them.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel, event string, payload any) error {
	data, err := json.Marshal(Envelope{Channel: channel, Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}
	if err := p.client.Publish(ctx, RedisChannel(channel), string(data)).Err(); err != nil {
		return fmt.Errorf("redis publish to %s failed: %w", channel, err)
	}
	return nil
}
