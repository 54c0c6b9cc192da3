package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/domain/pubsub"
)

type RedisClient struct {
	rdb *redis.Client
}

type RedisPubSub struct {
	rps *redis.PubSub
}

func NewRedisClient(rdb *redis.Client) *RedisClient {
	return &RedisClient{rdb: rdb}
}

// Publish sends strings and byte slices as they are and JSON encodes any
// other message.
func (r *RedisClient) Publish(ctx context.Context, channel string, message interface{}) error {
	var payload interface{}
	switch m := message.(type) {
	case string, []byte:
		payload = m
	default:
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("cannot encode message for %s: %w", channel, err)
		}
		payload = data
	}

	if err := r.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("cannot publish to %s: %w", channel, err)
	}

	return nil
}

// Subscribe returns once redis has confirmed the subscription, so messages
// published after it returns are not missed.
func (r *RedisClient) Subscribe(ctx context.Context, channel string) (pubsub.PubSub, error) {
	rps := r.rdb.Subscribe(ctx, channel)
	if _, err := rps.Receive(ctx); err != nil {
		_ = rps.Close()
		return nil, fmt.Errorf("cannot subscribe to %s: %w", channel, err)
	}

	return &RedisPubSub{rps: rps}, nil
}

func (r *RedisPubSub) ReceiveMessage(ctx context.Context) (pubsub.Message, error) {
	msg, err := r.rps.ReceiveMessage(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return pubsub.Message{}, ctxErr
		}

		return pubsub.Message{}, err
	}

	return pubsub.Message{
		Channel: msg.Channel,
		Payload: msg.Payload,
	}, nil
}

func (r *RedisPubSub) Close() error {
	return r.rps.Close()
}
