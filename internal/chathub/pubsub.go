package chathub

import (
	"context"
	"encoding/json"
	"log"

	"jobboard/chat/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster shares new messages between gateway instances over Redis Pub/Sub.
type RedisBroadcaster struct {
	rdb     *redis.Client
	channel string
}

func NewRedisBroadcaster(rdb *redis.Client, channel string) *RedisBroadcaster {
	return &RedisBroadcaster{rdb: rdb, channel: channel}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, msg models.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

// Subscribe listens on the channel until ctx ends or the subscription drops.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, deliver func(context.Context, models.Message)) error {
	pubsub := b.rdb.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			msg, err := decodeMessage(m.Payload)
			if err != nil {
				log.Printf("ERROR: Error unmarshalling Redis message: %v", err)
				continue
			}
			deliver(ctx, msg)
		}
	}
}

func decodeMessage(payload string) (models.Message, error) {
	var msg models.Message
	err := json.Unmarshal([]byte(payload), &msg)
	return msg, err
}
