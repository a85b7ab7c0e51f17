package chathub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"jobboard/chat/internal/config"
	"jobboard/chat/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessage(t *testing.T) {
	sent := models.Message{ID: 9, RoomID: "r", UserID: "u", Text: "hi", CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	payload, err := json.Marshal(sent)
	require.NoError(t, err)

	got, err := decodeMessage(string(payload))
	require.NoError(t, err)
	assert.Equal(t, sent.ID, got.ID)
	assert.Equal(t, sent.RoomID, got.RoomID)
	assert.Equal(t, sent.Text, got.Text)
	assert.True(t, sent.CreatedAt.Equal(got.CreatedAt))

	_, err = decodeMessage("{not json")
	assert.Error(t, err)
}

func TestRedisBroadcaster_PublishReachesSubscriber(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	bus := NewRedisBroadcaster(rdb, config.MessageBusChannel)

	received := make(chan models.Message, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- bus.Subscribe(ctx, func(_ context.Context, msg models.Message) { received <- msg })
	}()
	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(config.MessageBusChannel)[config.MessageBusChannel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Undecodable payloads are skipped without ending the subscription.
	require.NoError(t, rdb.Publish(context.Background(), config.MessageBusChannel, "{garbage").Err())
	require.NoError(t, bus.Publish(context.Background(), models.Message{ID: 5, RoomID: "room-1", UserID: "u1", Text: "across instances"}))

	select {
	case msg := <-received:
		assert.Equal(t, uint64(5), msg.ID)
		assert.Equal(t, "across instances", msg.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered through redis")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}
}

func TestRedisBroadcaster_SubscribeFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := NewRedisBroadcaster(rdb, config.MessageBusChannel).Subscribe(ctx, func(context.Context, models.Message) {})
	assert.Error(t, err)
}
