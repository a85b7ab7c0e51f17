package chathub_test

import (
	"context"
	"errors"
	"sync"

	"jobboard/chat/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockRooms struct {
	mock.Mock
}

func (m *MockRooms) FindRoomByID(ctx context.Context, roomID string) (*models.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, roomID, userID, text string) (*models.Message, error) {
	args := m.Called(ctx, roomID, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

// fakeBus loops published messages back to the subscriber, like a single Redis channel.
type fakeBus struct {
	mu         sync.Mutex
	publishErr error
	published  []models.Message
	feed       chan models.Message
}

func newFakeBus() *fakeBus {
	return &fakeBus{feed: make(chan models.Message, 16)}
}

func (b *fakeBus) Publish(_ context.Context, msg models.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.publishErr != nil {
		return b.publishErr
	}
	b.published = append(b.published, msg)
	b.feed <- msg
	return nil
}

func (b *fakeBus) Subscribe(ctx context.Context, deliver func(context.Context, models.Message)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-b.feed:
			deliver(ctx, msg)
		}
	}
}

func (b *fakeBus) Published() []models.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Message(nil), b.published...)
}

var errBusDown = errors.New("bus down")

// timeoutError is what a redis client returns when the reply does not arrive in time.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }
