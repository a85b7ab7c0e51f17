package conversation_test

import (
	"context"
	"sync"
	"time"

	"jobboard/chat/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockNotifier records the messages handed to the realtime gateway.
type MockNotifier struct {
	mock.Mock
	mu   sync.Mutex
	sent []models.Message
}

func (m *MockNotifier) NotifyNewMessage(ctx context.Context, msg models.Message) {
	m.Called(ctx, msg)
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
}

func (m *MockNotifier) Sent() []models.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Message(nil), m.sent...)
}

func newMockNotifier() *MockNotifier {
	n := new(MockNotifier)
	n.On("NotifyNewMessage", mock.Anything, mock.AnythingOfType("models.Message")).Return()
	return n
}

// MockRoomStore lets tests script the storage side of the get-or-create race.
type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) FindRoomForPair(ctx context.Context, userA, userB string) (*models.Room, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomStore) FindRoomByID(ctx context.Context, roomID string) (*models.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomStore) CreateRoom(ctx context.Context, userA, userB, name, description string) (*models.Room, error) {
	args := m.Called(ctx, userA, userB, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomStore) ListRoomsForUser(ctx context.Context, userID string) ([]models.Room, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockRoomStore) TouchRoom(ctx context.Context, roomID string, at time.Time) error {
	args := m.Called(ctx, roomID, at)
	return args.Error(0)
}

func (m *MockRoomStore) DeleteRoomsForUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
