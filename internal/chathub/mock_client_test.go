package chathub_test

import (
	"sync"

	"jobboard/chat/internal/models"
)

type MockClient struct {
	id     string
	userID string

	mu     sync.Mutex
	events chan models.Event
	closes int
	ran    bool
}

func newMockClient(id, userID string, buffer int) *MockClient {
	return &MockClient{
		id:     id,
		userID: userID,
		events: make(chan models.Event, buffer),
	}
}

func (c *MockClient) ID() string     { return c.id }
func (c *MockClient) UserID() string { return c.userID }

func (c *MockClient) Push(ev models.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closes > 0 {
		return false
	}
	select {
	case c.events <- ev:
		return true
	default:
		return false
	}
}

func (c *MockClient) Run() {
	c.mu.Lock()
	c.ran = true
	c.mu.Unlock()
}

func (c *MockClient) Close() {
	c.mu.Lock()
	c.closes++
	c.mu.Unlock()
}

func (c *MockClient) CloseCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}

// Received drains everything pushed so far.
func (c *MockClient) Received() []models.Event {
	var out []models.Event
	for {
		select {
		case ev := <-c.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}
