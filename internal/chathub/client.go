package chathub

import "jobboard/chat/internal/models"

// Client is one live connection of a user. A user may hold several at once
// (one per device or tab); the gateway tracks each of them separately.
type Client interface {
	// ID uniquely identifies the connection.
	ID() string
	// UserID returns the user the connection was authenticated as.
	UserID() string

	// Push queues an event for the connection without blocking.
	// It returns false when the event was dropped (buffer full or connection closed).
	Push(models.Event) bool

	// Run starts the client's read and write pumps.
	Run()
	// Close stops delivery to the client. It is safe to call more than once.
	Close()
}

// ClientFactory builds the connection for an authenticated user,
// typically by upgrading the pending HTTP request.
type ClientFactory func(userID string) (Client, error)
