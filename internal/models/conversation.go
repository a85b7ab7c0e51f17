package models

import "time"

// Participant is a room member as shown in list views.
type Participant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ConversationSummary is a room enriched for the conversation list.
// It is derived on read and never stored.
type ConversationSummary struct {
	Room        Room        `json:"room"`
	Participant Participant `json:"participant"`
	LastMessage *Message    `json:"last_message,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
