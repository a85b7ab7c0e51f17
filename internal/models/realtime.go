package models

// Event types pushed to live connections.
const (
	EventMessage = "message"
	EventAck     = "ack"
	EventError   = "error"
)

// Frame types accepted from live connections.
const (
	FrameSend = "send"
)

// Event is one JSON frame written to a live connection.
type Event struct {
	Type    string   `json:"type"`
	Ref     string   `json:"ref,omitempty"`
	Message *Message `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// InboundFrame is one JSON frame read from a live connection.
type InboundFrame struct {
	Type   string `json:"type"`
	Ref    string `json:"ref,omitempty"`
	RoomID string `json:"room_id"`
	Text   string `json:"text"`
}
