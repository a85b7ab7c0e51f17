package chathub

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"jobboard/chat/internal/apperr"
	"jobboard/chat/internal/config"
	"jobboard/chat/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const sendTimeout = 10 * time.Second

// MessageSender stores a message on behalf of a connected user.
type MessageSender interface {
	SendMessage(ctx context.Context, roomID, userID, text string) (*models.Message, error)
}

// WebSocketClient implements Client over a gorilla/websocket connection.
type WebSocketClient struct {
	id     string
	userID string
	conn   *websocket.Conn
	hub    *Gateway
	sender MessageSender

	send   chan models.Event
	mu     sync.Mutex
	closed bool
}

func NewWebSocketClient(conn *websocket.Conn, userID string, hub *Gateway, sender MessageSender) *WebSocketClient {
	return &WebSocketClient{
		id:     uuid.New().String(),
		userID: userID,
		conn:   conn,
		hub:    hub,
		sender: sender,
		send:   make(chan models.Event, config.SendBufferSize),
	}
}

func (c *WebSocketClient) ID() string     { return c.id }
func (c *WebSocketClient) UserID() string { return c.userID }

func (c *WebSocketClient) Push(ev models.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

// Run starts the pumps. It returns immediately.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close stops the write pump, which closes the socket and in turn ends the read pump.
func (c *WebSocketClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.hub.Disconnect(c)
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(config.MaxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WARNING: read from connection %s failed: %v", c.id, err)
			}
			return
		}
		c.handleFrame(data)
	}
}

func (c *WebSocketClient) handleFrame(data []byte) {
	var frame models.InboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		c.Push(models.Event{Type: models.EventError, Error: "malformed frame"})
		return
	}

	switch frame.Type {
	case models.FrameSend:
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		msg, err := c.sender.SendMessage(ctx, frame.RoomID, c.userID, frame.Text)
		if err != nil {
			c.Push(models.Event{Type: models.EventError, Ref: frame.Ref, Error: clientError(err)})
			return
		}
		c.Push(models.Event{Type: models.EventAck, Ref: frame.Ref, Message: msg})
	default:
		c.Push(models.Event{Type: models.EventError, Ref: frame.Ref, Error: "unknown frame type"})
	}
}

// clientError hides unclassified failures from the peer.
func clientError(err error) string {
	if apperr.Kind(err) == nil {
		log.Printf("ERROR: send over websocket failed: %v", err)
		return "internal error"
	}
	return err.Error()
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
