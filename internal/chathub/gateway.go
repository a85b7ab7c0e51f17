package chathub

import (
	"context"
	"errors"
	"log"
	"net"

	"jobboard/chat/internal/models"
)

// RoomLookup resolves a room's participants.
type RoomLookup interface {
	FindRoomByID(ctx context.Context, roomID string) (*models.Room, error)
}

// TokenService issues and redeems connection tokens.
type TokenService interface {
	Issue(ctx context.Context, userID string) (string, error)
	Redeem(ctx context.Context, token string) (string, error)
}

// Broadcaster fans new messages out to every gateway instance.
type Broadcaster interface {
	Publish(ctx context.Context, msg models.Message) error
	// Subscribe calls deliver for every published message until ctx ends.
	Subscribe(ctx context.Context, deliver func(context.Context, models.Message)) error
}

// Gateway delivers newly stored messages to the participants' live connections.
// Delivery is best effort: no queue, no retry. Clients that miss a push catch up
// by listing messages, since the message store is the source of truth.
type Gateway struct {
	registry *Registry
	rooms    RoomLookup
	tokens   TokenService
	bus      Broadcaster
}

// NewGateway wires the gateway. With a nil bus, messages are delivered only to
// connections held by this process.
func NewGateway(registry *Registry, rooms RoomLookup, tokens TokenService, bus Broadcaster) *Gateway {
	return &Gateway{
		registry: registry,
		rooms:    rooms,
		tokens:   tokens,
		bus:      bus,
	}
}

// IssueConnectionToken returns a short-lived token for one gateway connection.
func (g *Gateway) IssueConnectionToken(ctx context.Context, userID string) (string, error) {
	return g.tokens.Issue(ctx, userID)
}

// Connect authenticates token, builds the connection with newClient and
// registers it. An invalid token yields apperr.ErrAuth and newClient is not called.
func (g *Gateway) Connect(ctx context.Context, token string, newClient ClientFactory) (Client, error) {
	userID, err := g.tokens.Redeem(ctx, token)
	if err != nil {
		return nil, err
	}

	client, err := newClient(userID)
	if err != nil {
		return nil, err
	}

	g.registry.Add(client)
	log.Printf("INFO: connection %s registered for user %s (%d open)", client.ID(), userID, g.registry.Count(userID))
	return client, nil
}

// Disconnect deregisters and closes the client. Repeated calls are no-ops.
// It reports whether the user has no connections left.
func (g *Gateway) Disconnect(client Client) bool {
	removed, last := g.registry.Remove(client)
	if !removed {
		return false
	}
	client.Close()
	log.Printf("INFO: connection %s closed for user %s", client.ID(), client.UserID())
	return last
}

// NotifyNewMessage hands msg to the bus, or delivers it locally when there is
// no bus or publishing fails. It never returns an error.
//
// A timed-out publish may still have reached Redis, so it is not retried
// locally: local peers may miss the push but never receive it twice.
func (g *Gateway) NotifyNewMessage(ctx context.Context, msg models.Message) {
	ctx = context.WithoutCancel(ctx)
	if g.bus == nil {
		g.Deliver(ctx, msg)
		return
	}
	err := g.bus.Publish(ctx, msg)
	switch {
	case err == nil:
	case mayHaveBeenSent(err):
		log.Printf("WARNING: publish of message %d timed out, skipping local delivery: %v", msg.ID, err)
	default:
		log.Printf("WARNING: publish of message %d failed, delivering locally: %v", msg.ID, err)
		g.Deliver(ctx, msg)
	}
}

// mayHaveBeenSent reports whether err leaves it unknown if the server got the command.
func mayHaveBeenSent(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Deliver pushes msg to every local connection of every participant other than the sender.
func (g *Gateway) Deliver(ctx context.Context, msg models.Message) {
	room, err := g.rooms.FindRoomByID(ctx, msg.RoomID)
	if err != nil {
		log.Printf("WARNING: dropping live delivery of message %d: %v", msg.ID, err)
		return
	}

	event := models.Event{Type: models.EventMessage, Message: &msg}
	for _, participant := range room.Participants() {
		if participant == msg.UserID {
			continue
		}
		for _, client := range g.registry.ClientsFor(participant) {
			if !client.Push(event) {
				log.Printf("WARNING: connection %s of user %s dropped message %d", client.ID(), participant, msg.ID)
			}
		}
	}
}

// Run consumes the bus until ctx ends. Without a bus it just waits.
func (g *Gateway) Run(ctx context.Context) error {
	if g.bus == nil {
		<-ctx.Done()
		return nil
	}
	log.Println("INFO: gateway subscribed to message bus")
	return g.bus.Subscribe(ctx, g.Deliver)
}

// Online reports whether the user holds at least one live connection here.
func (g *Gateway) Online(userID string) bool {
	return g.registry.Count(userID) > 0
}

// ConnectionCount returns the user's live connections on this instance.
func (g *Gateway) ConnectionCount(userID string) int {
	return g.registry.Count(userID)
}
