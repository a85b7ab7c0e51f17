// Package conversation holds the chat policy layer: who may talk to whom,
// room get-or-create under concurrent callers, and the message send path.
// Every membership check happens here, before any write reaches storage.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"jobboard/chat/internal/apperr"
	"jobboard/chat/internal/config"
	"jobboard/chat/internal/directory"
	"jobboard/chat/internal/models"
	"jobboard/chat/internal/storage"

	"golang.org/x/sync/errgroup"
)

// Notifier receives every newly persisted message for live delivery.
// Implementations must not block and must swallow their own failures.
type Notifier interface {
	NotifyNewMessage(ctx context.Context, msg models.Message)
}

// Greeting produces the seed message for a room opened by an accepted application.
type Greeting func(app *models.Application) string

// DefaultGreeting is used when no localized greeting is configured.
func DefaultGreeting(app *models.Application) string {
	if app.JobTitle == "" {
		return "Hi! Your application has been accepted. Let's discuss the next steps here."
	}
	return fmt.Sprintf("Hi! Your application for %s has been accepted. Let's discuss the next steps here.", app.JobTitle)
}

const summaryFetchLimit = 8

// Service implements the conversation operations.
type Service struct {
	rooms    storage.RoomStore
	messages storage.MessageStore
	users    directory.Users
	apps     directory.Applications
	notifier Notifier
	greeting Greeting
	now      func() time.Time
}

// NewService wires the service. A nil notifier disables live delivery and a
// nil greeting falls back to DefaultGreeting.
func NewService(
	rooms storage.RoomStore,
	messages storage.MessageStore,
	users directory.Users,
	apps directory.Applications,
	notifier Notifier,
	greeting Greeting,
) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if greeting == nil {
		greeting = DefaultGreeting
	}
	return &Service{
		rooms:    rooms,
		messages: messages,
		users:    users,
		apps:     apps,
		notifier: notifier,
		greeting: greeting,
		now:      time.Now,
	}
}

// GetOrCreateDirectRoom returns the room between requester and target,
// creating it on first contact. Argument order does not matter.
func (s *Service) GetOrCreateDirectRoom(ctx context.Context, requesterID, targetUserID string) (*models.Room, error) {
	room, _, err := s.getOrCreateRoom(ctx, requesterID, targetUserID, "")
	return room, err
}

// getOrCreateRoom reads first, then inserts; a unique violation on insert means
// another caller won the race, so the winner's room is re-read and returned.
// created is true only for the caller whose insert succeeded.
func (s *Service) getOrCreateRoom(ctx context.Context, userA, userB, description string) (room *models.Room, created bool, err error) {
	userA, userB = strings.TrimSpace(userA), strings.TrimSpace(userB)
	if userA == "" || userB == "" {
		return nil, false, apperr.Validation("both participants are required")
	}
	if userA == userB {
		return nil, false, apperr.Validation("cannot start a conversation with yourself")
	}

	existing, err := s.rooms.FindRoomForPair(ctx, userA, userB)
	if err != nil {
		return nil, false, internal(err, "find room for %s/%s", userA, userB)
	}
	if existing != nil {
		return existing, false, nil
	}

	users, err := s.users.GetUsers(ctx, []string{userA, userB})
	if err != nil {
		return nil, false, internal(err, "resolve participants")
	}
	for _, id := range []string{userA, userB} {
		if _, ok := users[id]; !ok {
			return nil, false, apperr.NotFound("user %s not found", id)
		}
	}

	u1, u2 := models.CanonicalPair(userA, userB)
	name := users[u1].Username + " & " + users[u2].Username

	room, err = s.rooms.CreateRoom(ctx, userA, userB, name, description)
	if errors.Is(err, apperr.ErrConflict) {
		existing, err = s.rooms.FindRoomForPair(ctx, userA, userB)
		if err != nil {
			return nil, false, internal(err, "re-read room for %s/%s", userA, userB)
		}
		if existing == nil {
			return nil, false, fmt.Errorf("room for %s/%s missing after conflicting insert", u1, u2)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, internal(err, "create room for %s/%s", userA, userB)
	}

	log.Printf("INFO: created room %s for %s/%s", room.ID, room.User1ID, room.User2ID)
	return room, true, nil
}

// GetOrCreateApplicationRoom opens the employer/applicant room for an accepted
// application. The seed message is written only by the call that created the room.
func (s *Service) GetOrCreateApplicationRoom(ctx context.Context, applicationID uint64, initialMessage string) (*models.Room, error) {
	app, err := s.acceptedApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return s.applicationRoom(ctx, app, initialMessage)
}

// GetOrCreateApplicationRoomFor is GetOrCreateApplicationRoom on behalf of a
// caller, who must be the application's employer or applicant.
func (s *Service) GetOrCreateApplicationRoomFor(ctx context.Context, requesterID string, applicationID uint64, initialMessage string) (*models.Room, error) {
	app, err := s.acceptedApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if requesterID != app.EmployerID && requesterID != app.ApplicantID {
		log.Printf("WARNING: user %s requested room for application %d they are not part of", requesterID, applicationID)
		return nil, apperr.Forbidden("not a party to application %d", applicationID)
	}
	return s.applicationRoom(ctx, app, initialMessage)
}

func (s *Service) acceptedApplication(ctx context.Context, applicationID uint64) (*models.Application, error) {
	app, err := s.apps.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, internal(err, "get application %d", applicationID)
	}
	if !strings.EqualFold(app.Status, config.ApplicationAccepted) {
		return nil, apperr.NotFound("application %d is not accepted", applicationID)
	}
	return app, nil
}

func (s *Service) applicationRoom(ctx context.Context, app *models.Application, initialMessage string) (*models.Room, error) {
	seed := strings.TrimSpace(initialMessage)
	if seed == "" {
		seed = s.greeting(app)
	}
	if err := validateText(seed); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Application #%d", app.ID)
	if app.JobTitle != "" {
		description += ": " + app.JobTitle
	}

	room, created, err := s.getOrCreateRoom(ctx, app.EmployerID, app.ApplicantID, description)
	if err != nil {
		return nil, err
	}
	if !created {
		return room, nil
	}

	if _, err := s.post(ctx, room, app.EmployerID, seed); err != nil {
		return nil, err
	}
	return room, nil
}

// ListConversations returns the user's rooms, most recently active first,
// each with the other participant and the newest message.
func (s *Service) ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	rooms, err := s.rooms.ListRoomsForUser(ctx, userID)
	if err != nil {
		return nil, internal(err, "list rooms for %s", userID)
	}
	summaries := make([]models.ConversationSummary, len(rooms))
	if len(rooms) == 0 {
		return summaries, nil
	}

	otherIDs := make([]string, 0, len(rooms))
	for i := range rooms {
		otherIDs = append(otherIDs, rooms[i].OtherParticipant(userID))
	}
	users, err := s.users.GetUsers(ctx, otherIDs)
	if err != nil {
		return nil, internal(err, "resolve participants")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryFetchLimit)
	for i := range rooms {
		g.Go(func() error {
			last, err := s.messages.LastMessage(gctx, rooms[i].ID)
			if err != nil {
				return err
			}
			other := rooms[i].OtherParticipant(userID)
			summaries[i] = models.ConversationSummary{
				Room:        rooms[i],
				Participant: models.Participant{ID: other, Username: users[other].Username},
				LastMessage: last,
				UpdatedAt:   rooms[i].UpdatedAt,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, internal(err, "load last messages")
	}
	return summaries, nil
}

// SendMessage appends text to the room on behalf of a participant and hands
// the stored message to the notifier.
func (s *Service) SendMessage(ctx context.Context, roomID, userID, text string) (*models.Message, error) {
	room, err := s.participantRoom(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if err := validateText(text); err != nil {
		return nil, err
	}
	return s.post(ctx, room, userID, text)
}

func (s *Service) post(ctx context.Context, room *models.Room, userID, text string) (*models.Message, error) {
	msg, err := s.messages.AppendMessage(ctx, room.ID, userID, text)
	if err != nil {
		return nil, internal(err, "append message to room %s", room.ID)
	}

	at := msg.CreatedAt
	if at.IsZero() {
		at = s.now()
	}
	if err := s.rooms.TouchRoom(ctx, room.ID, at); err != nil {
		log.Printf("WARNING: message %d stored but room %s not touched: %v", msg.ID, room.ID, err)
	}

	s.notifier.NotifyNewMessage(ctx, *msg)
	return msg, nil
}

// ListMessages returns the room's messages for a participant, oldest first.
func (s *Service) ListMessages(ctx context.Context, roomID, userID string, page storage.Page) ([]models.Message, error) {
	if _, err := s.participantRoom(ctx, roomID, userID); err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListMessages(ctx, roomID, page)
	if err != nil {
		return nil, internal(err, "list messages for room %s", roomID)
	}
	return msgs, nil
}

// GetRoom returns the room if userID participates in it.
func (s *Service) GetRoom(ctx context.Context, roomID, userID string) (*models.Room, error) {
	return s.participantRoom(ctx, roomID, userID)
}

func (s *Service) participantRoom(ctx context.Context, roomID, userID string) (*models.Room, error) {
	room, err := s.rooms.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, internal(err, "find room %s", roomID)
	}
	if !room.HasParticipant(userID) {
		log.Printf("WARNING: user %s is not a participant of room %s", userID, roomID)
		return nil, apperr.Forbidden("not a participant of room %s", roomID)
	}
	return room, nil
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperr.Validation("message text must not be empty")
	}
	if utf8.RuneCountInString(text) > config.MaxMessageLength {
		return apperr.Validation("message text exceeds %d characters", config.MaxMessageLength)
	}
	return nil
}

// internal passes classified errors through and wraps everything else with context.
func internal(err error, format string, args ...any) error {
	if apperr.Kind(err) != nil {
		return err
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

type nopNotifier struct{}

func (nopNotifier) NotifyNewMessage(context.Context, models.Message) {}
